package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel    = "gpt-4o-mini"
)

// chat-completions request
type openAIRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chat-completions response
type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAIProvider chat-completions backed provider
type OpenAIProvider struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewOpenAIProvider(config ProviderConfig, client *http.Client) *OpenAIProvider {
	p := &OpenAIProvider{
		endpoint: config.Endpoint,
		apiKey:   config.APIKey,
		model:    config.Model,
		client:   client,
	}
	if p.endpoint == "" {
		p.endpoint = defaultOpenAIEndpoint
	}
	if p.model == "" {
		p.model = defaultOpenAIModel
	}
	return p
}

func (p *OpenAIProvider) Name() string {
	return string(ProviderOpenAI)
}

// Generate sends the prompt as a single user message
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	jsonData, err := json.Marshal(openAIRequest{
		Model:    p.model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var response openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", err
	}

	if response.Error.Message != "" {
		return "", errors.New(response.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error: %d", resp.StatusCode)
	}
	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	return response.Choices[0].Message.Content, nil
}
