package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotConfigured no API key was supplied for the provider
	ErrNotConfigured = errors.New("ai provider not configured")
	// ErrEmptyResponse the provider answered without any generated text
	ErrEmptyResponse = errors.New("no response from ai provider")
)

// Provider generates text from a single prompt
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// ProviderType which hosted API to call
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
)

// ProviderConfig provider settings
type ProviderConfig struct {
	Type     ProviderType
	APIKey   string
	Model    string
	Endpoint string
}

// NewProvider creates the configured provider. An empty API key yields ErrNotConfigured
// so callers can fall back to local processing.
func NewProvider(config ProviderConfig, client *http.Client) (Provider, error) {
	if config.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if client == nil {
		client = &http.Client{}
	}

	switch config.Type {
	case ProviderGemini, "":
		return NewGeminiProvider(config, client), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(config, client), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider type: %s", config.Type)
	}
}
