package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Type: ProviderGemini}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	p, err := NewProvider(ProviderConfig{APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	p, err = NewProvider(ProviderConfig{Type: ProviderOpenAI, APIKey: "k"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())

	_, err = NewProvider(ProviderConfig{Type: "claude", APIKey: "k"}, nil)
	assert.EqualError(t, err, "unsupported AI provider type: claude")
}

func TestGeminiGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req geminiRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"first_name\":\"Ann\"}"}]}}]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider(ProviderConfig{APIKey: "secret", Endpoint: server.URL + "/v1beta/models/test:generateContent"}, server.Client())
	text, err := p.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `{"first_name":"Ann"}`, text)
}

func TestGeminiErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"http error", http.StatusTooManyRequests, `{}`, "gemini API error: 429"},
		{"no candidates", http.StatusOK, `{"candidates":[]}`, ErrEmptyResponse.Error()},
		{"empty text", http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`, ErrEmptyResponse.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewGeminiProvider(ProviderConfig{APIKey: "k", Endpoint: server.URL}, server.Client())
			_, err := p.Generate(context.Background(), "x")
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestOpenAIGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req openAIRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, defaultOpenAIModel, req.Model)
		assert.Equal(t, []message{{Role: "user", Content: "hello"}}, req.Messages)
		w.Write([]byte(`{"choices":[{"message":{"content":"hi there"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(ProviderConfig{APIKey: "secret", Endpoint: server.URL}, server.Client())
	text, err := p.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", text)
}

func TestOpenAIErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(ProviderConfig{APIKey: "bad", Endpoint: server.URL}, server.Client())
	_, err := p.Generate(context.Background(), "hello")
	assert.EqualError(t, err, "invalid api key")
}
