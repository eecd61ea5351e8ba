package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/YongERong/wth-caifan-lovers/pkg/metrics"
)

const transcribePath = "/speech-to-text"

// Transcriber client for the speech-to-text service
type Transcriber struct {
	baseURL string
	client  *http.Client
}

// NewTranscriber creates a client for the service at baseURL
func NewTranscriber(baseURL string, client *http.Client) *Transcriber {
	if client == nil {
		client = &http.Client{}
	}
	return &Transcriber{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// BaseURL the service address
func (t *Transcriber) BaseURL() string {
	return t.baseURL
}

type transcribeResponse struct {
	Transcription string `json:"transcription"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// Transcribe uploads audio as the multipart field "file" and returns the text
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, format Format) (string, error) {
	text, err := t.transcribe(ctx, audio, format)
	if err != nil {
		metrics.Transcribed("error")
		return "", err
	}
	metrics.Transcribed("ok")
	return text, nil
}

func (t *Transcriber) transcribe(ctx context.Context, audio io.Reader, format Format) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, format.FileName()))
	header.Set("Content-Type", format.MimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to write audio: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+transcribePath, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &HTTPError{Status: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	var result transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Transcription == "" {
		return "", ErrNoTranscript
	}
	return result.Transcription, nil
}

// readDetail the body's "detail" field; validation errors carry a list, which is kept as JSON
func readDetail(r io.Reader) string {
	var body errorResponse
	if err := json.NewDecoder(r).Decode(&body); err != nil || len(body.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		return detail
	}
	if string(body.Detail) == "null" {
		return ""
	}
	return string(body.Detail)
}
