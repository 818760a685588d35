package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaEncoder embeds text by calling an Ollama server's /api/embed endpoint.
type OllamaEncoder struct {
	url    string       // e.g. "http://localhost:11434"
	model  string       // e.g. "all-minilm"
	client *http.Client // reused across calls
}

// Compile-time check: *OllamaEncoder satisfies the Encoder interface.
var _ Encoder = (*OllamaEncoder)(nil)

// NewOllamaEncoder creates an encoder that calls the given Ollama endpoint.
// A zero timeout means 30 seconds.
func NewOllamaEncoder(url, model string, timeout time.Duration) *OllamaEncoder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OllamaEncoder{
		url:   strings.TrimRight(url, "/"),
		model: model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type ollamaEmbedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Encode sends text to Ollama and returns its embedding.
func (e *OllamaEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	jsonData, err := json.Marshal(ollamaEmbedRequest{Model: e.model, Input: text})
	if err != nil {
		return nil, e.fail("failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url+"/api/embed", bytes.NewReader(jsonData))
	if err != nil {
		return nil, e.fail("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, e.fail("request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, e.fail(fmt.Sprintf("ollama returned status %d", resp.StatusCode), nil)
	}

	var body ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, e.fail("failed to decode response", err)
	}

	if len(body.Embeddings) == 0 || len(body.Embeddings[0]) == 0 {
		return nil, e.fail("ollama returned no embeddings", nil)
	}

	return body.Embeddings[0], nil
}

// Model returns the configured Ollama model name.
func (e *OllamaEncoder) Model() string {
	return e.model
}

func (e *OllamaEncoder) fail(reason string, err error) error {
	return &EncodeError{Model: e.model, Reason: reason, Wrapped: err}
}
