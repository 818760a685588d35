package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIEncoder calls an OpenAI-compatible embeddings API.
//
// This works with:
//   - Hugging Face TEI (Text Embeddings Inference) serving all-MiniLM-L6-v2
//   - LocalAI and vLLM
//   - OpenAI itself
type OpenAIEncoder struct {
	client *openai.Client
	model  string
}

// Compile-time check: *OpenAIEncoder satisfies the Encoder interface.
var _ Encoder = (*OpenAIEncoder)(nil)

// OpenAIConfig configures the OpenAI-compatible encoder.
type OpenAIConfig struct {
	// BaseURL of the API including the version prefix,
	// e.g. "http://localhost:8082/v1" for TEI.
	BaseURL string

	// Model is the embedding model to request.
	Model string

	// APIKey is optional for local servers.
	APIKey string

	// Timeout for HTTP requests (default: 30s).
	Timeout time.Duration
}

// NewOpenAIEncoder creates an encoder backed by the go-openai client.
func NewOpenAIEncoder(cfg OpenAIConfig) (*OpenAIEncoder, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "unused" // local servers ignore the key but the client requires one
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = cfg.BaseURL
	config.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIEncoder{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}, nil
}

// Encode requests a single embedding.
func (e *OpenAIEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, &EncodeError{Model: e.model, Reason: "embedding API call failed", Wrapped: err}
	}

	if len(resp.Data) != 1 || len(resp.Data[0].Embedding) == 0 {
		return nil, &EncodeError{
			Model:  e.model,
			Reason: fmt.Sprintf("API returned %d embeddings for 1 text", len(resp.Data)),
		}
	}

	return resp.Data[0].Embedding, nil
}

// Model returns the configured model name.
func (e *OpenAIEncoder) Model() string {
	return e.model
}
