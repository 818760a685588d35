package embedding_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreedharkb/Speechify/internal/embedding"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     embedding.ProviderConfig
		model   string
		wantErr bool
	}{
		{"default is hashing", embedding.ProviderConfig{Dimensions: 16}, "feature-hashing-16", false},
		{"ollama", embedding.ProviderConfig{Provider: "ollama", URL: "http://localhost:11434", Model: "all-minilm"}, "all-minilm", false},
		{"ollama without url", embedding.ProviderConfig{Provider: "ollama", Model: "all-minilm"}, "", true},
		{"openai", embedding.ProviderConfig{Provider: "openai", URL: "http://tei:8082/v1", Model: "all-MiniLM-L6-v2"}, "all-MiniLM-L6-v2", false},
		{"openai without model", embedding.ProviderConfig{Provider: "openai", URL: "http://tei:8082/v1"}, "", true},
		{"unknown", embedding.ProviderConfig{Provider: "onnx"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := embedding.NewProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.model, enc.Model())
		})
	}
}

func TestWarmup(t *testing.T) {
	require.NoError(t, embedding.Warmup(context.Background(), embedding.NewHashingEncoder(8)))

	failing := newCountingEncoder(nil)
	failing.err = errors.New("connection refused")
	err := embedding.Warmup(context.Background(), failing)
	assert.ErrorContains(t, err, "warm up counting")
}

func TestEncodeError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &embedding.EncodeError{Model: "m", Reason: "request failed", Wrapped: cause}

	assert.Equal(t, "encode with m failed: request failed: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "encode with m failed: no data", (&embedding.EncodeError{Model: "m", Reason: "no data"}).Error())
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, embedding.ContentHash("Paris"), embedding.ContentHash("Paris"))
	assert.NotEqual(t, embedding.ContentHash("Paris"), embedding.ContentHash("paris"))
	assert.Len(t, embedding.ContentHash(""), 64)
}
