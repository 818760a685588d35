package embedding

import (
	"fmt"
	"time"
)

// Provider names accepted by NewProvider.
const (
	ProviderHashing = "hashing"
	ProviderOllama  = "ollama"
	ProviderOpenAI  = "openai"
)

// ProviderConfig selects and configures a base encoder.
type ProviderConfig struct {
	Provider   string
	URL        string
	Model      string
	APIKey     string
	Timeout    time.Duration
	Dimensions int // hashing only
}

// NewProvider builds the base encoder named by cfg.Provider.
func NewProvider(cfg ProviderConfig) (Encoder, error) {
	switch cfg.Provider {
	case ProviderHashing, "":
		return NewHashingEncoder(cfg.Dimensions), nil
	case ProviderOllama:
		if cfg.URL == "" {
			return nil, fmt.Errorf("ollama provider requires a url")
		}
		if cfg.Model == "" {
			return nil, fmt.Errorf("ollama provider requires a model")
		}
		return NewOllamaEncoder(cfg.URL, cfg.Model, cfg.Timeout), nil
	case ProviderOpenAI:
		return NewOpenAIEncoder(OpenAIConfig{
			BaseURL: cfg.URL,
			Model:   cfg.Model,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
