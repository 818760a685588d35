// Package embedding turns answer text into vectors and compares them.
//
// Providers (Ollama, OpenAI-compatible servers such as Hugging Face TEI, and a
// local feature-hashing encoder) all satisfy Encoder. Decorators add caching
// (CachedEncoder) and an explicit bound on concurrent provider calls
// (LimitedEncoder). Vectors returned by any Encoder are shared and must not be
// modified by callers.
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Encoder produces an embedding vector for a text.
// Implementations must be safe for concurrent use.
type Encoder interface {
	// Encode returns the embedding of text. The returned slice is read-only.
	Encode(ctx context.Context, text string) ([]float32, error)

	// Model identifies the model producing the vectors, e.g. "all-MiniLM-L6-v2".
	Model() string
}

// EncodeError is returned when a provider fails so callers can tell
// "provider unreachable" apart from other failures.
type EncodeError struct {
	Model   string
	Reason  string
	Wrapped error
}

func (e *EncodeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("encode with %s failed: %s: %v", e.Model, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("encode with %s failed: %s", e.Model, e.Reason)
}

func (e *EncodeError) Unwrap() error {
	return e.Wrapped
}

// ContentHash returns the SHA-256 hex digest of text, used as a cache key.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Warmup performs one blocking Encode so that model loading or connection
// problems surface before the service accepts traffic.
func Warmup(ctx context.Context, enc Encoder) error {
	vec, err := enc.Encode(ctx, "warmup")
	if err != nil {
		return fmt.Errorf("warm up %s: %w", enc.Model(), err)
	}
	if len(vec) == 0 {
		return fmt.Errorf("warm up %s: provider returned an empty vector", enc.Model())
	}
	return nil
}
