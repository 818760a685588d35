package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/shreedharkb/Speechify/internal/metrics"
	"github.com/shreedharkb/Speechify/internal/store"
)

// Store is a persistent embedding cache keyed by model and content hash.
// GetEmbedding returns store.ErrNotFound on a miss.
type Store interface {
	GetEmbedding(ctx context.Context, model, contentHash string) ([]float32, error)
	PutEmbedding(ctx context.Context, model, contentHash string, vec []float32) error
}

// CacheConfig configures a CachedEncoder.
type CacheConfig struct {
	// Size is the number of vectors kept in memory. Zero disables the memory tier.
	Size int

	// Store is an optional persistent tier consulted after the memory tier.
	Store Store

	// Timeout bounds a shared provider call. The call does not inherit the
	// cancellation of the request that started it. Zero means no bound.
	Timeout time.Duration

	// Logger for cache failures (optional, defaults to slog.Default()).
	Logger *slog.Logger
}

// CachedEncoder memoizes another Encoder.
//
// Lookups go memory (LRU) → persistent store → provider. Concurrent requests
// for the same uncached text share a single provider call; a caller that
// gives up stops waiting without failing the others. Cache failures are
// logged and never fail an Encode.
type CachedEncoder struct {
	next    Encoder
	memory  *lru.Cache[string, []float32]
	store   Store
	timeout time.Duration
	group   singleflight.Group
	logger  *slog.Logger
}

// Compile-time check: *CachedEncoder satisfies the Encoder interface.
var _ Encoder = (*CachedEncoder)(nil)

// NewCachedEncoder wraps next with the configured cache tiers.
func NewCachedEncoder(next Encoder, cfg CacheConfig) (*CachedEncoder, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &CachedEncoder{
		next:    next,
		store:   cfg.Store,
		timeout: cfg.Timeout,
		logger:  logger,
	}

	if cfg.Size > 0 {
		memory, err := lru.New[string, []float32](cfg.Size)
		if err != nil {
			return nil, fmt.Errorf("create embedding lru: %w", err)
		}
		c.memory = memory
	}

	return c, nil
}

// Encode returns the cached vector for text, computing it at most once
// across concurrent callers.
func (c *CachedEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	key := ContentHash(text)

	if c.memory != nil {
		if vec, ok := c.memory.Get(key); ok {
			metrics.RecordCacheHit("memory")
			return vec, nil
		}
	}

	ch := c.group.DoChan(key, func() (v any, err error) {
		// DoChan re-panics on its own goroutine, which nothing can recover.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("encoder panicked: %v", r)
			}
		}()

		loadCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(loadCtx, c.timeout)
			defer cancel()
		}
		return c.load(loadCtx, key, text)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]float32), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Model returns the wrapped encoder's model.
func (c *CachedEncoder) Model() string {
	return c.next.Model()
}

func (c *CachedEncoder) load(ctx context.Context, key, text string) ([]float32, error) {
	model := c.next.Model()

	if c.store != nil {
		vec, err := c.store.GetEmbedding(ctx, model, key)
		switch {
		case err == nil:
			metrics.RecordCacheHit("sqlite")
			c.remember(key, vec)
			return vec, nil
		case !errors.Is(err, store.ErrNotFound):
			c.logger.Warn("embedding cache read failed", "model", model, "hash", key, "error", err)
		}
	}

	metrics.RecordCacheMiss()
	vec, err := c.next.Encode(ctx, text)
	if err != nil {
		return nil, err
	}

	c.remember(key, vec)
	if c.store != nil {
		if err := c.store.PutEmbedding(ctx, model, key, vec); err != nil {
			c.logger.Warn("embedding cache write failed", "model", model, "hash", key, "error", err)
		}
	}
	return vec, nil
}

func (c *CachedEncoder) remember(key string, vec []float32) {
	if c.memory != nil {
		c.memory.Add(key, vec)
	}
}
