package embedding

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/shreedharkb/Speechify/internal/metrics"
)

// LimitedEncoder bounds the number of in-flight calls to another Encoder.
//
// A limit of 1 turns the provider into a serialized queue, which is required
// for inference backends that are not safe for concurrent use. Waiting callers
// give up when their context is cancelled.
type LimitedEncoder struct {
	next Encoder
	sem  *semaphore.Weighted
}

// Compile-time check: *LimitedEncoder satisfies the Encoder interface.
var _ Encoder = (*LimitedEncoder)(nil)

// NewLimitedEncoder wraps next so that at most maxConcurrent Encode calls run
// at once. Values below 1 are treated as 1.
func NewLimitedEncoder(next Encoder, maxConcurrent int) *LimitedEncoder {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &LimitedEncoder{
		next: next,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Encode waits for a free slot, then calls the wrapped encoder.
func (l *LimitedEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer l.sem.Release(1)

	start := time.Now()
	vec, err := l.next.Encode(ctx, text)
	metrics.RecordEncode(l.next.Model(), err, time.Since(start))
	return vec, err
}

// Model returns the wrapped encoder's model.
func (l *LimitedEncoder) Model() string {
	return l.next.Model()
}
