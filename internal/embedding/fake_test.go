package embedding_test

import (
	"context"
	"sync"
	"sync/atomic"
)

// countingEncoder returns fixed vectors and counts provider calls.
type countingEncoder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	calls   map[string]int
	total   atomic.Int64

	// gate, when set, blocks every Encode until it is closed.
	gate chan struct{}
	// inFlight tracks concurrent Encode calls; maxInFlight is the high-water mark.
	inFlight    atomic.Int64
	maxInFlight atomic.Int64
	err         error
}

func newCountingEncoder(vectors map[string][]float32) *countingEncoder {
	return &countingEncoder{vectors: vectors, calls: make(map[string]int)}
}

func (c *countingEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	n := c.inFlight.Add(1)
	defer c.inFlight.Add(-1)
	for {
		m := c.maxInFlight.Load()
		if n <= m || c.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	c.total.Add(1)
	c.mu.Lock()
	c.calls[text]++
	c.mu.Unlock()

	if c.gate != nil {
		select {
		case <-c.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.err != nil {
		return nil, c.err
	}
	if v, ok := c.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (c *countingEncoder) Model() string { return "counting" }

func (c *countingEncoder) callsFor(text string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[text]
}
