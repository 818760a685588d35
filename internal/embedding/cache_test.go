package embedding_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreedharkb/Speechify/internal/embedding"
	"github.com/shreedharkb/Speechify/internal/store"
)

func TestCachedEncoder_MemoryHitSkipsProvider(t *testing.T) {
	base := newCountingEncoder(map[string][]float32{"paris": {0, 1, 0}})
	enc, err := embedding.NewCachedEncoder(base, embedding.CacheConfig{Size: 8})
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		vec, err := enc.Encode(ctx, "paris")
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 1, 0}, vec)
	}

	assert.Equal(t, 1, base.callsFor("paris"))
	assert.Equal(t, "counting", enc.Model())
}

func TestCachedEncoder_CollapsesConcurrentMisses(t *testing.T) {
	base := newCountingEncoder(nil)
	base.gate = make(chan struct{})
	enc, err := embedding.NewCachedEncoder(base, embedding.CacheConfig{Size: 8})
	require.NoError(t, err)

	const callers = 10
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := enc.Encode(context.Background(), "same text")
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return base.total.Load() >= 1 }, time.Second, time.Millisecond)
	// Give the remaining callers time to join the in-flight call.
	time.Sleep(20 * time.Millisecond)
	close(base.gate)
	wg.Wait()

	assert.Equal(t, 1, base.callsFor("same text"))
}

func TestCachedEncoder_ErrorsAreNotCached(t *testing.T) {
	base := newCountingEncoder(nil)
	base.err = errors.New("provider down")
	enc, err := embedding.NewCachedEncoder(base, embedding.CacheConfig{Size: 8})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = enc.Encode(ctx, "text")
	require.Error(t, err)

	base.err = nil
	_, err = enc.Encode(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, 2, base.callsFor("text"))
}

func TestCachedEncoder_PersistentTier(t *testing.T) {
	db, err := store.NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	first := newCountingEncoder(map[string][]float32{"berlin": {0.5, 0.5, 0}})
	enc, err := embedding.NewCachedEncoder(first, embedding.CacheConfig{Size: 8, Store: db})
	require.NoError(t, err)

	_, err = enc.Encode(ctx, "berlin")
	require.NoError(t, err)
	assert.Equal(t, 1, first.callsFor("berlin"))

	// A fresh process with an empty memory tier reads from SQLite.
	second := newCountingEncoder(nil)
	restarted, err := embedding.NewCachedEncoder(second, embedding.CacheConfig{Size: 8, Store: db})
	require.NoError(t, err)

	vec, err := restarted.Encode(ctx, "berlin")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5, 0}, vec)
	assert.Equal(t, 0, second.callsFor("berlin"))
}

func TestCachedEncoder_NoTiers(t *testing.T) {
	base := newCountingEncoder(nil)
	enc, err := embedding.NewCachedEncoder(base, embedding.CacheConfig{})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = enc.Encode(ctx, "x")
	require.NoError(t, err)
	_, err = enc.Encode(ctx, "x")
	require.NoError(t, err)

	assert.Equal(t, 2, base.callsFor("x"))
}

func TestCachedEncoder_CancelledCallerDoesNotFailSharedCall(t *testing.T) {
	base := newCountingEncoder(map[string][]float32{"Paris": {0, 0, 1}})
	base.gate = make(chan struct{})
	enc, err := embedding.NewCachedEncoder(base, embedding.CacheConfig{Size: 8})
	require.NoError(t, err)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := enc.Encode(ctxA, "Paris")
		errA <- err
	}()
	require.Eventually(t, func() bool { return base.total.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		vec []float32
		err error
	}
	resB := make(chan result, 1)
	go func() {
		vec, err := enc.Encode(context.Background(), "Paris")
		resB <- result{vec, err}
	}()
	// Let B join the in-flight call before A goes away.
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting for the shared call")
	}

	close(base.gate)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, []float32{0, 0, 1}, b.vec)

	// The shared call finished after A left and its result was cached.
	vec, err := enc.Encode(context.Background(), "Paris")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 1}, vec)
	assert.Equal(t, 1, base.callsFor("Paris"))
}

func TestCachedEncoder_SharedCallHonoursTimeout(t *testing.T) {
	base := newCountingEncoder(nil)
	base.gate = make(chan struct{})
	t.Cleanup(func() { close(base.gate) })
	enc, err := embedding.NewCachedEncoder(base, embedding.CacheConfig{Size: 8, Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = enc.Encode(context.Background(), "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type panickingEncoder struct{}

func (panickingEncoder) Encode(context.Context, string) ([]float32, error) { panic("model crashed") }
func (panickingEncoder) Model() string                                      { return "panicking" }

func TestCachedEncoder_ProviderPanicBecomesError(t *testing.T) {
	enc, err := embedding.NewCachedEncoder(panickingEncoder{}, embedding.CacheConfig{Size: 8})
	require.NoError(t, err)

	_, err = enc.Encode(context.Background(), "text")
	assert.ErrorContains(t, err, "encoder panicked: model crashed")
}
