//go:build unit

package cache_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"orderflow/internal/pkg/cache"
	"orderflow/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "orders|shop.example.com|50", cache.Key("orders", "shop.example.com", "", "50"))
	assert.Equal(t, "orders", cache.Key("ORDERS"))
}

func TestGetSetExpiry(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	c := cache.New(cache.WithClock(clk))

	c.Set("k", "v", time.Minute, nil)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	clk.Advance(2 * time.Minute)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestInvalidateTag(t *testing.T) {
	c := cache.New()
	c.Set("a", 1, time.Minute, []string{"orders"})
	c.Set("b", 2, time.Minute, []string{"items:shop"})
	c.Set("c", 3, time.Minute, []string{"orders", "items:shop"})

	c.InvalidateTag("orders")

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.False(t, ok)
	v, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestThroughCoalescesConcurrentLoads(t *testing.T) {
	c := cache.New()
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "loaded", nil
	}

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Through(context.Background(), cache.LoadParams{Key: "k", TTL: time.Minute, Loader: loader})
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	// let the goroutines pile up behind the single in-flight load
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "loaded", v)
	}
}

func TestThroughRefreshWindow(t *testing.T) {
	clk := clock.NewMockClock(time.Now())
	c := cache.New(cache.WithClock(clk), cache.WithRefreshWindow(15*time.Second))
	var calls atomic.Int32

	loader := func(ctx context.Context) (any, error) {
		return int(calls.Add(1)), nil
	}
	params := cache.LoadParams{Key: "k", TTL: time.Minute, Loader: loader}

	v, err := c.Through(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// refresh inside the window still serves the cached value
	params.Refresh = true
	v, err = c.Through(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	clk.Advance(16 * time.Second)
	v, err = c.Through(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestThroughErrorNotCached(t *testing.T) {
	c := cache.New()
	var calls atomic.Int32

	_, err := c.Through(context.Background(), cache.LoadParams{
		Key: "k",
		Loader: func(ctx context.Context) (any, error) {
			calls.Add(1)
			return nil, assert.AnError
		},
	})
	require.Error(t, err)

	v, err := c.Through(context.Background(), cache.LoadParams{
		Key:    "k",
		TTL:    time.Minute,
		Loader: func(ctx context.Context) (any, error) { return "ok", nil },
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(1), calls.Load())
}
