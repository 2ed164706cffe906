package xcache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/wuxler/rxb/pkg/util/xcache"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	cache := xcache.NewMemory[string](xcache.WithCapacity(16), xcache.WithTTL(time.Minute))

	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)

	cache.Set(ctx, "a", "x")
	v, ok := cache.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	cache.Delete(ctx, "a")
	_, ok = cache.Get(ctx, "a")
	assert.False(t, ok)
}

func TestMemory_Load(t *testing.T) {
	ctx := context.Background()
	cache := xcache.NewMemory[int]()

	var calls atomic.Int32
	loader := func(_ context.Context, key string) (int, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return len(key), nil
	}

	var eg errgroup.Group
	for i := 0; i < 8; i++ {
		eg.Go(func() error {
			v, err := cache.Load(ctx, "abc", loader)
			if err != nil {
				return err
			}
			if v != 3 {
				return errors.New("unexpected value")
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, int32(1), calls.Load())

	v, err := cache.Load(ctx, "abc", loader)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMemory_LoadError(t *testing.T) {
	ctx := context.Background()
	cache := xcache.NewMemory[int]()
	errLoad := errors.New("load failed")

	_, err := cache.Load(ctx, "k", func(context.Context, string) (int, error) { return 0, errLoad })
	assert.ErrorIs(t, err, errLoad)
	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)

	v, err := cache.Load(ctx, "k", func(context.Context, string) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	cache := xcache.NewDiscard[int]()
	cache.Set(ctx, "k", 1)
	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)

	calls := 0
	for i := 0; i < 2; i++ {
		v, err := cache.Load(ctx, "k", func(context.Context, string) (int, error) {
			calls++
			return 5, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 5, v)
	}
	assert.Equal(t, 2, calls)
	cache.Delete(ctx, "k")
}
