package xcache

import (
	"context"
	"time"

	"github.com/maypok86/otter"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCapacity is the default number of entries a memory cache holds.
	DefaultCapacity = 1024
	// DefaultTTL is the default time to live of memory cache entries.
	DefaultTTL = time.Hour
)

// MemoryOption configures NewMemory.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	capacity int
	ttl      time.Duration
}

// WithCapacity sets the maximum number of entries.
func WithCapacity(capacity int) MemoryOption {
	return func(o *memoryOptions) {
		o.capacity = capacity
	}
}

// WithTTL sets the time to live of the entries.
func WithTTL(ttl time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.ttl = ttl
	}
}

// NewMemory returns a new in-memory cache.
func NewMemory[T any](opts ...MemoryOption) Cache[T] {
	o := &memoryOptions{capacity: DefaultCapacity, ttl: DefaultTTL}
	for _, apply := range opts {
		apply(o)
	}

	cache, err := otter.MustBuilder[string, T](o.capacity).
		WithTTL(o.ttl).
		Build()
	if err != nil {
		panic(err)
	}
	return &memoryCacheImpl[T]{
		cache: cache,
	}
}

type memoryCacheImpl[T any] struct {
	cache     otter.Cache[string, T]
	loadGroup singleflight.Group
}

// Get returns the value of the key.
func (s *memoryCacheImpl[T]) Get(_ context.Context, key string) (T, bool) {
	return s.cache.Get(key)
}

// Set saves the value of the key.
func (s *memoryCacheImpl[T]) Set(_ context.Context, key string, value T) {
	s.cache.Set(key, value)
}

// Delete removes the value of the key.
func (s *memoryCacheImpl[T]) Delete(_ context.Context, key string) {
	s.cache.Delete(key)
}

// Load returns the cached value of the key or loads it.
func (s *memoryCacheImpl[T]) Load(ctx context.Context, key string, loader Loader[T]) (T, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}
	loaded, err, _ := s.loadGroup.Do(key, func() (any, error) {
		if v, ok := s.cache.Get(key); ok {
			return v, nil
		}
		value, err := loader(ctx, key)
		if err != nil {
			return value, err
		}
		s.cache.Set(key, value)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return loaded.(T), nil
}
