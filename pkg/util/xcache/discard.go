package xcache

import (
	"context"
)

// NewDiscard returns a cache which stores nothing, every Load calls the loader.
func NewDiscard[T any]() Cache[T] {
	return discardCacheImpl[T]{}
}

type discardCacheImpl[T any] struct{}

// Get always misses.
func (discardCacheImpl[T]) Get(_ context.Context, _ string) (T, bool) {
	var zero T
	return zero, false
}

// Set does nothing.
func (discardCacheImpl[T]) Set(_ context.Context, _ string, _ T) {}

// Delete does nothing.
func (discardCacheImpl[T]) Delete(_ context.Context, _ string) {}

// Load calls loader.
func (discardCacheImpl[T]) Load(ctx context.Context, key string, loader Loader[T]) (T, error) {
	return loader(ctx, key)
}
