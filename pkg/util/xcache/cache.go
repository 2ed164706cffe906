// Package xcache provides generic key-value caches with single-flight loading.
package xcache

import (
	"context"
)

// Cache stores values by key.
type Cache[T any] interface {
	// Get returns the value of the key.
	Get(ctx context.Context, key string) (T, bool)
	// Set saves the value of the key.
	Set(ctx context.Context, key string, value T)
	// Delete removes the value of the key.
	Delete(ctx context.Context, key string)
	// Load returns the value of the key, calling loader on a miss. Concurrent
	// misses on the same key share one loader call. Errors are not cached.
	Load(ctx context.Context, key string, loader Loader[T]) (T, error)
}

// Loader loads the value of the key.
type Loader[T any] func(ctx context.Context, key string) (T, error)
