// Package kv provides the durable key-value namespace that stands in for the
// browser's local storage. Keys are flat strings; values are opaque bytes that
// are always written and read whole.
package kv

import (
	"context"
	"errors"
)

// Namespace is a string-keyed store of whole values. Implementations are safe
// for concurrent use and perform I/O on every call without caching.
type Namespace interface {
	// Get returns the value stored at key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put creates or overwrites the value stored at key.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Missing keys are ignored.
	Delete(ctx context.Context, key string) error
	// Keys returns every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}

// Sentinel errors for namespace operations.
var (
	ErrKeyNotFound    = errors.New("key not found")
	ErrLoadFailed     = errors.New("load failed")
	ErrSaveFailed     = errors.New("save failed")
	ErrInvalidKey     = errors.New("invalid key")
	ErrUnknownBackend = errors.New("unknown storage backend")
)
