package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vanshika/worldsporta/backend/internal/kv"
)

// Collection is an array-shaped slot. Loads tolerate absence and corruption by
// returning the caller's default; saves always write the whole slice. Neither
// operation reports failures to the caller: they are logged and absorbed.
type Collection[T any] struct {
	ns     kv.Namespace
	key    string
	logger *slog.Logger
}

// NewCollection binds a collection slot to key in ns.
func NewCollection[T any](ns kv.Namespace, key string, logger *slog.Logger) Collection[T] {
	return Collection[T]{ns: ns, key: key, logger: logger}
}

// Key returns the slot key.
func (c Collection[T]) Key() string { return c.key }

// Load returns the stored slice, or fallback when the slot is absent, unreadable,
// not a JSON array, or does not decode into []T.
func (c Collection[T]) Load(ctx context.Context, fallback []T) []T {
	raw, ok := read(ctx, c.ns, c.key, c.logger)
	if !ok {
		return fallback
	}
	if !isJSONArray(raw) {
		c.logger.Warn("slot does not hold an array, using default", "key", c.key)
		return fallback
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("slot decode failed, using default", "key", c.key, "error", err)
		return fallback
	}
	return items
}

// Save serializes items and overwrites the slot. A nil slice is stored as an
// empty array so that it loads back as a collection. Failures are logged.
func (c Collection[T]) Save(ctx context.Context, items []T) {
	if err := c.Store(ctx, items); err != nil {
		c.logger.Warn("slot write failed", "key", c.key, "error", err)
	}
}

// Store is Save for callers that need to know whether the write landed.
func (c Collection[T]) Store(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	return write(ctx, c.ns, c.key, items)
}

// Value is a slot holding a single JSON value. JSON null is a legitimate stored
// value and loads as the zero value of T.
type Value[T any] struct {
	ns     kv.Namespace
	key    string
	logger *slog.Logger
}

// NewValue binds a scalar slot to key in ns.
func NewValue[T any](ns kv.Namespace, key string, logger *slog.Logger) Value[T] {
	return Value[T]{ns: ns, key: key, logger: logger}
}

// Key returns the slot key.
func (v Value[T]) Key() string { return v.key }

// Load returns the stored value or fallback when absent or undecodable.
func (v Value[T]) Load(ctx context.Context, fallback T) T {
	raw, ok := read(ctx, v.ns, v.key, v.logger)
	if !ok {
		return fallback
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		v.logger.Warn("slot decode failed, using default", "key", v.key, "error", err)
		return fallback
	}
	return out
}

// Save serializes value and overwrites the slot. Failures are logged.
func (v Value[T]) Save(ctx context.Context, value T) {
	if err := write(ctx, v.ns, v.key, value); err != nil {
		v.logger.Warn("slot write failed", "key", v.key, "error", err)
	}
}

func read(ctx context.Context, ns kv.Namespace, key string, logger *slog.Logger) ([]byte, bool) {
	raw, err := ns.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			logger.Warn("slot read failed, using default", "key", key, "error", err)
		}
		return nil, false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}
	return raw, true
}

func write(ctx context.Context, ns kv.Namespace, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return ns.Put(ctx, key, raw)
}

func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
