package kv

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// MemoryNamespace keeps slots in a process-local map.
type MemoryNamespace struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryNamespace returns an empty in-memory namespace.
func NewMemoryNamespace() *MemoryNamespace {
	return &MemoryNamespace{slots: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryNamespace) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.slots[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return bytes.Clone(v), nil
}

// Put stores a copy of value under key.
func (m *MemoryNamespace) Put(_ context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[key] = slices.Clone(value)
	return nil
}

// Delete removes key. Missing keys are ignored.
func (m *MemoryNamespace) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryNamespace) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.slots))
	for k := range m.slots {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Ping always succeeds.
func (m *MemoryNamespace) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryNamespace) Close() error { return nil }
