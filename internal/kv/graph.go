package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/vanshika/worldsporta/backend/internal/graph"
)

const (
	putSlotCypher = `
MERGE (s:Slot {key: $key})
SET s.value = $value, s.updatedAt = $updatedAt
`
	getSlotCypher = `
MATCH (s:Slot {key: $key})
RETURN s.value AS value
`
	deleteSlotCypher = `
MATCH (s:Slot {key: $key})
DETACH DELETE s
`
	listSlotKeysCypher = `
MATCH (s:Slot)
RETURN s.key AS key
ORDER BY key
`
)

// GraphNamespace stores each slot as a (:Slot {key}) node holding the value as
// a string property.
type GraphNamespace struct {
	client graph.Client
	nowFn  func() time.Time
}

// NewGraphNamespace wraps an established graph client. Close closes the client.
func NewGraphNamespace(client graph.Client) *GraphNamespace {
	return &GraphNamespace{client: client, nowFn: time.Now}
}

// Get reads the value property of the slot node for key.
func (s *GraphNamespace) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := s.client.ExecuteRead(ctx, getSlotCypher, map[string]any{"key": key})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, key, err)
	}
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	switch v := res.Records[0]["value"].(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	default:
		return nil, fmt.Errorf("%w: %s: unexpected value type %T", ErrLoadFailed, key, v)
	}
}

// Put merges the slot node for key and overwrites its value.
func (s *GraphNamespace) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	params := map[string]any{
		"key":       key,
		"value":     string(value),
		"updatedAt": s.nowFn().UTC().Format(time.RFC3339Nano),
	}
	if _, err := s.client.ExecuteWrite(ctx, putSlotCypher, params); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveFailed, key, err)
	}
	return nil
}

// Delete detaches and removes the slot node. Missing nodes are ignored.
func (s *GraphNamespace) Delete(ctx context.Context, key string) error {
	if _, err := s.client.ExecuteWrite(ctx, deleteSlotCypher, map[string]any{"key": key}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys returns the keys of every slot node, ordered by key.
func (s *GraphNamespace) Keys(ctx context.Context) ([]string, error) {
	res, err := s.client.ExecuteRead(ctx, listSlotKeysCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	keys := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		if k, ok := rec["key"].(string); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Ping verifies connectivity to the graph database.
func (s *GraphNamespace) Ping(ctx context.Context) error {
	return s.client.VerifyConnectivity(ctx)
}

// Close closes the underlying graph client.
func (s *GraphNamespace) Close() error {
	return s.client.Close(context.Background())
}
