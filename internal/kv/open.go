package kv

import (
	"context"
	"fmt"

	"github.com/vanshika/worldsporta/backend/internal/config"
	"github.com/vanshika/worldsporta/backend/internal/graph"
)

// Open builds the namespace selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg config.Config) (Namespace, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemoryNamespace(), nil
	case config.BackendFile:
		return NewFileNamespace(cfg.Storage.Path), nil
	case config.BackendSQLite:
		return OpenSQLite(cfg.Storage.Path)
	case config.BackendBolt:
		return OpenBolt(cfg.Storage.Path)
	case config.BackendNeo4j:
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			return nil, err
		}
		return NewGraphNamespace(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Storage.Backend)
	}
}
