package server

import (
	"context"

	"github.com/vanshika/worldsporta/backend/internal/kv"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// StorageHealthService verifies that the durable namespace answers.
type StorageHealthService struct {
	Namespace kv.Namespace
}

// Probe implements the HealthService interface.
func (s StorageHealthService) Probe(ctx context.Context) error {
	if s.Namespace == nil {
		return nil
	}
	return s.Namespace.Ping(ctx)
}
