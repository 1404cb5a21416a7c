package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/worldsporta/backend/internal/generator"
	"github.com/vanshika/worldsporta/backend/internal/kv"
	"github.com/vanshika/worldsporta/backend/internal/logging"
	"github.com/vanshika/worldsporta/backend/internal/repository"
)

type failingNamespace struct {
	*kv.MemoryNamespace
	failKey string
}

func (f failingNamespace) Put(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return kv.ErrSaveFailed
	}
	return f.MemoryNamespace.Put(ctx, key, value)
}

func TestBulkImporterWritesEveryCollection(t *testing.T) {
	ctx := context.Background()
	ns := kv.NewMemoryNamespace()
	repo := repository.New(ns, logging.Discard())

	dataset, err := generator.New(generator.Config{NumNews: 4, NumScores: 3, NumProducts: 5, NumUsers: 2, NumOrders: 6, Seed: 7}).
		WithClock(testNow).
		Generate(ctx)
	require.NoError(t, err)

	require.NoError(t, NewBulkImporter(repo, 2, logging.Discard()).Import(ctx, dataset.Snapshot()))

	keys, err := ns.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		repository.KeyNews, repository.KeyScores, repository.KeyProducts, repository.KeyOrders, repository.KeyUsers,
	}, keys)

	loaded := repo.Load(ctx, generator.Defaults(testNow, "admin"))
	assert.Len(t, loaded.News, 4)
	assert.Len(t, loaded.Products, 5)
	assert.Len(t, loaded.Orders, 6)
	assert.Nil(t, loaded.CurrentUser)
}

func TestBulkImporterAggregatesErrors(t *testing.T) {
	ctx := context.Background()
	ns := failingNamespace{MemoryNamespace: kv.NewMemoryNamespace(), failKey: repository.KeyOrders}
	repo := repository.New(ns, logging.Discard())

	err := NewBulkImporter(repo, 0, logging.Discard()).Import(ctx, generator.Defaults(testNow, "admin"))
	require.Error(t, err)

	var taskErr *TaskError
	require.True(t, errors.As(err, &taskErr))
	assert.Len(t, taskErr.Errors, 1)
	assert.ErrorIs(t, err, kv.ErrSaveFailed)
	assert.Contains(t, err.Error(), repository.KeyOrders)
}

func TestBulkImporterStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	repo := repository.New(kv.NewMemoryNamespace(), logging.Discard())

	err := NewBulkImporter(repo, 1, logging.Discard()).Import(ctx, generator.Defaults(testNow, "admin"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTaskErrorMessage(t *testing.T) {
	var te TaskError
	assert.NoError(t, te.asError())
	te.append(nil)
	te.append(errors.New("first"))
	assert.Equal(t, "first", te.Error())
	te.append(errors.New("second"))
	assert.Equal(t, "multiple errors: first; second", te.Error())
}
