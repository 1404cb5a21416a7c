package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/worldsporta/backend/internal/domain"
)

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func smallConfig() Config {
	return Config{NumNews: 5, NumScores: 6, NumProducts: 8, NumUsers: 4, NumOrders: 10, Seed: 7}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := New(smallConfig()).WithClock(fixedNow).Generate(context.Background())
	require.NoError(t, err)
	b, err := New(smallConfig()).WithClock(fixedNow).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a.News, 5)
	assert.Len(t, a.Scores, 6)
	assert.Len(t, a.Products, 8)
	assert.Len(t, a.Users, 4)
	assert.Len(t, a.Orders, 10)
}

func TestGenerateOrdersSnapshotProducts(t *testing.T) {
	ds, err := New(smallConfig()).WithClock(fixedNow).Generate(context.Background())
	require.NoError(t, err)

	userIDs := map[string]bool{}
	for _, u := range ds.Users {
		userIDs[u.ID] = true
	}
	products := map[string]domain.Product{}
	for _, p := range ds.Products {
		products[p.ID] = p
	}

	for _, order := range ds.Orders {
		assert.True(t, userIDs[order.UserID], "order %s references unknown user", order.ID)
		require.NotEmpty(t, order.Items)

		var total float64
		seen := map[string]bool{}
		for _, item := range order.Items {
			assert.False(t, seen[item.ID], "duplicate cart line for %s", item.ID)
			seen[item.ID] = true
			assert.Equal(t, products[item.ID], item.Product)
			assert.Positive(t, item.Quantity)
			total += item.Subtotal()
		}
		assert.InDelta(t, total, order.Total, 0.01)
		assert.True(t, order.Status.Valid())
	}
}

func TestGenerateHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(smallConfig()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteAndReadDataset(t *testing.T) {
	dir := t.TempDir()
	ds, err := New(smallConfig()).WithClock(fixedNow).Generate(context.Background())
	require.NoError(t, err)

	require.NoError(t, WriteDataset(ds, dir))
	got, err := ReadDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, ds, got)

	_, err = ReadDataset(t.TempDir())
	assert.Error(t, err)
}

func TestWriteJSONReportsWriteFailures(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	err := writeJSON("/dev/full", smallConfig())
	assert.Error(t, err)

	assert.NoError(t, writeJSON(filepath.Join(t.TempDir(), "cfg.json"), smallConfig()))
}

func TestWriteDatasetRejectsFileAsDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.Error(t, WriteDataset(Dataset{}, path))
}

func TestDefaults(t *testing.T) {
	snap := Defaults(fixedNow, "s3cret")

	assert.Nil(t, snap.CurrentUser)
	assert.NotEmpty(t, snap.News)
	assert.NotEmpty(t, snap.Scores)
	assert.NotEmpty(t, snap.Products)
	assert.NotNil(t, snap.Orders)
	assert.Empty(t, snap.Orders)

	require.Len(t, snap.Users, 1)
	admin := snap.Users[0]
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, DefaultAdminEmail, admin.Email)
	assert.Equal(t, "s3cret", admin.Password)
	assert.True(t, admin.IsAdmin())
	assert.False(t, admin.IsBlocked)
}
