package repository

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/worldsporta/backend/internal/domain"
	"github.com/vanshika/worldsporta/backend/internal/kv"
	"github.com/vanshika/worldsporta/backend/internal/logging"
)

func sampleSnapshot() domain.Snapshot {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	kit := domain.Product{ID: "p1", Name: "Pro Jersey", Price: 89.99, Category: "Apparel", Stock: 10}
	admin := domain.User{ID: "1", Username: "admin", Email: "admin@worldsporta.com", Role: domain.RoleAdmin, CreatedAt: created}
	return domain.Snapshot{
		CurrentUser: &admin,
		News:        []domain.NewsArticle{{ID: "n1", Title: "Derby day", Category: "Football", Date: created}},
		Scores:      []domain.MatchScore{{ID: "s1", HomeTeam: "Lions", AwayTeam: "Hawks", HomeScore: 2, AwayScore: 1, Status: domain.MatchLive}},
		Products:    []domain.Product{kit},
		Orders: []domain.Order{{
			ID: "o1", UserID: "1", Total: 179.98, Date: created, Status: domain.OrderProcessing,
			Items: []domain.CartItem{{Product: kit, Quantity: 2}},
		}},
		Users: []domain.User{admin},
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ns := kv.NewMemoryNamespace()
	repo := New(ns, logging.Discard())

	want := sampleSnapshot()
	repo.CurrentUser.Save(ctx, want.CurrentUser)
	for _, task := range repo.ImportTasks(want) {
		require.NoError(t, task.Run(ctx))
	}

	got := repo.Load(ctx, domain.Snapshot{})
	assert.Equal(t, want, got)
}

func TestRepository_LoadFallsBackPerSlot(t *testing.T) {
	ctx := context.Background()
	ns := kv.NewMemoryNamespace()
	repo := New(ns, logging.Discard())

	require.NoError(t, ns.Put(ctx, KeyNews, []byte(`{"id":"not-a-list"}`)))
	require.NoError(t, ns.Put(ctx, KeyScores, []byte(`[{"id":`)))
	require.NoError(t, ns.Put(ctx, KeyProducts, []byte(`null`)))
	require.NoError(t, ns.Put(ctx, KeyOrders, []byte(`[]`)))
	require.NoError(t, ns.Put(ctx, KeyCurrentUser, []byte(`"garbage"`)))

	defaults := sampleSnapshot()
	got := repo.Load(ctx, defaults)

	assert.Equal(t, defaults.News, got.News, "object instead of array")
	assert.Equal(t, defaults.Scores, got.Scores, "truncated JSON")
	assert.Equal(t, defaults.Products, got.Products, "null is not an array")
	assert.Empty(t, got.Orders, "a stored empty array wins over the default")
	assert.NotNil(t, got.Orders)
	assert.Equal(t, defaults.Users, got.Users, "absent slot")
	assert.Equal(t, defaults.CurrentUser, got.CurrentUser, "wrong shape for a user")
}

func TestValue_NullCurrentUser(t *testing.T) {
	ctx := context.Background()
	ns := kv.NewMemoryNamespace()
	repo := New(ns, logging.Discard())

	repo.CurrentUser.Save(ctx, nil)

	raw, err := ns.Get(ctx, KeyCurrentUser)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	fallback := &domain.User{ID: "ignored"}
	assert.Nil(t, repo.CurrentUser.Load(ctx, fallback))
}

func TestCollection_SaveNilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	ns := kv.NewMemoryNamespace()
	orders := NewCollection[domain.Order](ns, KeyOrders, logging.Discard())

	orders.Save(ctx, nil)

	raw, err := ns.Get(ctx, KeyOrders)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
	assert.Empty(t, orders.Load(ctx, []domain.Order{{ID: "default"}}))
}

func TestCollection_WhitespaceOnlyIsAbsent(t *testing.T) {
	ctx := context.Background()
	ns := kv.NewMemoryNamespace()
	require.NoError(t, ns.Put(ctx, KeyNews, []byte("  \n")))

	news := NewCollection[domain.NewsArticle](ns, KeyNews, logging.Discard())
	fallback := []domain.NewsArticle{{ID: "seed"}}
	assert.Equal(t, fallback, news.Load(ctx, fallback))
}

type brokenNamespace struct {
	kv.Namespace
	err error
}

func (b brokenNamespace) Get(context.Context, string) ([]byte, error) { return nil, b.err }
func (b brokenNamespace) Put(context.Context, string, []byte) error  { return b.err }

func TestSlots_FailuresAreAbsorbedAndLogged(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	ns := brokenNamespace{err: kv.ErrLoadFailed}
	repo := New(ns, logger)

	defaults := sampleSnapshot()
	assert.NotPanics(t, func() {
		got := repo.Load(ctx, defaults)
		assert.Equal(t, defaults, got)
		repo.Products.Save(ctx, defaults.Products)
		repo.CurrentUser.Save(ctx, nil)
	})

	assert.Contains(t, logs.String(), "slot read failed")
	assert.Contains(t, logs.String(), "slot write failed")
	assert.Contains(t, logs.String(), "key=ws_products")
}

func TestCollection_StoreReportsErrors(t *testing.T) {
	boom := errors.New("disk full")
	users := NewCollection[domain.User](brokenNamespace{err: boom}, KeyUsers, logging.Discard())

	err := users.Store(context.Background(), []domain.User{{ID: "1"}})
	assert.ErrorIs(t, err, boom)
}

func TestRepository_ImportTasksSkipCurrentUser(t *testing.T) {
	repo := New(kv.NewMemoryNamespace(), logging.Discard())

	tasks := repo.ImportTasks(sampleSnapshot())

	keys := make([]string, 0, len(tasks))
	for _, task := range tasks {
		keys = append(keys, task.Key)
	}
	assert.ElementsMatch(t, []string{KeyNews, KeyScores, KeyProducts, KeyOrders, KeyUsers}, keys)
}

func TestRepository_Probe(t *testing.T) {
	repo := New(kv.NewMemoryNamespace(), logging.Discard())
	assert.NoError(t, repo.Probe(context.Background()))
}

func TestRepository_PersistRepairsCorruptSlots(t *testing.T) {
	ctx := context.Background()
	ns := kv.NewMemoryNamespace()
	require.NoError(t, ns.Put(ctx, KeyNews, []byte(`{"not":"a list"}`)))
	repo := New(ns, logging.Discard())

	defaults := sampleSnapshot()
	defaults.CurrentUser = nil
	repo.Persist(ctx, repo.Load(ctx, defaults))

	raw, err := ns.Get(ctx, KeyNews)
	require.NoError(t, err)
	assert.True(t, isJSONArray(raw))
	assert.Equal(t, defaults.News, repo.News.Load(ctx, nil))

	keys, err := ns.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyCurrentUser, KeyNews, KeyScores, KeyProducts, KeyOrders, KeyUsers}, keys)

	raw, err = ns.Get(ctx, KeyCurrentUser)
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
