// Package repository mirrors the application's collections into a durable
// key-value namespace, one slot per collection.
package repository

import (
	"context"
	"log/slog"

	"github.com/vanshika/worldsporta/backend/internal/domain"
	"github.com/vanshika/worldsporta/backend/internal/kv"
)

// Slot keys in the durable namespace.
const (
	KeyCurrentUser = "ws_user"
	KeyNews        = "ws_news"
	KeyScores      = "ws_scores"
	KeyProducts    = "ws_products"
	KeyOrders      = "ws_orders"
	KeyUsers       = "ws_users"
)

// Repository groups the typed slots of every persisted collection.
type Repository struct {
	CurrentUser Value[*domain.User]
	News        Collection[domain.NewsArticle]
	Scores      Collection[domain.MatchScore]
	Products    Collection[domain.Product]
	Orders      Collection[domain.Order]
	Users       Collection[domain.User]

	ns kv.Namespace
}

// New binds every slot to ns.
func New(ns kv.Namespace, logger *slog.Logger) *Repository {
	logger = logger.With("component", "repository")
	return &Repository{
		CurrentUser: NewValue[*domain.User](ns, KeyCurrentUser, logger),
		News:        NewCollection[domain.NewsArticle](ns, KeyNews, logger),
		Scores:      NewCollection[domain.MatchScore](ns, KeyScores, logger),
		Products:    NewCollection[domain.Product](ns, KeyProducts, logger),
		Orders:      NewCollection[domain.Order](ns, KeyOrders, logger),
		Users:       NewCollection[domain.User](ns, KeyUsers, logger),
		ns:          ns,
	}
}

// Load rehydrates every slot, substituting the matching field of defaults for
// any slot that is absent or corrupt.
func (r *Repository) Load(ctx context.Context, defaults domain.Snapshot) domain.Snapshot {
	return domain.Snapshot{
		CurrentUser: r.CurrentUser.Load(ctx, defaults.CurrentUser),
		News:        r.News.Load(ctx, defaults.News),
		Scores:      r.Scores.Load(ctx, defaults.Scores),
		Products:    r.Products.Load(ctx, defaults.Products),
		Orders:      r.Orders.Load(ctx, defaults.Orders),
		Users:       r.Users.Load(ctx, defaults.Users),
	}
}

// Persist writes every slot from snap, the current user included. It is run
// after Load so that defaults substituted for absent or corrupt slots reach
// the namespace. Failures are logged per slot.
func (r *Repository) Persist(ctx context.Context, snap domain.Snapshot) {
	r.CurrentUser.Save(ctx, snap.CurrentUser)
	r.News.Save(ctx, snap.News)
	r.Scores.Save(ctx, snap.Scores)
	r.Products.Save(ctx, snap.Products)
	r.Orders.Save(ctx, snap.Orders)
	r.Users.Save(ctx, snap.Users)
}

// ImportTask writes one collection and reports whether it landed.
type ImportTask struct {
	Key   string
	Count int
	Run   func(ctx context.Context) error
}

// ImportTasks returns one write per persisted collection of snap. The
// current-user slot is not included: imports never sign anybody in.
func (r *Repository) ImportTasks(snap domain.Snapshot) []ImportTask {
	return []ImportTask{
		{Key: KeyNews, Count: len(snap.News), Run: func(ctx context.Context) error { return r.News.Store(ctx, snap.News) }},
		{Key: KeyScores, Count: len(snap.Scores), Run: func(ctx context.Context) error { return r.Scores.Store(ctx, snap.Scores) }},
		{Key: KeyProducts, Count: len(snap.Products), Run: func(ctx context.Context) error { return r.Products.Store(ctx, snap.Products) }},
		{Key: KeyOrders, Count: len(snap.Orders), Run: func(ctx context.Context) error { return r.Orders.Store(ctx, snap.Orders) }},
		{Key: KeyUsers, Count: len(snap.Users), Run: func(ctx context.Context) error { return r.Users.Store(ctx, snap.Users) }},
	}
}

// Probe reports whether the underlying namespace is reachable.
func (r *Repository) Probe(ctx context.Context) error {
	return r.ns.Ping(ctx)
}
