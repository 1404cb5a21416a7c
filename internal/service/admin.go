package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/vanshika/worldsporta/backend/internal/domain"
)

// Administrative operations replace whole collections. No uniqueness or
// referential checks are applied: an order may reference a deleted product.

// ReplaceNews swaps the whole news collection.
func (s *SiteService) ReplaceNews(ctx context.Context, items []domain.NewsArticle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.news = slices.Clone(items)
	s.repo.News.Save(ctx, s.news)
}

// ReplaceScores swaps the whole scores collection.
func (s *SiteService) ReplaceScores(ctx context.Context, items []domain.MatchScore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = slices.Clone(items)
	s.repo.Scores.Save(ctx, s.scores)
}

// ReplaceProducts swaps the whole product catalogue.
func (s *SiteService) ReplaceProducts(ctx context.Context, items []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = slices.Clone(items)
	s.repo.Products.Save(ctx, s.products)
}

// ReplaceOrders swaps the whole orders collection.
func (s *SiteService) ReplaceOrders(ctx context.Context, items []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = slices.Clone(items)
	s.repo.Orders.Save(ctx, s.orders)
}

// ReplaceUsers swaps the whole users collection. An incoming account without a
// password keeps the password stored for the same id, since listings never
// carry credentials.
func (s *SiteService) ReplaceUsers(ctx context.Context, items []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(map[string]string, len(s.users))
	for _, u := range s.users {
		stored[u.ID] = u.Password
	}
	next := slices.Clone(items)
	for i := range next {
		if next[i].Password == "" {
			next[i].Password = stored[next[i].ID]
		}
	}
	s.users = next
	s.repo.Users.Save(ctx, s.users)
}

// Users returns every account.
func (s *SiteService) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.users)
}

// PublishNews places article at the head of the feed. Missing id and date are
// filled in.
func (s *SiteService) PublishNews(ctx context.Context, article domain.NewsArticle) (domain.NewsArticle, error) {
	if strings.TrimSpace(article.Title) == "" {
		return domain.NewsArticle{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if article.ID == "" {
		article.ID = s.idFn()
	}
	if article.Date.IsZero() {
		article.Date = s.nowFn().UTC()
	}
	s.news = append([]domain.NewsArticle{article}, s.news...)
	s.repo.News.Save(ctx, s.news)
	return article, nil
}

// DeleteNews removes the article with id.
func (s *SiteService) DeleteNews(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := without(s.news, func(a domain.NewsArticle) bool { return a.ID == id })
	if !ok {
		return fmt.Errorf("news %s: %w", id, ErrNotFound)
	}
	s.news = next
	s.repo.News.Save(ctx, s.news)
	return nil
}

// SaveScore replaces the scoreline with the same id, or appends it.
func (s *SiteService) SaveScore(ctx context.Context, score domain.MatchScore) (domain.MatchScore, error) {
	if score.HomeTeam == "" || score.AwayTeam == "" {
		return domain.MatchScore{}, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if score.ID == "" {
		score.ID = s.idFn()
	}
	s.scores = upsert(s.scores, score, func(m domain.MatchScore) bool { return m.ID == score.ID })
	s.repo.Scores.Save(ctx, s.scores)
	return score, nil
}

// DeleteScore removes the scoreline with id.
func (s *SiteService) DeleteScore(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := without(s.scores, func(m domain.MatchScore) bool { return m.ID == id })
	if !ok {
		return fmt.Errorf("score %s: %w", id, ErrNotFound)
	}
	s.scores = next
	s.repo.Scores.Save(ctx, s.scores)
	return nil
}

// SaveProduct replaces the product with the same id, or appends it. Cart lines
// and past orders keep the details they captured.
func (s *SiteService) SaveProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if strings.TrimSpace(product.Name) == "" {
		return domain.Product{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if product.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == "" {
		product.ID = s.idFn()
	}
	s.products = upsert(s.products, product, func(p domain.Product) bool { return p.ID == product.ID })
	s.repo.Products.Save(ctx, s.products)
	return product, nil
}

// DeleteProduct removes the product with id.
func (s *SiteService) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := without(s.products, func(p domain.Product) bool { return p.ID == id })
	if !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	s.products = next
	s.repo.Products.Save(ctx, s.products)
	return nil
}

// UpdateOrderStatus moves an order to status.
func (s *SiteService) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.orders, func(o domain.Order) bool { return o.ID == id })
	if idx < 0 {
		return domain.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	s.orders = slices.Clone(s.orders)
	s.orders[idx].Status = status
	s.repo.Orders.Save(ctx, s.orders)
	return cloneOrder(s.orders[idx]), nil
}

// DeleteOrder removes the order with id.
func (s *SiteService) DeleteOrder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := without(s.orders, func(o domain.Order) bool { return o.ID == id })
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	s.orders = next
	s.repo.Orders.Save(ctx, s.orders)
	return nil
}

// UserPatch carries the account fields an administrator may change.
type UserPatch struct {
	Role      *domain.Role
	IsBlocked *bool
}

// UpdateUser applies patch to the account with id. When the account is the
// signed-in one, the current-user slot is refreshed as well.
func (s *SiteService) UpdateUser(ctx context.Context, id string, patch UserPatch) (domain.User, error) {
	if patch.Role != nil && *patch.Role != domain.RoleUser && *patch.Role != domain.RoleAdmin {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *patch.Role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.users, func(u domain.User) bool { return u.ID == id })
	if idx < 0 {
		return domain.User{}, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}

	s.users = slices.Clone(s.users)
	if patch.Role != nil {
		s.users[idx].Role = *patch.Role
	}
	if patch.IsBlocked != nil {
		s.users[idx].IsBlocked = *patch.IsBlocked
	}
	s.repo.Users.Save(ctx, s.users)

	updated := s.users[idx]
	if s.currentUser != nil && s.currentUser.ID == id {
		s.setCurrentUser(ctx, &updated)
	}
	return updated, nil
}

// DeleteUser removes the account with id. Orders placed by it are kept.
func (s *SiteService) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := without(s.users, func(u domain.User) bool { return u.ID == id })
	if !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	s.users = next
	s.repo.Users.Save(ctx, s.users)
	return nil
}

// Stats summarises the collections for the dashboard.
type Stats struct {
	News         int
	Scores       int
	LiveMatches  int
	Products     int
	Orders       int
	Users        int
	BlockedUsers int
	Revenue      float64
}

// Stats computes dashboard counters. Cancelled orders do not count as revenue.
func (s *SiteService) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		News:     len(s.news),
		Scores:   len(s.scores),
		Products: len(s.products),
		Orders:   len(s.orders),
		Users:    len(s.users),
	}
	for _, m := range s.scores {
		if m.Status == domain.MatchLive {
			st.LiveMatches++
		}
	}
	for _, u := range s.users {
		if u.IsBlocked {
			st.BlockedUsers++
		}
	}
	var revenue float64
	for _, o := range s.orders {
		if o.Status != domain.OrderCancelled {
			revenue += o.Total
		}
	}
	st.Revenue = math.Round(revenue*100) / 100
	return st
}

// without returns a copy of items minus every element matching drop, and
// whether anything was dropped.
func without[T any](items []T, drop func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !drop(item) {
			out = append(out, item)
		}
	}
	return out, len(out) != len(items)
}

func upsert[T any](items []T, item T, match func(T) bool) []T {
	out := slices.Clone(items)
	if idx := slices.IndexFunc(out, match); idx >= 0 {
		out[idx] = item
		return out
	}
	return append(out, item)
}
