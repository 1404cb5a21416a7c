package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/worldsporta/backend/internal/domain"
	"github.com/vanshika/worldsporta/backend/internal/repository"
)

// SiteService owns the application state: the persisted collections, the
// signed-in user and the transient cart. Every transition runs under one lock,
// and every change to a persisted collection rewrites that whole collection.
type SiteService struct {
	mu     sync.Mutex
	repo   *repository.Repository
	logger *slog.Logger
	nowFn  func() time.Time
	idFn   func() string

	currentUser *domain.User
	news        []domain.NewsArticle
	scores      []domain.MatchScore
	products    []domain.Product
	orders      []domain.Order
	users       []domain.User
	cart        []domain.CartItem
}

// NewSiteService rehydrates state from repo, substituting defaults for any
// absent or corrupt slot, and writes the hydrated state back so every slot
// holds a valid value. The cart always starts empty.
func NewSiteService(ctx context.Context, repo *repository.Repository, defaults domain.Snapshot, logger *slog.Logger) *SiteService {
	snap := repo.Load(ctx, defaults)
	repo.Persist(ctx, snap)
	s := &SiteService{
		repo:        repo,
		logger:      logger.With("component", "site"),
		nowFn:       time.Now,
		idFn:        uuid.NewString,
		currentUser: snap.CurrentUser,
		news:        snap.News,
		scores:      snap.Scores,
		products:    snap.Products,
		orders:      snap.Orders,
		users:       snap.Users,
	}
	s.logger.Info("state loaded",
		"news", len(s.news),
		"scores", len(s.scores),
		"products", len(s.products),
		"orders", len(s.orders),
		"users", len(s.users),
		"signedIn", s.currentUser != nil,
	)
	return s
}

// WithClock overrides the time provider (used primarily in tests).
func (s *SiteService) WithClock(nowFn func() time.Time) *SiteService {
	if nowFn != nil {
		s.nowFn = nowFn
	}
	return s
}

// WithIDGenerator overrides identifier generation (used primarily in tests).
func (s *SiteService) WithIDGenerator(idFn func() string) *SiteService {
	if idFn != nil {
		s.idFn = idFn
	}
	return s
}

// Probe reports whether the durable namespace is reachable.
func (s *SiteService) Probe(ctx context.Context) error {
	return s.repo.Probe(ctx)
}

// CurrentUser returns the signed-in user, if any.
func (s *SiteService) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == nil {
		return domain.User{}, false
	}
	return *s.currentUser, true
}

// Login signs in the first user whose username or email matches identifier
// (case-insensitively) and whose password matches exactly. An empty password
// never matches.
func (s *SiteService) Login(ctx context.Context, identifier, password string) (domain.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if !strings.EqualFold(u.Username, identifier) && !strings.EqualFold(u.Email, identifier) {
			continue
		}
		if u.Password != password {
			continue
		}
		if u.IsBlocked {
			return domain.User{}, ErrUserBlocked
		}
		s.setCurrentUser(ctx, &u)
		s.logger.Info("user signed in", "userId", u.ID)
		return u, nil
	}
	return domain.User{}, ErrInvalidCredentials
}

// RegisterInput is the payload accepted by Register.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register appends an ordinary account and signs it in.
func (s *SiteService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	in.Username = normalizeUsername(in.Username)
	in.Email = normalizeEmail(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return domain.User{}, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}
	if !validEmail(in.Email) {
		return domain.User{}, fmt.Errorf("%w: email %q is not an address", ErrInvalidInput, in.Email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, in.Username) || strings.EqualFold(u.Email, in.Email) {
			return domain.User{}, ErrUserExists
		}
	}

	user := domain.User{
		ID:        s.idFn(),
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		Role:      domain.RoleUser,
		CreatedAt: s.nowFn().UTC(),
	}
	s.users = append(slices.Clip(s.users), user)
	s.repo.Users.Save(ctx, s.users)
	s.setCurrentUser(ctx, &user)
	s.logger.Info("user registered", "userId", user.ID)
	return user, nil
}

// Logout signs the current user out and empties the cart. Persisted
// collections are left untouched.
func (s *SiteService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCurrentUser(ctx, nil)
	s.cart = nil
}

func (s *SiteService) setCurrentUser(ctx context.Context, u *domain.User) {
	if u != nil {
		cp := *u
		u = &cp
	}
	s.currentUser = u
	s.repo.CurrentUser.Save(ctx, u)
}

// RequireUser returns the signed-in user or ErrNotAuthenticated.
func (s *SiteService) RequireUser() (domain.User, error) {
	u, ok := s.CurrentUser()
	if !ok {
		return domain.User{}, ErrNotAuthenticated
	}
	return u, nil
}

// RequireAdmin returns the signed-in user when it is an administrator.
func (s *SiteService) RequireAdmin() (domain.User, error) {
	u, err := s.RequireUser()
	if err != nil {
		return domain.User{}, err
	}
	if !u.IsAdmin() {
		return domain.User{}, ErrForbidden
	}
	return u, nil
}

// News returns the articles in stored order.
func (s *SiteService) News() []domain.NewsArticle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.news)
}

// Scores returns the scorelines, optionally restricted to one status.
func (s *SiteService) Scores(status domain.MatchStatus) []domain.MatchScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == "" {
		return slices.Clone(s.scores)
	}
	out := []domain.MatchScore{}
	for _, m := range s.scores {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}

// Products returns the catalogue, optionally restricted to one category.
func (s *SiteService) Products(category string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category == "" {
		return slices.Clone(s.products)
	}
	out := []domain.Product{}
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Product looks up a catalogue entry by id.
func (s *SiteService) Product(id string) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productLocked(id)
}

func (s *SiteService) productLocked(id string) (domain.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

// OrdersFor returns the order history of one user, newest first.
func (s *SiteService) OrdersFor(userID string) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

// Orders returns every order, newest first.
func (s *SiteService) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = cloneOrder(o)
	}
	return out
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	return o
}
