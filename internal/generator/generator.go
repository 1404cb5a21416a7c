package generator

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/vanshika/worldsporta/backend/internal/domain"
)

// Dataset contains one generated slice per persisted collection.
type Dataset struct {
	News     []domain.NewsArticle `json:"news"`
	Scores   []domain.MatchScore  `json:"scores"`
	Products []domain.Product     `json:"products"`
	Users    []domain.User        `json:"users"`
	Orders   []domain.Order       `json:"orders"`
}

// Snapshot converts the dataset into the shape the repository persists.
func (d Dataset) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		News:     d.News,
		Scores:   d.Scores,
		Products: d.Products,
		Orders:   d.Orders,
		Users:    d.Users,
	}
}

// Generator produces synthetic storefront data.
type Generator struct {
	cfg       Config
	rand      *rand.Rand
	fragments fragments
	now       time.Time
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumNews <= 0 {
		cfg.NumNews = def.NumNews
	}
	if cfg.NumScores <= 0 {
		cfg.NumScores = def.NumScores
	}
	if cfg.NumProducts <= 0 {
		cfg.NumProducts = def.NumProducts
	}
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = def.NumUsers
	}
	if cfg.NumOrders < 0 {
		cfg.NumOrders = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:       cfg,
		rand:      rand.New(rand.NewSource(cfg.Seed)),
		fragments: defaultFragments(),
		now:       time.Now().UTC().Truncate(time.Second),
	}
}

// WithClock pins the reference time used for dates (used primarily in tests).
func (g *Generator) WithClock(now time.Time) *Generator {
	g.now = now.UTC()
	return g
}

// Generate synthesises every collection. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	var ds Dataset

	ds.News = make([]domain.NewsArticle, g.cfg.NumNews)
	for i := range ds.News {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		sport := g.pick(g.fragments.sports)
		ds.News[i] = domain.NewsArticle{
			ID:         fmt.Sprintf("NEWS-%05d", i+1),
			Title:      fmt.Sprintf("%s %s %s", g.pick(g.fragments.teams), g.pick(g.fragments.verbs), g.pick(g.fragments.teams)),
			Summary:    fmt.Sprintf("%s roundup from the %s.", sport, g.pick(g.fragments.leagues)),
			Content:    g.pick(g.fragments.paragraphs),
			Category:   sport,
			Author:     g.pick(g.fragments.authors),
			ImageURL:   fmt.Sprintf("https://images.worldsporta.com/news/%05d.jpg", i+1),
			Date:       g.now.Add(-time.Duration(g.rand.Intn(30*24)) * time.Hour),
			IsFeatured: g.rand.Float64() < 0.1,
		}
	}

	ds.Scores = make([]domain.MatchScore, g.cfg.NumScores)
	for i := range ds.Scores {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		home, away := g.pickPair(g.fragments.teams)
		score := domain.MatchScore{
			ID:       fmt.Sprintf("MATCH-%05d", i+1),
			Sport:    g.pick(g.fragments.sports),
			League:   g.pick(g.fragments.leagues),
			HomeTeam: home,
			AwayTeam: away,
			Status:   g.randomMatchStatus(),
		}
		switch score.Status {
		case domain.MatchLive:
			score.HomeScore, score.AwayScore = g.rand.Intn(5), g.rand.Intn(5)
			score.Time = fmt.Sprintf("%d'", 1+g.rand.Intn(90))
		case domain.MatchFinished:
			score.HomeScore, score.AwayScore = g.rand.Intn(6), g.rand.Intn(6)
			score.Time = "FT"
		default:
			score.Time = fmt.Sprintf("%02d:%02d", 12+g.rand.Intn(10), 15*g.rand.Intn(4))
		}
		ds.Scores[i] = score
	}

	ds.Products = make([]domain.Product, g.cfg.NumProducts)
	for i := range ds.Products {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		category := g.pick(g.fragments.categories)
		ds.Products[i] = domain.Product{
			ID:          fmt.Sprintf("PRD-%05d", i+1),
			Name:        fmt.Sprintf("%s %s", g.pick(g.fragments.brands), g.pick(g.fragments.items[category])),
			Description: fmt.Sprintf("%s gear for match day.", category),
			Price:       roundCents(g.rand.Float64()*280 + 19.99),
			Category:    category,
			ImageURL:    fmt.Sprintf("https://images.worldsporta.com/shop/%05d.jpg", i+1),
			Stock:       g.rand.Intn(200),
		}
	}

	ds.Users = make([]domain.User, g.cfg.NumUsers)
	for i := range ds.Users {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		first, last := g.pick(g.fragments.first), g.pick(g.fragments.last)
		role := domain.RoleUser
		if i == 0 {
			role = domain.RoleAdmin
		}
		ds.Users[i] = domain.User{
			ID:        fmt.Sprintf("USR-%06d", i+1),
			Username:  fmt.Sprintf("%s%s%d", strings.ToLower(first), strings.ToLower(last), i+1),
			Email:     fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i+1, g.pick(g.fragments.domains)),
			Password:  fmt.Sprintf("pass-%04d", g.rand.Intn(10000)),
			Role:      role,
			IsBlocked: g.rand.Float64() < 0.03,
			CreatedAt: g.now.Add(-time.Duration(g.rand.Intn(365*24)) * time.Hour),
		}
	}

	ds.Orders = make([]domain.Order, g.cfg.NumOrders)
	for i := range ds.Orders {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		ds.Orders[i] = g.randomOrder(i, ds.Users, ds.Products)
	}

	return ds, nil
}

func (g *Generator) randomOrder(i int, users []domain.User, products []domain.Product) domain.Order {
	count := 1 + g.rand.Intn(3)
	items := make([]domain.CartItem, 0, count)
	seen := make(map[string]int, count)
	for j := 0; j < count; j++ {
		p := products[g.rand.Intn(len(products))]
		if idx, ok := seen[p.ID]; ok {
			items[idx].Quantity++
			continue
		}
		seen[p.ID] = len(items)
		items = append(items, domain.CartItem{Product: p, Quantity: 1 + g.rand.Intn(2)})
	}

	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}

	return domain.Order{
		ID:     fmt.Sprintf("ORD-%07d", i+1),
		UserID: users[g.rand.Intn(len(users))].ID,
		Items:  items,
		Total:  roundCents(total),
		Date:   g.now.Add(-time.Duration(g.rand.Intn(90*24)) * time.Hour),
		Status: g.randomOrderStatus(),
	}
}

func (g *Generator) pick(options []string) string {
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) pickPair(options []string) (string, string) {
	a := g.rand.Intn(len(options))
	b := g.rand.Intn(len(options))
	if a == b {
		b = (b + 1) % len(options)
	}
	return options[a], options[b]
}

func (g *Generator) randomMatchStatus() domain.MatchStatus {
	statuses := []domain.MatchStatus{domain.MatchUpcoming, domain.MatchLive, domain.MatchFinished}
	return statuses[g.rand.Intn(len(statuses))]
}

func (g *Generator) randomOrderStatus() domain.OrderStatus {
	statuses := []domain.OrderStatus{domain.OrderProcessing, domain.OrderShipped, domain.OrderDelivered, domain.OrderCancelled}
	return statuses[g.rand.Intn(len(statuses))]
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

type fragments struct {
	sports     []string
	leagues    []string
	teams      []string
	verbs      []string
	authors    []string
	paragraphs []string
	categories []string
	brands     []string
	items      map[string][]string
	first      []string
	last       []string
	domains    []string
}

func defaultFragments() fragments {
	return fragments{
		sports:  []string{"Football", "Basketball", "Tennis", "Cricket", "Rugby", "Formula 1"},
		leagues: []string{"Premier League", "La Liga", "NBA", "ATP Tour", "Six Nations", "IPL"},
		teams: []string{"Arsenal", "Chelsea", "Barcelona", "Sevilla", "Lakers", "Celtics", "Warriors",
			"India", "Australia", "England", "All Blacks", "Ferrari", "McLaren"},
		verbs:   []string{"edge past", "stun", "hold", "rout", "outlast", "draw with"},
		authors: []string{"Sports Desk", "Courtside Staff", "Baseline Report", "Pit Lane Wire", "Touchline Team"},
		paragraphs: []string{
			"A late surge turned the contest on its head as the visitors ran out of legs.",
			"Tactical changes at the break paid off with two quick goals.",
			"The defending champions were made to work for every point.",
			"Fans will remember this one for the drama in the final minutes.",
		},
		categories: []string{"Apparel", "Equipment", "Footwear", "Accessories"},
		brands:     []string{"Velocity", "Apex", "Strata", "Pulse", "Summit", "Forge"},
		items: map[string][]string{
			"Apparel":     {"Home Jersey", "Training Top", "Rain Jacket", "Compression Tights"},
			"Equipment":   {"Match Ball", "Tennis Racket", "Cricket Bat", "Shin Guards"},
			"Footwear":    {"Running Shoes", "Football Boots", "Court Trainers"},
			"Accessories": {"Water Bottle", "Kit Bag", "Sweatband Set", "Cap"},
		},
		first:   []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma"},
		last:    []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Silva"},
		domains: []string{"example.com", "mail.com", "worldsporta.com", "fans.net"},
	}
}
