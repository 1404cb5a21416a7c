package generator

import (
	"time"

	"github.com/vanshika/worldsporta/backend/internal/domain"
)

// DefaultAdminEmail identifies the seeded administrator account.
const DefaultAdminEmail = "admin@worldsporta.com"

// Defaults returns the seed snapshot substituted for absent or corrupt slots.
// Nobody is signed in and there are no orders.
func Defaults(now time.Time, adminPassword string) domain.Snapshot {
	return domain.Snapshot{
		News:     initialNews(now),
		Scores:   initialScores(),
		Products: initialProducts(),
		Orders:   []domain.Order{},
		Users: []domain.User{{
			ID:        "1",
			Username:  "admin",
			Email:     DefaultAdminEmail,
			Password:  adminPassword,
			Role:      domain.RoleAdmin,
			CreatedAt: now.UTC(),
		}},
	}
}

func initialNews(now time.Time) []domain.NewsArticle {
	day := now.UTC().Truncate(24 * time.Hour)
	return []domain.NewsArticle{
		{
			ID:         "1",
			Title:      "Late Winner Seals Derby Glory",
			Summary:    "A stoppage-time header settles a fierce city derby in front of a record crowd.",
			Content:    "The hosts looked set for a draw until a corner in the 94th minute found the captain unmarked at the far post.",
			Category:   "Football",
			Author:     "Sports Desk",
			ImageURL:   "https://images.worldsporta.com/news/derby.jpg",
			Date:       day,
			IsFeatured: true,
		},
		{
			ID:       "2",
			Title:    "Rookie Guard Drops 40 in Playoff Debut",
			Summary:  "A first-year guard announces himself on the biggest stage with a career night.",
			Content:  "Shooting 7 of 10 from deep, the rookie carried the offence through a tense fourth quarter.",
			Category: "Basketball",
			Author:   "Courtside Staff",
			ImageURL: "https://images.worldsporta.com/news/playoffs.jpg",
			Date:     day.Add(-24 * time.Hour),
		},
		{
			ID:       "3",
			Title:    "Five-Set Epic Ends After Midnight",
			Summary:  "The longest match of the tournament finishes in a final-set tiebreak.",
			Content:  "Both players saved multiple match points before the decider went the distance.",
			Category: "Tennis",
			Author:   "Baseline Report",
			ImageURL: "https://images.worldsporta.com/news/tennis.jpg",
			Date:     day.Add(-48 * time.Hour),
		},
	}
}

func initialScores() []domain.MatchScore {
	return []domain.MatchScore{
		{ID: "1", Sport: "Football", League: "Premier League", HomeTeam: "Arsenal", AwayTeam: "Chelsea", HomeScore: 2, AwayScore: 1, Status: domain.MatchLive, Time: "78'"},
		{ID: "2", Sport: "Basketball", League: "NBA", HomeTeam: "Lakers", AwayTeam: "Celtics", HomeScore: 108, AwayScore: 112, Status: domain.MatchFinished, Time: "FT"},
		{ID: "3", Sport: "Football", League: "La Liga", HomeTeam: "Barcelona", AwayTeam: "Sevilla", Status: domain.MatchUpcoming, Time: "20:00"},
		{ID: "4", Sport: "Cricket", League: "Test Series", HomeTeam: "India", AwayTeam: "Australia", HomeScore: 287, AwayScore: 154, Status: domain.MatchLive, Time: "Day 2"},
	}
}

func initialProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Elite Match Ball", Description: "FIFA quality pro match ball.", Price: 149.99, Category: "Equipment", ImageURL: "https://images.worldsporta.com/shop/ball.jpg", Stock: 40},
		{ID: "2", Name: "Pro Home Jersey", Description: "Breathable replica home kit.", Price: 89.99, Category: "Apparel", ImageURL: "https://images.worldsporta.com/shop/jersey.jpg", Stock: 120},
		{ID: "3", Name: "Velocity Running Shoes", Description: "Carbon-plated racing flats.", Price: 219.00, Category: "Footwear", ImageURL: "https://images.worldsporta.com/shop/shoes.jpg", Stock: 25},
		{ID: "4", Name: "Carbon Tennis Racket", Description: "Lightweight 300g frame.", Price: 189.50, Category: "Equipment", ImageURL: "https://images.worldsporta.com/shop/racket.jpg", Stock: 18},
	}
}
