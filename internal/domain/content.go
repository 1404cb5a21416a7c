package domain

import "time"

// NewsArticle is an editorial record.
type NewsArticle struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	Author     string    `json:"author"`
	ImageURL   string    `json:"imageUrl"`
	Date       time.Time `json:"date"`
	IsFeatured bool      `json:"isFeatured,omitempty"`
}

// MatchStatus is the broadcast state of a match.
type MatchStatus string

const (
	MatchUpcoming MatchStatus = "upcoming"
	MatchLive     MatchStatus = "live"
	MatchFinished MatchStatus = "finished"
)

// MatchScore is a live or historical scoreline.
type MatchScore struct {
	ID        string      `json:"id"`
	Sport     string      `json:"sport"`
	League    string      `json:"league"`
	HomeTeam  string      `json:"homeTeam"`
	AwayTeam  string      `json:"awayTeam"`
	HomeScore int         `json:"homeScore"`
	AwayScore int         `json:"awayScore"`
	Status    MatchStatus `json:"status"`
	Time      string      `json:"time"`
}

// Product is a shop catalogue entry.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
}
