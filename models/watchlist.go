package models

import "time"

// CatalogMovie is the persisted form of a found MovieRecord, unique on
// (title, year).
type CatalogMovie struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Year      string    `json:"year"`
	Genres    string    `json:"genres"` // comma-joined, as stored
	Rating    *float64  `json:"rating,omitempty"`
	Director  string    `json:"director"`
	Actors    string    `json:"actors"`
	Runtime   string    `json:"runtime"`
	Overview  string    `json:"overview"`
	PosterURL string    `json:"posterUrl"`
	ImdbID    string    `json:"imdbId"`
	DateAdded time.Time `json:"dateAdded"`
}

// Watchlist is a user-named collection of catalog movies.
type Watchlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	MovieCount  int       `json:"movieCount"`
}
