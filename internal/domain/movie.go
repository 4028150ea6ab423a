package domain

import "time"

// Movie represents a catalog entry. Movies are seeded once and read-only afterwards.
type Movie struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ReleaseYear   int       `json:"releaseYear"`
	PosterURL     string    `json:"posterUrl"`
	DefaultRating float64   `json:"defaultRating"`
	CreatedAt     time.Time `json:"-"`
}
