package domain

import "time"

// Rating represents a single user's star rating for a movie.
// There is at most one Rating per (UserID, MovieID).
type Rating struct {
	ID        string
	UserID    string
	MovieID   string
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether v is an accepted star value.
func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}
