package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/moviemeter/internal/domain"
	"github.com/Clark-Hu/moviemeter/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// UserStore persists accounts. Username and email lookups are case-insensitive.
type UserStore interface {
	Create(ctx context.Context, params UserCreateParams) (domain.User, error)
	// FindConflict returns a user whose username or email matches, preferring
	// a username match. It returns ErrNotFound when neither is taken.
	FindConflict(ctx context.Context, username, email string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

// MovieStore is the read-mostly catalog.
type MovieStore interface {
	List(ctx context.Context) ([]domain.Movie, error)
	GetByID(ctx context.Context, id string) (domain.Movie, error)
	Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error)
	ReplaceAll(ctx context.Context, movies []MovieCreateParams) (int, error)
}

// RatingStore keeps one rating per (user, movie).
type RatingStore interface {
	Upsert(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, error)
	Get(ctx context.Context, userID, movieID string) (domain.Rating, error)
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users   UserStore
	Movies  MovieStore
	Ratings RatingStore
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:   &UsersRepository{pool: pool},
		Movies:  &MoviesRepository{pool: pool},
		Ratings: &RatingsRepository{pool: pool},
	}
}
