// Package catalog holds the built-in movie list and the seeding routine.
package catalog

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/repository"
)

// DefaultMovies returns a copy of the built-in catalog in display order.
func DefaultMovies() []repository.MovieCreateParams {
	out := make([]repository.MovieCreateParams, len(defaultMovies))
	copy(out, defaultMovies)
	return out
}

// Seed replaces the stored catalog with movies. Existing ratings are dropped
// along with the movies they point at.
func Seed(ctx context.Context, store repository.MovieStore, movies []repository.MovieCreateParams, logger *logrus.Logger) (int, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	n, err := store.ReplaceAll(ctx, movies)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	logger.WithField("movies", n).Info("catalog seeded")
	return n, nil
}
