package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/domain"
	"github.com/Clark-Hu/moviemeter/internal/repository"
)

func TestDefaultMovies(t *testing.T) {
	movies := DefaultMovies()
	if len(movies) != 30 {
		t.Fatalf("len = %d, want 30", len(movies))
	}
	if movies[0].Title != "Inception" || movies[0].ReleaseYear != 2010 {
		t.Fatalf("first movie = %+v", movies[0])
	}

	seen := make(map[string]bool)
	for _, m := range movies {
		if seen[m.Title] {
			t.Errorf("duplicate title %q", m.Title)
		}
		seen[m.Title] = true
		if m.ReleaseYear < 1900 || m.ReleaseYear > 2100 {
			t.Errorf("%s: implausible year %d", m.Title, m.ReleaseYear)
		}
		if m.DefaultRating < 0 || m.DefaultRating > 5 {
			t.Errorf("%s: default rating %v out of range", m.Title, m.DefaultRating)
		}
		if !strings.HasPrefix(m.PosterURL, posterBase) {
			t.Errorf("%s: poster %q is not a w500 url", m.Title, m.PosterURL)
		}
	}
}

func TestDefaultMoviesReturnsCopy(t *testing.T) {
	a := DefaultMovies()
	a[0].Title = "changed"
	if DefaultMovies()[0].Title != "Inception" {
		t.Fatalf("DefaultMovies exposed shared backing array")
	}
}

type recordingMovies struct {
	replaced []repository.MovieCreateParams
	err      error
}

func (r *recordingMovies) List(context.Context) ([]domain.Movie, error) { return nil, nil }
func (r *recordingMovies) GetByID(context.Context, string) (domain.Movie, error) {
	return domain.Movie{}, repository.ErrNotFound
}
func (r *recordingMovies) Create(context.Context, repository.MovieCreateParams) (domain.Movie, error) {
	return domain.Movie{}, nil
}
func (r *recordingMovies) ReplaceAll(_ context.Context, movies []repository.MovieCreateParams) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.replaced = movies
	return len(movies), nil
}

func TestSeed(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	store := &recordingMovies{}
	n, err := Seed(context.Background(), store, DefaultMovies(), logger)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 30 || len(store.replaced) != 30 {
		t.Fatalf("seeded %d (%d passed), want 30", n, len(store.replaced))
	}

	boom := errors.New("boom")
	if _, err := Seed(context.Background(), &recordingMovies{err: boom}, DefaultMovies(), logger); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
