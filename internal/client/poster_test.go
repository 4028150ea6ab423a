package client

import (
	"context"
	"errors"
	"testing"
)

const inceptionPoster = "https://image.tmdb.org/t/p/w500/ljsZTbVsrQSqZgWeep2B1QiDKuh.jpg"

func TestPosterFallbackChain(t *testing.T) {
	p := NewPoster("Inception", inceptionPoster)

	steps := []struct {
		state PosterState
		url   string
	}{
		{PosterPrimary, inceptionPoster},
		{PosterReducedResolution, "https://image.tmdb.org/t/p/w300/ljsZTbVsrQSqZgWeep2B1QiDKuh.jpg"},
		{PosterOriginal, "https://image.tmdb.org/t/p/original/ljsZTbVsrQSqZgWeep2B1QiDKuh.jpg"},
		{PosterPlaceholder, placeholderBase + "Inception"},
		{PosterPlaceholder, placeholderBase + "Inception"},
	}
	for i, step := range steps {
		if p.State() != step.state || p.URL() != step.url {
			t.Fatalf("step %d = %v %s, want %v %s", i, p.State(), p.URL(), step.state, step.url)
		}
		p.Fail()
	}
}

func TestPosterNonTMDBGoesToPlaceholder(t *testing.T) {
	p := NewPoster("Home Video", "https://example.com/poster.png")
	p.Fail()
	if p.State() != PosterPlaceholder {
		t.Fatalf("state = %v", p.State())
	}
	if NewPoster("Empty", "").State() != PosterPlaceholder {
		t.Fatalf("empty url should start at placeholder")
	}
}

func TestPlaceholderURL(t *testing.T) {
	tests := map[string]string{
		"The Dark Knight":                  placeholderBase + "The%20Dark%20Knight",
		"Avengers: Endgame":                placeholderBase + "Avengers%3A%20Endgame",
		"Terminator  2":                    placeholderBase + "Terminator%202",
		"Q&A=1+1":                          placeholderBase + "Q%26A%3D1%2B1",
		"Star Wars: Episode V - The Empire": placeholderBase + "Star%20Wars%3A%20Episode%20V%20-%20The%20Empire",
	}
	for title, want := range tests {
		if got := PlaceholderURL(title); got != want {
			t.Errorf("PlaceholderURL(%q) = %s, want %s", title, got, want)
		}
	}
}

func TestPosterResolve(t *testing.T) {
	var probed []string
	failUntil := func(okAfter int) func(context.Context, string) error {
		return func(_ context.Context, url string) error {
			probed = append(probed, url)
			if len(probed) > okAfter {
				return nil
			}
			return errors.New("broken image")
		}
	}

	probed = nil
	got := NewPoster("Inception", inceptionPoster).Resolve(context.Background(), failUntil(1))
	if got != "https://image.tmdb.org/t/p/w300/ljsZTbVsrQSqZgWeep2B1QiDKuh.jpg" || len(probed) != 2 {
		t.Fatalf("Resolve = %s after %d probes", got, len(probed))
	}

	probed = nil
	got = NewPoster("Inception", inceptionPoster).Resolve(context.Background(), failUntil(99))
	if got != placeholderBase+"Inception" || len(probed) != 3 {
		t.Fatalf("Resolve = %s after %d probes, want placeholder after 3", got, len(probed))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	probed = nil
	got = NewPoster("Inception", inceptionPoster).Resolve(ctx, failUntil(0))
	if got != placeholderBase+"Inception" || len(probed) != 0 {
		t.Fatalf("cancelled Resolve = %s after %d probes", got, len(probed))
	}
}
