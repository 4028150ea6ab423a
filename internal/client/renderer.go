package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/domain"
)

// ErrLoginRequired means there is no usable session; the user must log in.
var ErrLoginRequired = errors.New("client: login required")

// DefaultStagger is the pause between cards while the list is drawn.
const DefaultStagger = 20 * time.Millisecond

// NoticeKind classifies a user-facing notification.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notifier shows short messages to the user.
type Notifier interface {
	Notify(kind NoticeKind, message string)
}

// LogNotifier forwards notifications to a logrus logger.
type LogNotifier struct {
	Logger *logrus.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(kind NoticeKind, message string) {
	logger := n.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	switch kind {
	case NoticeError:
		logger.Error(message)
	case NoticeSuccess:
		logger.WithField("result", "ok").Info(message)
	default:
		logger.Info(message)
	}
}

// Backend is the subset of API the renderer needs.
type Backend interface {
	SetToken(token string)
	Health(ctx context.Context) (Health, error)
	Movies(ctx context.Context) ([]domain.Movie, error)
	Rating(ctx context.Context, movieID string) (int, error)
	Rate(ctx context.Context, movieID string, value int) (int, error)
	ProbeImage(ctx context.Context, imageURL string) error
}

// RendererOptions configures a Renderer.
type RendererOptions struct {
	Out           io.Writer
	Notifier      Notifier
	Stagger       time.Duration
	ResolvePoster bool
	Sleep         func(ctx context.Context, d time.Duration) error
}

// Renderer draws the catalog and drives rating updates. It owns the Catalog.
type Renderer struct {
	api     Backend
	cache   *TokenCache
	catalog *Catalog
	widgets map[string]*RatingWidget
	out     io.Writer
	notify  Notifier
	stagger time.Duration
	posters bool
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewRenderer wires a renderer over api and cache.
func NewRenderer(api Backend, cache *TokenCache, opts RendererOptions) *Renderer {
	r := &Renderer{
		api:     api,
		cache:   cache,
		catalog: NewCatalog(),
		widgets: map[string]*RatingWidget{},
		out:     opts.Out,
		notify:  opts.Notifier,
		stagger: opts.Stagger,
		posters: opts.ResolvePoster,
		sleep:   opts.Sleep,
	}
	if r.out == nil {
		r.out = io.Discard
	}
	if r.notify == nil {
		r.notify = LogNotifier{}
	}
	if r.sleep == nil {
		r.sleep = sleepContext
	}
	return r
}

// Catalog exposes the renderer's state.
func (r *Renderer) Catalog() *Catalog {
	return r.catalog
}

// Widget returns the rating widget of a drawn card.
func (r *Renderer) Widget(movieID string) (*RatingWidget, bool) {
	w, ok := r.widgets[movieID]
	return w, ok
}

// Load checks the session and server health, fetches the catalog and draws
// every visible card.
func (r *Renderer) Load(ctx context.Context) error {
	session, err := r.authenticate()
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Welcome, %s!\n", session.Username)

	if _, err := r.api.Health(ctx); err != nil {
		r.notify.Notify(NoticeError, "Server is currently unavailable. Please try again later.")
		return fmt.Errorf("health check: %w", err)
	}

	if err := r.fetchMovies(ctx); err != nil {
		return err
	}
	return r.draw(ctx, true)
}

// ApplyFilter redraws from memory with a new filter. Movies are not re-fetched.
func (r *Renderer) ApplyFilter(ctx context.Context, query, decade string) error {
	r.catalog.SetFilter(query, decade)
	return r.draw(ctx, false)
}

// Rate optimistically paints value on the movie's card and then commits it.
// On failure the catalog is resynced from the server and redrawn.
func (r *Renderer) Rate(ctx context.Context, movieID string, value int) error {
	if _, err := r.authenticate(); err != nil {
		return err
	}
	if !domain.ValidRating(value) {
		return fmt.Errorf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)
	}

	movie, ok := r.catalog.Movie(movieID)
	if !ok {
		if err := r.fetchMovies(ctx); err != nil {
			return err
		}
		if movie, ok = r.catalog.Movie(movieID); !ok {
			movie = domain.Movie{ID: movieID, Title: movieID}
		}
	}

	widget, ok := r.widgets[movieID]
	if !ok {
		widget = NewRatingWidget(r.catalog.DisplayRating(movie))
		r.widgets[movieID] = widget
	}
	widget.Begin(value)
	fmt.Fprintf(r.out, "%s  %s\n", movie.Title, widget.StarRow())

	saved, err := r.api.Rate(ctx, movieID, value)
	if err != nil {
		if IsUnauthorized(err) {
			r.logout()
			return ErrLoginRequired
		}
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			r.notify.Notify(NoticeError, "Network error. Please try again.")
		} else {
			r.notify.Notify(NoticeError, "Failed to submit rating. Please try again.")
		}
		if rerr := r.resync(ctx, movieID, widget); errors.Is(rerr, ErrLoginRequired) {
			return rerr
		}
		return err
	}

	widget.Commit(saved)
	r.catalog.SetRating(movieID, saved)
	fmt.Fprintf(r.out, "%s  %s  %.1f\n", movie.Title, widget.StarRow(), widget.Display())
	r.notify.Notify(NoticeSuccess, fmt.Sprintf("Rated %q %d %s!", movie.Title, saved, pluralStars(saved)))
	return nil
}

// resync reloads the whole catalog and every visible card's rating from the
// server after a failed rating, then leaves the rated card's widget reverted
// to the server's value.
func (r *Renderer) resync(ctx context.Context, movieID string, widget *RatingWidget) error {
	err := r.fetchMovies(ctx)
	if err == nil {
		if err = r.draw(ctx, true); err != nil {
			r.notify.Notify(NoticeError, fmt.Sprintf("Could not refresh movies: %v", err))
		}
	}
	if _, drawn := r.widgets[movieID]; err == nil && !drawn {
		// Hidden by the active filter, so draw did not re-read it.
		if current, rerr := r.api.Rating(ctx, movieID); rerr == nil {
			r.catalog.SetRating(movieID, current)
		}
	}

	display := float64(r.catalog.UserRating(movieID))
	if movie, ok := r.catalog.Movie(movieID); ok {
		display = r.catalog.DisplayRating(movie)
	}
	widget.Revert(display)
	r.widgets[movieID] = widget
	return err
}

func (r *Renderer) authenticate() (Session, error) {
	session, err := r.cache.Load()
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return Session{}, ErrLoginRequired
		}
		return Session{}, err
	}
	r.api.SetToken(session.Token)
	return session, nil
}

func (r *Renderer) fetchMovies(ctx context.Context) error {
	movies, err := r.api.Movies(ctx)
	if err != nil {
		if IsUnauthorized(err) {
			r.notify.Notify(NoticeError, "Session expired. Please login again.")
			r.logout()
			return ErrLoginRequired
		}
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			r.notify.Notify(NoticeError, "Network error. Please check your connection.")
		} else {
			r.notify.Notify(NoticeError, "Failed to load movies. Please try again.")
		}
		return fmt.Errorf("load movies: %w", err)
	}
	r.catalog.SetMovies(movies)
	return nil
}

// draw renders the visible cards one after another. With fetchRatings the
// user's rating for each card is read from the server first; a failed read
// counts as unrated.
func (r *Renderer) draw(ctx context.Context, fetchRatings bool) error {
	visible := r.catalog.Visible()
	r.widgets = make(map[string]*RatingWidget, len(visible))
	if len(visible) == 0 {
		fmt.Fprintln(r.out, "No movies found. Try adjusting your search or filter criteria.")
		return nil
	}

	for i, movie := range visible {
		if fetchRatings {
			rating, err := r.api.Rating(ctx, movie.ID)
			if err != nil {
				rating = 0
			}
			r.catalog.SetRating(movie.ID, rating)
		}

		display := r.catalog.DisplayRating(movie)
		r.widgets[movie.ID] = NewRatingWidget(display)
		r.printCard(ctx, movie, display)

		if i < len(visible)-1 && r.stagger > 0 {
			if err := r.sleep(ctx, r.stagger); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) printCard(ctx context.Context, movie domain.Movie, display float64) {
	fmt.Fprintf(r.out, "%-48s %4d  %s  %.1f  [%s]\n", movie.Title, movie.ReleaseYear, StarRow(display), display, movie.ID)
	if r.posters {
		poster := NewPoster(movie.Title, movie.PosterURL)
		fmt.Fprintf(r.out, "    poster: %s\n", poster.Resolve(ctx, r.api.ProbeImage))
	}
}

func (r *Renderer) logout() {
	if err := r.cache.Clear(); err != nil {
		r.notify.Notify(NoticeError, err.Error())
	}
	r.api.SetToken("")
}

func pluralStars(n int) string {
	if n == 1 {
		return "star"
	}
	return "stars"
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
