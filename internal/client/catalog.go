package client

import (
	"strconv"
	"strings"

	"github.com/Clark-Hu/moviemeter/internal/domain"
)

// Catalog is the client's in-memory view: every movie fetched, the user's
// ratings as far as known, and the active filter.
type Catalog struct {
	movies  []domain.Movie
	byID    map[string]int
	ratings map[string]int
	query   string
	decade  string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: map[string]int{}, ratings: map[string]int{}}
}

// SetMovies replaces the movie list. Known ratings are kept.
func (c *Catalog) SetMovies(movies []domain.Movie) {
	c.movies = append(c.movies[:0:0], movies...)
	c.byID = make(map[string]int, len(movies))
	for i, m := range c.movies {
		c.byID[m.ID] = i
	}
}

// Movies returns every movie in server order.
func (c *Catalog) Movies() []domain.Movie {
	return c.movies
}

// Movie looks a movie up by id.
func (c *Catalog) Movie(id string) (domain.Movie, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Movie{}, false
	}
	return c.movies[i], true
}

// SetRating records the user's rating; 0 means unrated.
func (c *Catalog) SetRating(movieID string, value int) {
	if value == 0 {
		delete(c.ratings, movieID)
		return
	}
	c.ratings[movieID] = value
}

// UserRating returns the user's rating or 0.
func (c *Catalog) UserRating(movieID string) int {
	return c.ratings[movieID]
}

// DisplayRating is the user's rating when set, otherwise the movie's default.
func (c *Catalog) DisplayRating(m domain.Movie) float64 {
	if r := c.ratings[m.ID]; r != 0 {
		return float64(r)
	}
	return m.DefaultRating
}

// SetFilter stores the active search and decade bucket.
func (c *Catalog) SetFilter(query, decade string) {
	c.query = query
	c.decade = decade
}

// Visible applies the active filter.
func (c *Catalog) Visible() []domain.Movie {
	return c.Filter(c.query, c.decade)
}

// Filter returns movies whose title contains query (case-insensitive) and
// whose release year falls in the decade bucket. An empty or unrecognised
// bucket matches every year.
func (c *Catalog) Filter(query, decade string) []domain.Movie {
	return FilterMovies(c.movies, query, decade)
}

// FilterMovies is the pure form of Catalog.Filter.
func FilterMovies(movies []domain.Movie, query, decade string) []domain.Movie {
	needle := strings.ToLower(strings.TrimSpace(query))
	start, hasDecade := ParseDecade(decade)

	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if needle != "" && !strings.Contains(strings.ToLower(m.Title), needle) {
			continue
		}
		if hasDecade && (m.ReleaseYear < start || m.ReleaseYear > start+9) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ParseDecade turns a bucket such as "1990s" into its first year.
func ParseDecade(bucket string) (int, bool) {
	bucket = strings.TrimSpace(bucket)
	if len(bucket) != 5 || (bucket[4] != 's' && bucket[4] != 'S') {
		return 0, false
	}
	year, err := strconv.Atoi(bucket[:4])
	if err != nil || year%10 != 0 {
		return 0, false
	}
	return year, true
}
