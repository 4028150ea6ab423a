package httpserver

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/domain"
	"github.com/Clark-Hu/moviemeter/internal/metrics"
	"github.com/Clark-Hu/moviemeter/internal/repository"
)

var errInvalidRating = fmt.Errorf("Rating must be a whole number between %d and %d.", domain.MinRating, domain.MaxRating)

type ratingRequest struct {
	MovieID string   `json:"movieId"`
	Rating  *float64 `json:"rating"`
}

type ratingResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
	Rating  int    `json:"rating"`
}

// unratedResponse is returned when the user has not rated the movie yet.
type unratedResponse struct {
	Rating int `json:"rating"`
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.repo.Movies.List(r.Context())
	if err != nil {
		s.respondServiceError(w, "list movies", err)
		return
	}
	s.respondJSON(w, http.StatusOK, movies)
}

func (s *Server) handleGetRating(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())
	movieID := strings.TrimSpace(chi.URLParam(r, "movieId"))
	if movieID == "" {
		s.respondError(w, http.StatusBadRequest, "movieId is required.")
		return
	}

	rating, err := s.repo.Ratings.Get(r.Context(), identity.UserID, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondJSON(w, http.StatusOK, unratedResponse{Rating: 0})
			return
		}
		s.respondServiceError(w, "get rating", err)
		return
	}
	s.respondJSON(w, http.StatusOK, toRatingResponse(rating))
}

func (s *Server) handleSubmitRating(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromContext(r.Context())

	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	movieID, value, err := validateRatingRequest(req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := s.repo.Movies.GetByID(r.Context(), movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found.")
			return
		}
		s.respondServiceError(w, "fetch movie for rating", err)
		return
	}

	rating, inserted, err := s.repo.Ratings.Upsert(r.Context(), repository.RatingUpsertParams{
		UserID:  identity.UserID,
		MovieID: movieID,
		Value:   value,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "Movie not found.")
			return
		}
		s.respondServiceError(w, "upsert rating", err)
		return
	}

	metrics.RecordRating(inserted)
	s.logger.WithFields(logrus.Fields{
		"username": identity.Username,
		"movie_id": movieID,
		"rating":   value,
		"inserted": inserted,
	}).Debug("rating stored")
	s.respondJSON(w, http.StatusOK, toRatingResponse(rating))
}

func validateRatingRequest(req ratingRequest) (string, int, error) {
	movieID := strings.TrimSpace(req.MovieID)
	if movieID == "" {
		return "", 0, errors.New("movieId is required.")
	}
	if req.Rating == nil {
		return "", 0, errInvalidRating
	}
	v := *req.Rating
	if math.IsNaN(v) || v != math.Trunc(v) || v < domain.MinRating || v > domain.MaxRating {
		return "", 0, errInvalidRating
	}
	return movieID, int(v), nil
}

func toRatingResponse(rating domain.Rating) ratingResponse {
	return ratingResponse{
		ID:      rating.ID,
		UserID:  rating.UserID,
		MovieID: rating.MovieID,
		Rating:  rating.Value,
	}
}
