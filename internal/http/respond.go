package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Clark-Hu/moviemeter/internal/domain"
)

const maxRequestBody = 1 << 20 // 1 MiB

const internalErrorMessage = "Internal server error."

type errorResponse struct {
	Error string `json:"error"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		s.respondError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
		return
	}
	s.respondError(w, http.StatusBadRequest, "Invalid request body.")
}

// respondServiceError maps domain errors onto status codes; anything
// unrecognised is logged and reported as a 500.
func (s *Server) respondServiceError(w http.ResponseWriter, op string, err error) {
	var (
		validation *domain.ValidationError
		conflict   *domain.ConflictError
		authErr    *domain.AuthError
	)
	switch {
	case errors.As(err, &validation):
		s.respondError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &conflict):
		s.respondError(w, http.StatusBadRequest, conflict.Error())
	case errors.As(err, &authErr):
		s.respondError(w, http.StatusBadRequest, authErr.Message)
	default:
		s.logger.Printf("%s error: %v", op, err)
		s.respondError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}
