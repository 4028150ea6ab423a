package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/moviemeter/internal/account"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	session, err := s.accounts.Signup(r.Context(), account.SignupInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DOB,
		Phone:       req.Phone,
	})
	if err != nil {
		s.respondServiceError(w, "signup", err)
		return
	}
	s.respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	session, err := s.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.respondServiceError(w, "login", err)
		return
	}
	s.respondJSON(w, http.StatusOK, session)
}
