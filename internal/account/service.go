// Package account implements signup and login on top of a UserStore.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/auth"
	"github.com/Clark-Hu/moviemeter/internal/domain"
	"github.com/Clark-Hu/moviemeter/internal/metrics"
	"github.com/Clark-Hu/moviemeter/internal/repository"
)

// SignupInput is the registration payload.
type SignupInput struct {
	Username    string
	Email       string
	Password    string
	DateOfBirth string
	Phone       string
}

// Session is returned after a successful signup or login.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Service owns credential handling.
type Service struct {
	users  repository.UserStore
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	logger *logrus.Logger
}

// NewService wires a Service. A nil logger falls back to the logrus standard logger.
func NewService(users repository.UserStore, hasher *auth.PasswordHasher, tokens *auth.TokenManager, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Signup registers a user and returns a fresh session.
func (s *Service) Signup(ctx context.Context, in SignupInput) (Session, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" {
		metrics.RecordAuth("signup", "invalid")
		return Session{}, &domain.ValidationError{Message: "Username, email and password are required."}
	}

	existing, err := s.users.FindConflict(ctx, username, email)
	switch {
	case err == nil:
		field := "Email"
		if strings.EqualFold(existing.Username, username) {
			field = "Username"
		}
		metrics.RecordAuth("signup", "conflict")
		return Session{}, &domain.ConflictError{Field: field}
	case !errors.Is(err, repository.ErrNotFound):
		return Session{}, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, repository.UserCreateParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  strings.TrimSpace(in.DateOfBirth),
		Phone:        strings.TrimSpace(in.Phone),
	})
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			metrics.RecordAuth("signup", "conflict")
			return Session{}, conflict
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	session, err := s.issue(user)
	if err != nil {
		return Session{}, err
	}
	metrics.RecordAuth("signup", "success")
	s.logger.WithField("username", user.Username).Info("user signed up")
	return session, nil
}

// Login checks credentials. Unknown users and wrong passwords yield the same error.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.RecordAuth("login", "failure")
		return Session{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.WithField("username", username).Info("login failed: unknown user")
			metrics.RecordAuth("login", "failure")
			return Session{}, domain.ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return Session{}, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		s.logger.WithField("username", username).Info("login failed: wrong password")
		metrics.RecordAuth("login", "failure")
		return Session{}, domain.ErrInvalidCredentials
	}

	session, err := s.issue(user)
	if err != nil {
		return Session{}, err
	}
	metrics.RecordAuth("login", "success")
	return session, nil
}

func (s *Service) issue(user domain.User) (Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{Token: token, Username: user.Username}, nil
}
