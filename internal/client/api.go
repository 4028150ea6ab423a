// Package client is a terminal front end for the MovieMeter HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/domain"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return e.Message
}

// NetworkError wraps transport failures: refused connections, timeouts, bad payloads.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Session mirrors the signup and login response.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SignupRequest is the signup payload.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
	Phone    string `json:"phone"`
}

// Health is the server's health payload.
type Health struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

type ratingPayload struct {
	MovieID string `json:"movieId,omitempty"`
	Rating  int    `json:"rating"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// API talks to the server over HTTP.
type API struct {
	baseURL *url.URL
	client  *http.Client
	logger  *logrus.Logger

	mu    sync.RWMutex
	token string
}

// NewAPI constructs a client for baseURL, e.g. http://localhost:3001/api.
func NewAPI(baseURL string, timeout time.Duration, logger *logrus.Logger) (*API, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api url must be http or https: %q", baseURL)
	}
	return &API{
		baseURL: parsed,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// SetToken sets the bearer token sent on authenticated calls.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

func (a *API) currentToken() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Health calls GET /health. A 503 comes back as *APIError.
func (a *API) Health(ctx context.Context) (Health, error) {
	var out Health
	err := a.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// Signup registers an account.
func (a *API) Signup(ctx context.Context, req SignupRequest) (Session, error) {
	var out Session
	err := a.do(ctx, http.MethodPost, "/signup", req, &out)
	return out, err
}

// Login exchanges credentials for a session.
func (a *API) Login(ctx context.Context, username, password string) (Session, error) {
	var out Session
	body := map[string]string{"username": username, "password": password}
	err := a.do(ctx, http.MethodPost, "/login", body, &out)
	return out, err
}

// Movies fetches the whole catalog.
func (a *API) Movies(ctx context.Context) ([]domain.Movie, error) {
	var out []domain.Movie
	err := a.do(ctx, http.MethodGet, "/movies", nil, &out)
	return out, err
}

// Rating fetches the caller's rating for a movie; 0 means unrated.
func (a *API) Rating(ctx context.Context, movieID string) (int, error) {
	var out ratingPayload
	err := a.do(ctx, http.MethodGet, "/ratings/"+url.PathEscape(movieID), nil, &out)
	return out.Rating, err
}

// Rate stores the caller's rating and returns the saved value.
func (a *API) Rate(ctx context.Context, movieID string, value int) (int, error) {
	var out ratingPayload
	err := a.do(ctx, http.MethodPost, "/ratings", ratingPayload{MovieID: movieID, Rating: value}, &out)
	return out.Rating, err
}

// ProbeImage checks that an image URL answers 2xx to a HEAD request.
func (a *API) ProbeImage(ctx context.Context, imageURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode}
	}
	return nil
}

func (a *API) do(ctx context.Context, method, path string, body, out interface{}) error {
	endpoint := a.baseURL.String() + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := a.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload)
		a.logger.Debugf("%s %s: status %d: %s", method, path, resp.StatusCode, payload.Error)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Err: fmt.Errorf("decode %s response: %w", path, err)}
	}
	return nil
}
