package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewAPIRejectsBadURL(t *testing.T) {
	if _, err := NewAPI("ftp://example.com", time.Second, quietLogger()); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
	if _, err := NewAPI("://bad", time.Second, quietLogger()); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestAPIRequests(t *testing.T) {
	var gotAuth, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.EscapedPath()
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			gotBody = string(raw)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/ratings":
			_, _ = w.Write([]byte(`{"id":"r1","userId":"u1","movieId":"m1","rating":4}`))
		case "/api/ratings/a b":
			_, _ = w.Write([]byte(`{"rating":0}`))
		case "/api/login":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid username or password."}`))
		case "/api/movies":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Access denied. No token provided."}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	api, err := NewAPI(srv.URL+"/api/", 2*time.Second, quietLogger())
	if err != nil {
		t.Fatalf("NewAPI: %v", err)
	}
	api.SetToken("tok")
	ctx := context.Background()

	saved, err := api.Rate(ctx, "m1", 4)
	if err != nil || saved != 4 {
		t.Fatalf("Rate = %d, %v", saved, err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	var body map[string]interface{}
	if err := json.Unmarshal([]byte(gotBody), &body); err != nil || body["movieId"] != "m1" || body["rating"] != float64(4) {
		t.Fatalf("rate body = %q", gotBody)
	}

	rating, err := api.Rating(ctx, "a b")
	if err != nil || rating != 0 {
		t.Fatalf("Rating = %d, %v", rating, err)
	}
	if gotPath != "/api/ratings/a%20b" {
		t.Fatalf("path = %q", gotPath)
	}

	_, err = api.Login(ctx, "alice", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest || apiErr.Message != "Invalid username or password." {
		t.Fatalf("Login error = %#v", err)
	}

	_, err = api.Movies(ctx)
	if !IsUnauthorized(err) {
		t.Fatalf("Movies error = %v, want 401", err)
	}
}

func TestAPINetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	api, err := NewAPI(url+"/api", 500*time.Millisecond, quietLogger())
	if err != nil {
		t.Fatalf("NewAPI: %v", err)
	}
	_, err = api.Health(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if IsUnauthorized(err) {
		t.Fatalf("network error must not read as 401")
	}
}

func TestProbeImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		if r.URL.Path == "/ok.jpg" {
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	api, _ := NewAPI(srv.URL, time.Second, quietLogger())
	if err := api.ProbeImage(context.Background(), srv.URL+"/ok.jpg"); err != nil {
		t.Fatalf("ProbeImage ok: %v", err)
	}
	if err := api.ProbeImage(context.Background(), srv.URL+"/missing.jpg"); err == nil {
		t.Fatalf("expected error for 404 image")
	}
}
