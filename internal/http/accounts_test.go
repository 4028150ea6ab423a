package httpserver

import (
	"net/http"
	"testing"

	"github.com/Clark-Hu/moviemeter/internal/account"
)

func signup(t *testing.T, srv *Server, username, email, password string) account.Session {
	t.Helper()
	rec := doJSON(t, srv, http.MethodPost, "/api/signup", "", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"dob":      "1990-01-01",
		"phone":    "555-0100",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("signup %s: status = %d body = %s", username, rec.Code, rec.Body.String())
	}
	var session account.Session
	decodeBody(t, rec, &session)
	return session
}

func TestSignupAndLogin(t *testing.T) {
	srv := buildTestServer(t)

	session := signup(t, srv, "alice", "a@x.io", "secret1")
	if session.Token == "" || session.Username != "alice" {
		t.Fatalf("session = %+v", session)
	}

	tests := []struct {
		name    string
		body    interface{}
		status  int
		message string
	}{
		{name: "duplicate username any case", body: map[string]string{"username": "ALICE", "email": "b@x.io", "password": "pw"}, status: http.StatusBadRequest, message: "Username already exists."},
		{name: "duplicate email any case", body: map[string]string{"username": "bob", "email": "A@X.io", "password": "pw"}, status: http.StatusBadRequest, message: "Email already exists."},
		{name: "missing password", body: map[string]string{"username": "carol", "email": "c@x.io"}, status: http.StatusBadRequest},
		{name: "malformed json", body: "{not json", status: http.StatusBadRequest, message: "Invalid request body."},
		{name: "unknown field", body: `{"username":"d","email":"d@x.io","password":"pw","admin":true}`, status: http.StatusBadRequest, message: "Invalid request body."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/signup", "", tc.body)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tc.status, rec.Body.String())
			}
			if tc.message != "" {
				if msg := errorMessage(t, rec); msg != tc.message {
					t.Fatalf("error = %q, want %q", msg, tc.message)
				}
			}
		})
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/login", "", map[string]string{"username": "Alice", "password": "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d body = %s", rec.Code, rec.Body.String())
	}
	var login account.Session
	decodeBody(t, rec, &login)
	if login.Username != "alice" || login.Token == "" {
		t.Fatalf("login = %+v", login)
	}
}

func TestLoginFailuresShareMessage(t *testing.T) {
	srv := buildTestServer(t)
	signup(t, srv, "alice", "a@x.io", "secret1")

	for _, body := range []map[string]string{
		{"username": "alice", "password": "wrong"},
		{"username": "nobody", "password": "secret1"},
	} {
		rec := doJSON(t, srv, http.MethodPost, "/api/login", "", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "Invalid username or password." {
			t.Fatalf("error = %q", msg)
		}
	}
}
