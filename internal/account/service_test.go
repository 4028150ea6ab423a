package account

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Clark-Hu/moviemeter/internal/auth"
	"github.com/Clark-Hu/moviemeter/internal/domain"
	"github.com/Clark-Hu/moviemeter/internal/repository"
)

// memoryUsers is a map-backed UserStore with the same case rules as the real stores.
type memoryUsers struct {
	mu        sync.Mutex
	users     []domain.User
	createErr error
}

func (m *memoryUsers) Create(_ context.Context, p repository.UserCreateParams) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return domain.User{}, m.createErr
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Username, p.Username) {
			return domain.User{}, &domain.ConflictError{Field: "Username"}
		}
		if strings.EqualFold(u.Email, p.Email) {
			return domain.User{}, &domain.ConflictError{Field: "Email"}
		}
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		DateOfBirth:  p.DateOfBirth,
		Phone:        p.Phone,
		CreatedAt:    time.Now(),
	}
	m.users = append(m.users, u)
	return u, nil
}

func (m *memoryUsers) FindConflict(_ context.Context, username, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (m *memoryUsers) GetByUsername(_ context.Context, username string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func newTestService(users repository.UserStore) (*Service, *auth.TokenManager) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	tokens := auth.NewTokenManager("test-secret", "moviemeter", time.Hour)
	return NewService(users, auth.NewPasswordHasher(bcrypt.MinCost), tokens, logger), tokens
}

func TestSignupThenLogin(t *testing.T) {
	users := &memoryUsers{}
	svc, tokens := newTestService(users)
	ctx := context.Background()

	session, err := svc.Signup(ctx, SignupInput{
		Username: "  alice ",
		Email:    "a@x.io",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if session.Username != "alice" {
		t.Fatalf("session username = %q, want trimmed alice", session.Username)
	}
	id, err := tokens.Verify(session.Token)
	if err != nil {
		t.Fatalf("token from signup does not verify: %v", err)
	}
	if id.Username != "alice" || id.UserID != users.users[0].ID {
		t.Fatalf("identity = %+v", id)
	}
	if users.users[0].PasswordHash == "secret1" {
		t.Fatalf("password stored in plaintext")
	}

	login, err := svc.Login(ctx, "ALICE", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.Username != "alice" {
		t.Fatalf("login username = %q, want stored casing", login.Username)
	}
}

func TestSignupConflicts(t *testing.T) {
	users := &memoryUsers{}
	svc, _ := newTestService(users)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "a@x.io", Password: "secret1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	tests := []struct {
		name  string
		input SignupInput
		want  string
	}{
		{name: "username differs by case", input: SignupInput{Username: "ALICE", Email: "b@x.io", Password: "pw"}, want: "Username already exists."},
		{name: "email differs by case", input: SignupInput{Username: "bob", Email: "A@X.IO", Password: "pw"}, want: "Email already exists."},
		{name: "both taken reports username", input: SignupInput{Username: "alice", Email: "a@x.io", Password: "pw"}, want: "Username already exists."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.input)
			var conflict *domain.ConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("expected ConflictError, got %v", err)
			}
			if err.Error() != tc.want {
				t.Fatalf("message = %q, want %q", err.Error(), tc.want)
			}
		})
	}
	if len(users.users) != 1 {
		t.Fatalf("users stored = %d, want 1", len(users.users))
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestService(&memoryUsers{})
	inputs := []SignupInput{
		{Email: "a@x.io", Password: "pw"},
		{Username: "alice", Password: "pw"},
		{Username: "alice", Email: "a@x.io"},
		{Username: "   ", Email: "a@x.io", Password: "pw"},
	}
	for _, in := range inputs {
		_, err := svc.Signup(context.Background(), in)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Signup(%+v) error = %v, want ValidationError", in, err)
		}
	}
}

func TestSignupInsertRaceMapsToConflict(t *testing.T) {
	users := &memoryUsers{createErr: &domain.ConflictError{Field: "Email"}}
	svc, _ := newTestService(users)

	_, err := svc.Signup(context.Background(), SignupInput{Username: "carol", Email: "c@x.io", Password: "pw"})
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) || conflict.Field != "Email" {
		t.Fatalf("expected Email conflict, got %v", err)
	}
}

func TestSignupStoreFailureIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	svc, _ := newTestService(&memoryUsers{createErr: boom})

	_, err := svc.Signup(context.Background(), SignupInput{Username: "dave", Email: "d@x.io", Password: "pw"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(&memoryUsers{})
	ctx := context.Background()
	if _, err := svc.Signup(ctx, SignupInput{Username: "alice", Email: "a@x.io", Password: "secret1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, wrongPassword := svc.Login(ctx, "alice", "nope")
	_, unknownUser := svc.Login(ctx, "mallory", "secret1")
	_, empty := svc.Login(ctx, "", "")

	for name, err := range map[string]error{"wrong password": wrongPassword, "unknown user": unknownUser, "empty": empty} {
		if err != domain.ErrInvalidCredentials {
			t.Fatalf("%s: error = %v, want ErrInvalidCredentials", name, err)
		}
	}
	if wrongPassword.Error() != "Invalid username or password." {
		t.Fatalf("message = %q", wrongPassword.Error())
	}
}
