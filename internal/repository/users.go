package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/moviemeter/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// UsersRepository provides Postgres persistence for accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, username, email, password_hash, date_of_birth, phone, created_at`

// UserCreateParams bundles the fields stored at signup.
type UserCreateParams struct {
	Username     string
	Email        string
	PasswordHash string
	DateOfBirth  string
	Phone        string
}

// Create inserts a user. A case-insensitive duplicate surfaces as *domain.ConflictError.
func (r *UsersRepository) Create(ctx context.Context, params UserCreateParams) (domain.User, error) {
	query := fmt.Sprintf(`
        INSERT INTO users (id, username, email, password_hash, date_of_birth, phone)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING %s
    `, userColumns)

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), params.Username, params.Email, params.PasswordHash, params.DateOfBirth, params.Phone)
	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.User{}, conflictFromConstraint(pgErr.ConstraintName)
		}
		return domain.User{}, err
	}
	return user, nil
}

// FindConflict returns an existing user whose username or email matches.
func (r *UsersRepository) FindConflict(ctx context.Context, username, email string) (domain.User, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM users
        WHERE lower(username) = lower($1) OR lower(email) = lower($2)
        ORDER BY (lower(username) = lower($1)) DESC
        LIMIT 1
    `, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, username, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByUsername looks a user up ignoring case.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE lower(username) = lower($1)`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.DateOfBirth,
		&user.Phone,
		&user.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func conflictFromConstraint(name string) error {
	if strings.Contains(name, "email") {
		return &domain.ConflictError{Field: "Email"}
	}
	return &domain.ConflictError{Field: "Username"}
}
