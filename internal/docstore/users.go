package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Clark-Hu/moviemeter/internal/domain"
	"github.com/Clark-Hu/moviemeter/internal/repository"
)

// UsersRepository stores accounts. Lower-cased copies of username and email
// carry the unique indexes.
type UsersRepository struct {
	col *mongo.Collection
}

type userDoc struct {
	ID            string    `bson:"_id"`
	Username      string    `bson:"username"`
	UsernameLower string    `bson:"username_lower"`
	Email         string    `bson:"email"`
	EmailLower    string    `bson:"email_lower"`
	PasswordHash  string    `bson:"password_hash"`
	DateOfBirth   string    `bson:"date_of_birth"`
	Phone         string    `bson:"phone"`
	CreatedAt     time.Time `bson:"created_at"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		DateOfBirth:  d.DateOfBirth,
		Phone:        d.Phone,
		CreatedAt:    d.CreatedAt,
	}
}

// Create inserts a user; a duplicate key surfaces as *domain.ConflictError.
func (r *UsersRepository) Create(ctx context.Context, params repository.UserCreateParams) (domain.User, error) {
	doc := userDoc{
		ID:            uuid.NewString(),
		Username:      params.Username,
		UsernameLower: strings.ToLower(params.Username),
		Email:         params.Email,
		EmailLower:    strings.ToLower(params.Email),
		PasswordHash:  params.PasswordHash,
		DateOfBirth:   params.DateOfBirth,
		Phone:         params.Phone,
		CreatedAt:     time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), emailIndex) {
				return domain.User{}, &domain.ConflictError{Field: "Email"}
			}
			return domain.User{}, &domain.ConflictError{Field: "Username"}
		}
		return domain.User{}, fmt.Errorf("mongo insert user: %w", err)
	}
	return doc.toDomain(), nil
}

// FindConflict prefers a username match over an email match.
func (r *UsersRepository) FindConflict(ctx context.Context, username, email string) (domain.User, error) {
	user, err := r.findOne(ctx, bson.M{"username_lower": strings.ToLower(username)})
	if !errors.Is(err, repository.ErrNotFound) {
		return user, err
	}
	return r.findOne(ctx, bson.M{"email_lower": strings.ToLower(email)})
}

// GetByUsername looks a user up ignoring case.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"username_lower": strings.ToLower(username)})
}

func (r *UsersRepository) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var doc userDoc
	err := r.col.FindOne(ctx, filter, options.FindOne()).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, repository.ErrNotFound
		}
		return domain.User{}, err
	}
	return doc.toDomain(), nil
}
