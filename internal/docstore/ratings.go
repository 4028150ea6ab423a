package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Clark-Hu/moviemeter/internal/domain"
	"github.com/Clark-Hu/moviemeter/internal/repository"
)

// RatingsRepository keeps one document per (user_id, movie_id).
type RatingsRepository struct {
	col    *mongo.Collection
	movies *mongo.Collection
}

type ratingDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	MovieID   string    `bson:"movie_id"`
	Rating    int       `bson:"rating"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d ratingDoc) toDomain() domain.Rating {
	return domain.Rating{
		ID:        d.ID,
		UserID:    d.UserID,
		MovieID:   d.MovieID,
		Value:     d.Rating,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Upsert sets the user's rating for a movie, creating the document when absent.
// ErrNotFound is returned when the movie does not exist.
func (r *RatingsRepository) Upsert(ctx context.Context, params repository.RatingUpsertParams) (domain.Rating, bool, error) {
	n, err := r.movies.CountDocuments(ctx, bson.M{"_id": params.MovieID}, options.Count().SetLimit(1))
	if err != nil {
		return domain.Rating{}, false, fmt.Errorf("check movie: %w", err)
	}
	if n == 0 {
		return domain.Rating{}, false, repository.ErrNotFound
	}

	filter := bson.M{"user_id": params.UserID, "movie_id": params.MovieID}
	res, err := r.update(ctx, filter, params.Value)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert won the insert; ours now matches and updates.
		res, err = r.update(ctx, filter, params.Value)
	}
	if err != nil {
		return domain.Rating{}, false, fmt.Errorf("mongo upsert rating: %w", err)
	}

	var doc ratingDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.Rating{}, false, fmt.Errorf("read back rating: %w", err)
	}
	return doc.toDomain(), res.UpsertedCount > 0, nil
}

func (r *RatingsRepository) update(ctx context.Context, filter bson.M, value int) (*mongo.UpdateResult, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set":         bson.M{"rating": value, "updated_at": now},
		"$setOnInsert": bson.M{"_id": uuid.NewString(), "created_at": now},
	}
	return r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
}

// Get returns the user's rating for a movie or ErrNotFound.
func (r *RatingsRepository) Get(ctx context.Context, userID, movieID string) (domain.Rating, error) {
	var doc ratingDoc
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "movie_id": movieID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Rating{}, repository.ErrNotFound
		}
		return domain.Rating{}, err
	}
	return doc.toDomain(), nil
}
