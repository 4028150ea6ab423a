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

// MoviesRepository stores the catalog. seq preserves insertion order.
type MoviesRepository struct {
	col      *mongo.Collection
	ratings  *mongo.Collection
	counters *mongo.Collection
}

type counterDoc struct {
	ID    string `bson:"_id"`
	Value int64  `bson:"value"`
}

// reserveSeq atomically reserves n consecutive sequence numbers and returns
// the first one.
func (r *MoviesRepository) reserveSeq(ctx context.Context, n int) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc counterDoc
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": movieSeqCounter},
		bson.M{"$inc": bson.M{"value": int64(n)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("reserve movie seq: %w", err)
	}
	return doc.Value - int64(n) + 1, nil
}

type movieDoc struct {
	ID            string    `bson:"_id"`
	Seq           int64     `bson:"seq"`
	Title         string    `bson:"title"`
	ReleaseYear   int       `bson:"release_year"`
	PosterURL     string    `bson:"poster_url"`
	DefaultRating float64   `bson:"default_rating"`
	CreatedAt     time.Time `bson:"created_at"`
}

func (d movieDoc) toDomain() domain.Movie {
	return domain.Movie{
		ID:            d.ID,
		Title:         d.Title,
		ReleaseYear:   d.ReleaseYear,
		PosterURL:     d.PosterURL,
		DefaultRating: d.DefaultRating,
		CreatedAt:     d.CreatedAt,
	}
}

func newMovieDoc(params repository.MovieCreateParams, seq int64, now time.Time) movieDoc {
	return movieDoc{
		ID:            uuid.NewString(),
		Seq:           seq,
		Title:         params.Title,
		ReleaseYear:   params.ReleaseYear,
		PosterURL:     params.PosterURL,
		DefaultRating: params.DefaultRating,
		CreatedAt:     now,
	}
}

// Create inserts a movie at the end of the catalog.
func (r *MoviesRepository) Create(ctx context.Context, params repository.MovieCreateParams) (domain.Movie, error) {
	seq, err := r.reserveSeq(ctx, 1)
	if err != nil {
		return domain.Movie{}, err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := newMovieDoc(params, seq, now)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Movie{}, fmt.Errorf("mongo insert movie: %w", err)
	}
	return doc.toDomain(), nil
}

// GetByID fetches a movie by id.
func (r *MoviesRepository) GetByID(ctx context.Context, id string) (domain.Movie, error) {
	var doc movieDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Movie{}, repository.ErrNotFound
		}
		return domain.Movie{}, err
	}
	return doc.toDomain(), nil
}

// List returns the catalog in insertion order.
func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []movieDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]domain.Movie, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, nil
}

// ReplaceAll wipes movies and ratings and inserts movies in order.
// Standalone servers have no multi-document transactions, so a failure
// part-way leaves a partial catalog; rerun the seeder.
func (r *MoviesRepository) ReplaceAll(ctx context.Context, movies []repository.MovieCreateParams) (int, error) {
	if _, err := r.ratings.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("clear ratings: %w", err)
	}
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("clear movies: %w", err)
	}
	if len(movies) == 0 {
		return 0, nil
	}

	base, err := r.reserveSeq(ctx, len(movies))
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	docs := make([]interface{}, 0, len(movies))
	for i, m := range movies {
		docs = append(docs, newMovieDoc(m, base+int64(i), now))
	}
	res, err := r.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return 0, fmt.Errorf("insert movies: %w", err)
	}
	return len(res.InsertedIDs), nil
}
