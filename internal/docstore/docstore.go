// Package docstore is the MongoDB backend for the repository interfaces.
package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Clark-Hu/moviemeter/internal/repository"
)

const (
	usersCollection    = "users"
	moviesCollection   = "movies"
	ratingsCollection  = "ratings"
	countersCollection = "counters"

	movieSeqCounter = "movie_seq"

	usernameIndex = "username_lower_unique"
	emailIndex    = "email_lower_unique"
)

// Store owns the Mongo client and the selected database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *logrus.Logger
}

// Options configures Connect.
type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	Logger         *logrus.Logger
}

// Connect dials Mongo, pings the primary and returns a Store.
func Connect(ctx context.Context, opts Options) (*Store, error) {
	if opts.URI == "" {
		return nil, fmt.Errorf("mongo uri is required")
	}
	if opts.Database == "" {
		return nil, fmt.Errorf("mongo database is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	clientOpts := options.Client().ApplyURI(opts.URI).SetConnectTimeout(timeout)
	if opts.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(opts.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Printf("connected to mongo database %s", opts.Database)
	return &Store{client: client, db: client.Database(opts.Database), logger: logger}, nil
}

// Database exposes the selected database.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// HealthCheck pings the primary.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("mongo store not initialised")
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the unique and ordering indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username_lower", Value: 1}}, Options: options.Index().SetUnique(true).SetName(usernameIndex)},
			{Keys: bson.D{{Key: "email_lower", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndex)},
		},
		moviesCollection: {
			{Keys: bson.D{{Key: "seq", Value: 1}}, Options: options.Index().SetName("seq_asc")},
		},
		ratingsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "movie_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("user_movie_unique")},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

// NewRepository builds Mongo-backed repositories over db.
func NewRepository(db *mongo.Database) *repository.Repository {
	movies := db.Collection(moviesCollection)
	return &repository.Repository{
		Users:   &UsersRepository{col: db.Collection(usersCollection)},
		Movies:  &MoviesRepository{col: movies, ratings: db.Collection(ratingsCollection), counters: db.Collection(countersCollection)},
		Ratings: &RatingsRepository{col: db.Collection(ratingsCollection), movies: movies},
	}
}
