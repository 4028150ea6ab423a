// Package app wires configuration to a logger and a storage backend for the
// binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/config"
	"github.com/Clark-Hu/moviemeter/internal/docstore"
	"github.com/Clark-Hu/moviemeter/internal/repository"
	"github.com/Clark-Hu/moviemeter/internal/store"
)

// NewLogger returns a JSON logger in production and a text logger otherwise.
// LOG_LEVEL overrides the default info level.
func NewLogger(cfg config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logger.SetLevel(logrus.InfoLevel)
	if raw := strings.TrimSpace(os.Getenv("LOG_LEVEL")); raw != "" {
		if level, err := logrus.ParseLevel(raw); err == nil {
			logger.SetLevel(level)
		}
	}
	return logger
}

// Backend is an open storage backend.
type Backend struct {
	Repo   *repository.Repository
	Health interface {
		HealthCheck(ctx context.Context) error
	}
	close func()
}

// Close releases the backend's connections.
func (b *Backend) Close() {
	if b != nil && b.close != nil {
		b.close()
	}
}

// OpenBackend connects to the store named by cfg.StoreDriver. Postgres
// migrations run when cfg.AutoMigrate is set; Mongo indexes are always ensured.
func OpenBackend(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*Backend, error) {
	st, err := store.New(ctx, cfg.DBURL, store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := st.Migrate(); err != nil {
			st.Close()
			return nil, err
		}
	}
	return &Backend{Repo: repository.New(st), Health: st, close: st.Close}, nil
}

func openMongo(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*Backend, error) {
	ds, err := docstore.Connect(ctx, docstore.Options{
		URI:            cfg.MongoURI,
		Database:       cfg.MongoDatabase,
		ConnectTimeout: time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		MaxPoolSize:    uint64(cfg.DBMaxConns),
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ds.Close(ctx); err != nil {
			logger.WithError(err).Warn("mongo disconnect failed")
		}
	}
	if err := docstore.EnsureIndexes(ctx, ds.Database()); err != nil {
		closeFn()
		return nil, err
	}
	return &Backend{Repo: docstore.NewRepository(ds.Database()), Health: ds, close: closeFn}, nil
}
