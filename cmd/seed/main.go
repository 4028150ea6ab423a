package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Clark-Hu/moviemeter/internal/app"
	"github.com/Clark-Hu/moviemeter/internal/catalog"
	"github.com/Clark-Hu/moviemeter/internal/config"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "path to an optional .env file")
		timeout = flag.Duration("timeout", time.Minute, "overall deadline for connecting and seeding")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("load env (%s): %v", *envFile, err)
	}

	cfg, err := config.LoadStorage()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := app.NewLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	backend, err := app.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open %s backend: %v", cfg.StoreDriver, err)
	}
	defer backend.Close()

	n, err := catalog.Seed(ctx, backend.Repo.Movies, catalog.DefaultMovies(), logger)
	if err != nil {
		logger.Errorf("seed failed: %v", err)
		backend.Close()
		os.Exit(1)
	}
	logger.Infof("database seeded with %d movies", n)
}
