package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/moviemeter/internal/account"
	"github.com/Clark-Hu/moviemeter/internal/app"
	"github.com/Clark-Hu/moviemeter/internal/auth"
	"github.com/Clark-Hu/moviemeter/internal/config"
	httpserver "github.com/Clark-Hu/moviemeter/internal/http"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := app.NewLogger(cfg)

	dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	backend, err := app.OpenBackend(dbCtx, cfg, logger)
	if err != nil {
		logger.Fatalf("open %s backend: %v", cfg.StoreDriver, err)
	}
	defer backend.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL())
	accounts := account.NewService(backend.Repo.Users, auth.NewPasswordHasher(cfg.BcryptCost), tokens, logger)
	server := httpserver.New(cfg, backend.Health, backend.Repo, accounts, tokens, logger)

	logger.WithFields(logrus.Fields{
		"addr":   cfg.HTTPAddress(),
		"env":    cfg.Env,
		"driver": cfg.StoreDriver,
	}).Info("moviemeter api listening")

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Errorf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("graceful shutdown error: %v", err)
	}
	logger.Info("server stopped")
}
