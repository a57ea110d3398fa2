// Package main runs the NiN Supply commerce backend: user accounts with
// role-based access, product catalog, carts, orders and bKash checkout flows
// over MongoDB.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nin-supply/commerce/internal/auth"
	"github.com/nin-supply/commerce/internal/bkash"
	"github.com/nin-supply/commerce/internal/config"
	"github.com/nin-supply/commerce/internal/logging"
	"github.com/nin-supply/commerce/internal/middleware"
	"github.com/nin-supply/commerce/internal/store"
	storemongo "github.com/nin-supply/commerce/internal/store/mongo"
)

type application struct {
	cfg            *config.Config
	logger         *logging.Logger
	store          store.Store
	tokens         *auth.TokenService
	limiter        *middleware.RateLimiter
	bkashDirect    bkash.Gateway
	bkashTokenized bkash.Gateway
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to optional config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New("commerce", cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := storemongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	cancel()
	if err != nil {
		logger.WithContext(nil).WithError(err).Fatal("failed to connect to mongodb")
	}

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.Ping(pingCtx); err != nil {
		logger.WithContext(nil).WithError(err).Warn("mongodb ping failed, continuing startup")
	}
	cancelPing()

	bkashCfg := bkash.Config{
		BaseURL:   cfg.Bkash.BaseURL,
		Username:  cfg.Bkash.Username,
		Password:  cfg.Bkash.Password,
		AppKey:    cfg.Bkash.AppKey,
		AppSecret: cfg.Bkash.AppSecret,
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	limiter.StartCleanup(10*time.Minute, time.Hour)

	app := &application{
		cfg:            cfg,
		logger:         logger,
		store:          db,
		tokens:         auth.NewTokenService(cfg.AccessTokenSecret),
		limiter:        limiter,
		bkashDirect:    bkash.NewClient(bkashCfg),
		bkashTokenized: bkash.NewTokenizedClient(bkashCfg),
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithContext(nil).WithField("port", cfg.Port).Info("server listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.WithContext(nil).WithError(err).Fatal("server failed")
		}
	case sig := <-stop:
		logger.WithContext(nil).WithField("signal", sig.String()).Info("shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithContext(nil).WithError(err).Warn("graceful shutdown failed")
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.WithContext(nil).WithError(err).Warn("failed to close store")
	}
}
