package main

import (
	"context"
	"net/http"
	"os"

	"hermes/internal/adapters/binance"
	"hermes/internal/adapters/config"
	"hermes/internal/adapters/errors/noop"
	"hermes/internal/adapters/errors/sentry"
	"hermes/internal/server"
	"hermes/internal/stream"
	"hermes/internal/tools/shared"
	"hermes/pkg/errors"
	"hermes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)
	defer errorTracker.Flush(context.Background())

	deps := buildDeps(cfg)
	srv := server.New(cfg, deps)

	log.Info("Serving tools over stdio")
	if err := server.ServeStdio(srv); err != nil {
		log.Errorf("Server stopped: %v", err)
		os.Exit(1)
	}

	log.Info("Host closed the channel, shutting down")
}

// buildDeps wires the fetcher and collector from immutable config; no
// component keeps state across invocations.
func buildDeps(cfg *config.Config) shared.Deps {
	client := binance.NewClient(binance.Config{
		BaseURL:    cfg.Binance.BaseURL,
		UserAgent:  cfg.Binance.UserAgent,
		HTTPClient: &http.Client{Timeout: cfg.Binance.HTTPTimeout},
	})

	collector := stream.NewCollector(stream.Config{
		FeedURL:          cfg.Stream.FeedURL,
		DefaultWindow:    cfg.Stream.DefaultWindow,
		MaxWindow:        cfg.Stream.MaxWindow,
		HandshakeTimeout: cfg.Stream.HandshakeTimeout,
	})

	return shared.Deps{
		Market:    client,
		Collector: collector,
		Log:       logger.Get(),
	}
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}
