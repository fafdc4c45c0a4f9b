package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shantanugsharp/chatbot-be/internal/adapters/rest"
	"github.com/shantanugsharp/chatbot-be/internal/app"
	"github.com/shantanugsharp/chatbot-be/internal/config"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
	"github.com/shantanugsharp/chatbot-be/internal/supervisor"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Configuration. Crash early if the provider cannot be reached at all.
	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: os.Stderr,
	})
	if err := cfg.ValidateProvider(); err != nil {
		logging.Fatal().Err(err).Str("provider", cfg.Provider.Name).Msg("provider is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Core wiring: provider, catalog source and engine.
	a, err := app.New(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize MIRA")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           rest.NewHandler(a),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree("mira", supervisor.DefaultTreeConfig())
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	tree.AddBackgroundService(a.Pool)
	if w := a.Watcher(); w != nil {
		tree.AddBackgroundService(w)
		logging.Info().Str("path", cfg.Catalog.Path).Msg("watching catalog for changes")
	}

	stats := a.Engine.Stats()
	logging.Info().
		Str("addr", server.Addr).
		Str("provider", a.Engine.ProviderName()).
		Str("catalog", a.Source.Describe()).
		Int("tracks", stats.Total).
		Str("version", app.Version).
		Msg(a.Engine.Name() + " API is running")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree stopped")
		os.Exit(1)
	}
	logging.Info().Msg("shut down gracefully")
}
