// Package app wires configuration, catalog sources, the completion provider
// and the engine into one runnable unit shared by the HTTP server and CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shantanugsharp/chatbot-be/internal/adapters/completion"
	"github.com/shantanugsharp/chatbot-be/internal/adapters/jsonfile"
	"github.com/shantanugsharp/chatbot-be/internal/adapters/sqlite"
	"github.com/shantanugsharp/chatbot-be/internal/config"
	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
	"github.com/shantanugsharp/chatbot-be/internal/core/ports"
	"github.com/shantanugsharp/chatbot-be/internal/core/services"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
	"github.com/shantanugsharp/chatbot-be/internal/metrics"
	"github.com/shantanugsharp/chatbot-be/internal/worker"
)

// Version is reported by the service info endpoint.
var Version = "1.0.0"

const reloadQueueSize = 4

type App struct {
	Config *config.Config
	Engine *services.Engine
	Source ports.CatalogSource
	Pool   *worker.Pool
}

// New builds the provider from cfg and an engine over the configured
// catalog. A catalog that fails to load leaves the engine degraded with zero
// tracks; only provider construction errors are fatal.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	provider, err := completion.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("app: completion provider: %w", err)
	}
	return NewWithProvider(ctx, cfg, provider), nil
}

// NewWithProvider is New with an explicit provider.
func NewWithProvider(ctx context.Context, cfg *config.Config, provider ports.CompletionProvider) *App {
	engine := services.NewEngine(provider, nil,
		services.WithName(cfg.Engine.BotName),
		services.WithObserver(metrics.RecordReply),
	)
	a := &App{
		Config: cfg,
		Engine: engine,
		Source: SourceFor(cfg.Catalog),
	}
	a.Pool = worker.NewPool(a.handleJob, reloadQueueSize)

	if _, err := ReloadFrom(ctx, engine, a.Source, "startup"); err != nil {
		logging.Warn().Err(err).Str("source", a.Source.Describe()).Msg("starting with an empty catalog")
	}
	return a
}

// SourceFor returns the catalog source named by cfg.
func SourceFor(cfg config.CatalogConfig) ports.CatalogSource {
	if cfg.Source == "sqlite" {
		return sqlite.Source{Path: cfg.Path, Table: cfg.Table}
	}
	return jsonfile.Source{Path: cfg.Path}
}

// ReloadFrom loads src into engine. On failure the current catalog is kept
// and a LoadFailure is returned.
func ReloadFrom(ctx context.Context, engine *services.Engine, src ports.CatalogSource, trigger string) (int, error) {
	raw, err := src.Load(ctx)
	if err != nil {
		metrics.RecordReload(trigger, 0, err)
		logging.Error().Err(err).Str("op", "reload").Str("source", src.Describe()).Str("trigger", trigger).Msg("catalog load failed")
		return 0, domain.NewLoadFailure("reload", err)
	}
	n := engine.Reload(raw)
	metrics.RecordReload(trigger, n, nil)
	logging.Info().Str("source", src.Describe()).Str("trigger", trigger).Int("tracks", n).Msg("catalog reloaded")
	return n, nil
}

// ErrOutsideCatalogDir is returned for reload paths that leave the directory
// of the configured catalog.
var ErrOutsideCatalogDir = errors.New("app: path is outside the catalog directory")

// ReloadCatalog reloads from the JSON file at path, or from the configured
// source when path is empty. A relative path is taken from the catalog
// directory; any path must stay inside it, otherwise a ValidationFailure is
// returned and nothing is read.
func (a *App) ReloadCatalog(ctx context.Context, path string) (int, error) {
	src := a.Source
	if path != "" {
		resolved, err := a.catalogFile(path)
		if err != nil {
			logging.Warn().Err(err).Str("op", "reload").Str("path", path).Msg("rejected catalog path")
			return 0, domain.NewValidationFailure("reload", err)
		}
		src = jsonfile.Source{Path: resolved}
	}
	return ReloadFrom(ctx, a.Engine, src, "api")
}

// catalogFile resolves path against the configured catalog's directory,
// following symlinks, and rejects anything outside it.
func (a *App) catalogFile(path string) (string, error) {
	dir, err := filepath.Abs(filepath.Dir(a.Config.Catalog.Path))
	if err != nil {
		return "", err
	}
	dir = resolveLinks(dir)

	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	target := resolveLinks(filepath.Clean(path))

	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideCatalogDir, path)
	}
	return target, nil
}

// resolveLinks evaluates symlinks in p. For a file that does not exist yet
// only its directory is resolved.
func resolveLinks(p string) string {
	if r, err := filepath.EvalSymlinks(p); err == nil {
		return r
	}
	if r, err := filepath.EvalSymlinks(filepath.Dir(p)); err == nil {
		return filepath.Join(r, filepath.Base(p))
	}
	return p
}

// Watcher returns the file watcher for the configured catalog, or nil when
// watching is disabled.
func (a *App) Watcher() *worker.Watcher {
	if !a.Config.Catalog.Watch || a.Config.Catalog.Source != "json" {
		return nil
	}
	return worker.NewWatcher(a.Config.Catalog.Path, a.Source, a.Pool, a.Config.Catalog.WatchDebounce)
}

func (a *App) handleJob(ctx context.Context, job worker.Job) {
	src := job.Source
	if src == nil {
		src = a.Source
	}
	_, _ = ReloadFrom(ctx, a.Engine, src, job.Trigger)
}
