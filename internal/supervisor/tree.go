// Package supervisor runs long-lived services under a suture supervision
// tree with zerolog event reporting.
package supervisor

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/shantanugsharp/chatbot-be/internal/logging"
)

type TreeConfig struct {
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration
	ShutdownTimeout  time.Duration
}

func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Tree has one root with an API layer (HTTP) and a background layer
// (reload pool, file watcher).
type Tree struct {
	root       *suture.Supervisor
	api        *suture.Supervisor
	background *suture.Supervisor
}

func NewTree(name string, cfg TreeConfig) *Tree {
	def := DefaultTreeConfig()
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.FailureDecay == 0 {
		cfg.FailureDecay = def.FailureDecay
	}
	if cfg.FailureBackoff == 0 {
		cfg.FailureBackoff = def.FailureBackoff
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}

	spec := suture.Spec{
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		Timeout:          cfg.ShutdownTimeout,
	}
	rootSpec := spec
	rootSpec.EventHook = eventHook

	root := suture.New(name, rootSpec)
	api := suture.New("api-layer", spec)
	background := suture.New("background-layer", spec)
	root.Add(api)
	root.Add(background)

	return &Tree{root: root, api: api, background: background}
}

func (t *Tree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

func (t *Tree) AddBackgroundService(svc suture.Service) suture.ServiceToken {
	return t.background.Add(svc)
}

// Serve blocks until ctx is cancelled or the tree gives up.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

func eventHook(e suture.Event) {
	switch ev := e.(type) {
	case suture.EventServicePanic:
		logging.Error().
			Str("supervisor", ev.SupervisorName).
			Str("service", ev.ServiceName).
			Str("panic", ev.PanicMsg).
			Str("stacktrace", ev.Stacktrace).
			Msg("service panicked")
	case suture.EventServiceTerminate:
		logging.Warn().
			Str("supervisor", ev.SupervisorName).
			Str("service", ev.ServiceName).
			Interface("error", ev.Err).
			Bool("restarting", ev.Restarting).
			Msg("service terminated")
	case suture.EventBackoff:
		logging.Warn().Str("supervisor", ev.SupervisorName).Msg("supervisor entering backoff")
	case suture.EventResume:
		logging.Info().Str("supervisor", ev.SupervisorName).Msg("supervisor resumed")
	case suture.EventStopTimeout:
		logging.Error().
			Str("supervisor", ev.SupervisorName).
			Str("service", ev.ServiceName).
			Msg("service did not stop in time")
	default:
		logging.Debug().Str("event", e.String()).Msg("supervisor event")
	}
}
