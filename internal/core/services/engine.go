// Package services hosts the conversation engine that ties the core
// packages to a completion provider.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/shantanugsharp/chatbot-be/internal/core/catalog"
	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
	"github.com/shantanugsharp/chatbot-be/internal/core/intent"
	"github.com/shantanugsharp/chatbot-be/internal/core/memory"
	"github.com/shantanugsharp/chatbot-be/internal/core/ports"
	"github.com/shantanugsharp/chatbot-be/internal/core/prompt"
	"github.com/shantanugsharp/chatbot-be/internal/core/ranking"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
)

// DefaultName is used when no bot name is configured.
const DefaultName = "MIRA - Hoopr Music AI"

// ErrEmptyCompletion is reported when the provider answers with blank text.
var ErrEmptyCompletion = errors.New("empty completion")

// Observer is told about every Respond outcome.
type Observer func(reply domain.Reply, elapsed time.Duration)

// Option configures an Engine.
type Option func(*Engine)

// WithName sets the bot name reported to callers.
func WithName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.name = name
		}
	}
}

// WithObserver registers fn to run after each Respond.
func WithObserver(fn Observer) Option {
	return func(e *Engine) { e.observe = fn }
}

// Engine owns one catalog snapshot and one conversation log. Respond and
// ResetConversation are serialized; catalog reads are lock-free.
type Engine struct {
	name     string
	provider ports.CompletionProvider
	observe  Observer

	mu      sync.Mutex
	history *memory.Store
	catalog atomic.Pointer[catalog.Snapshot]
}

// NewEngine builds an engine over tracks. A nil or empty tracks slice gives a
// degraded engine that still converses.
func NewEngine(provider ports.CompletionProvider, tracks []domain.Track, opts ...Option) *Engine {
	e := &Engine{
		name:     DefaultName,
		provider: provider,
		history:  memory.NewStore(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.catalog.Store(catalog.NewSnapshot(tracks))
	return e
}

// Respond answers one utterance. It never returns an error: failures are
// reported on the Reply with FallbackReply as its text, and leave the
// conversation untouched.
func (e *Engine) Respond(ctx context.Context, utterance string) domain.Reply {
	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	kind := intent.Classify(utterance)
	window := e.history.ContextWindow(memory.DefaultWindow)

	var evidence []domain.Track
	if kind == domain.IntentRecommendation {
		snap := e.catalog.Load()
		evidence = ranking.Rank(utterance, snap.Tracks(), ranking.DefaultLimit)
		if len(evidence) == 0 {
			evidence = snap.Head(ranking.DefaultLimit)
		}
	}

	reply := domain.Reply{Intent: kind, Evidence: evidence}
	text, err := e.generate(ctx, prompt.Build(kind, evidence, window, utterance))
	if err != nil {
		reply.Text = domain.FallbackReply
		reply.Failure = domain.NewProviderFailure("respond", err)
		logging.Ctx(ctx).Error().
			Err(err).
			Str("op", "respond").
			Str("provider", e.provider.Name()).
			Str("utterance", excerpt(utterance, 80)).
			Msg("completion failed")
	} else {
		e.history.Append(domain.RoleUser, utterance)
		e.history.Append(domain.RoleAssistant, text)
		reply.Text = text
		logging.Ctx(ctx).Info().
			Stringer("intent", kind).
			Int("evidence", len(evidence)).
			Dur("elapsed", time.Since(start)).
			Msg("response generated")
	}

	if e.observe != nil {
		e.observe(reply, time.Since(start))
	}
	return reply
}

func (e *Engine) generate(ctx context.Context, p prompt.Prompt) (string, error) {
	rendered, err := p.Render()
	if err != nil {
		return "", err
	}
	text, err := e.provider.Complete(ctx, domain.CompletionRequest{Prompt: rendered})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// ResetConversation clears the conversation log.
func (e *Engine) ResetConversation() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Reset()
	logging.Info().Msg("conversation reset")
}

// Reload normalizes raw and swaps it in as the catalog. It returns the new
// track count.
func (e *Engine) Reload(raw any) int {
	return e.ReloadTracks(catalog.Normalize(raw))
}

// ReloadTracks swaps in an already normalized catalog.
func (e *Engine) ReloadTracks(tracks []domain.Track) int {
	snap := catalog.NewSnapshot(tracks)
	e.catalog.Store(snap)
	logging.Info().Int("tracks", snap.Len()).Msg("catalog loaded")
	return snap.Len()
}

func (e *Engine) Stats() domain.CatalogStats { return e.catalog.Load().Stats() }

// Catalog returns the current tracks. Callers must not modify the slice.
func (e *Engine) Catalog() []domain.Track { return e.catalog.Load().Tracks() }

// History returns a copy of the conversation log, oldest first.
func (e *Engine) History() []domain.Turn { return e.history.Turns() }

func (e *Engine) Name() string { return e.name }

// ProviderName reports which completion backend is in use.
func (e *Engine) ProviderName() string { return e.provider.Name() }

func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
