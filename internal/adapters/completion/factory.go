// Package completion builds the configured completion provider and wraps it
// with instrumentation and a circuit breaker.
package completion

import (
	"context"
	"fmt"

	"github.com/shantanugsharp/chatbot-be/internal/adapters/gemini"
	"github.com/shantanugsharp/chatbot-be/internal/adapters/ollama"
	"github.com/shantanugsharp/chatbot-be/internal/adapters/openai"
	"github.com/shantanugsharp/chatbot-be/internal/config"
	"github.com/shantanugsharp/chatbot-be/internal/core/ports"
)

// New returns the provider named in cfg.Provider. The breaker wraps the
// instrumented provider so rejected calls are not timed.
func New(ctx context.Context, cfg *config.Config) (ports.CompletionProvider, error) {
	p := cfg.Provider

	var base ports.CompletionProvider
	switch p.Name {
	case "openai":
		c, err := openai.NewClient(openai.Config{
			BaseURL:           p.ResolvedBaseURL(),
			APIKey:            p.ResolvedAPIKey(),
			Model:             p.Model,
			Timeout:           p.Timeout,
			MaxRetries:        p.MaxRetries,
			RetryBackoff:      p.RetryBackoff,
			RequestsPerSecond: p.RequestsPerSecond,
		})
		if err != nil {
			return nil, err
		}
		base = c
	case "ollama":
		base = ollama.NewClient(ollama.Config{
			BaseURL:      p.ResolvedBaseURL(),
			Model:        p.Model,
			Timeout:      p.Timeout,
			MaxRetries:   p.MaxRetries,
			RetryBackoff: p.RetryBackoff,
		})
	case "gemini":
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  p.ResolvedAPIKey(),
			Model:   p.Model,
			BaseURL: p.ResolvedBaseURL(),
			Timeout: p.Timeout,
		})
		if err != nil {
			return nil, err
		}
		base = c
	default:
		return nil, fmt.Errorf("completion: unknown provider %q", p.Name)
	}

	var provider ports.CompletionProvider = Instrument(base)
	if cfg.Breaker.Enabled {
		provider = NewBreaker(provider, BreakerSettings{
			MaxRequests:  cfg.Breaker.MaxRequests,
			Interval:     cfg.Breaker.Interval,
			Timeout:      cfg.Breaker.Timeout,
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
		})
	}
	return provider, nil
}
