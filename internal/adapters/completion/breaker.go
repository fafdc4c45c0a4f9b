package completion

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
	"github.com/shantanugsharp/chatbot-be/internal/core/ports"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
	"github.com/shantanugsharp/chatbot-be/internal/metrics"
)

// BreakerSettings tunes the circuit breaker. Zero values fall back to
// gobreaker defaults, except MinRequests and FailureRatio.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// Breaker short-circuits a provider that keeps failing. Rejected calls
// return gobreaker.ErrOpenState or gobreaker.ErrTooManyRequests.
type Breaker struct {
	next ports.CompletionProvider
	cb   *gobreaker.CircuitBreaker[string]
	name string
}

func NewBreaker(next ports.CompletionProvider, s BreakerSettings) *Breaker {
	name := next.Name() + "-provider"
	minRequests := s.MinRequests
	if minRequests == 0 {
		minRequests = 5
	}
	ratio := s.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}

	metrics.BreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= ratio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			metrics.BreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
		// A caller giving up is not the provider's fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Breaker{next: next, cb: cb, name: name}
}

func (b *Breaker) Name() string { return b.next.Name() }

func (b *Breaker) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	text, err := b.cb.Execute(func() (string, error) {
		return b.next.Complete(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.BreakerRejections.WithLabelValues(b.name).Inc()
	}
	return text, err
}

// State reports the breaker state, mainly for health output and tests.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
