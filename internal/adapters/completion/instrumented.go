package completion

import (
	"context"
	"time"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
	"github.com/shantanugsharp/chatbot-be/internal/core/ports"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
	"github.com/shantanugsharp/chatbot-be/internal/metrics"
)

// Instrumented times every call and logs the prompt size.
type Instrumented struct {
	next ports.CompletionProvider
}

func Instrument(next ports.CompletionProvider) *Instrumented {
	return &Instrumented{next: next}
}

func (i *Instrumented) Name() string { return i.next.Name() }

func (i *Instrumented) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	start := time.Now()
	text, err := i.next.Complete(ctx, req)
	elapsed := time.Since(start)

	metrics.RecordProviderCall(i.next.Name(), elapsed, err)
	logging.Ctx(ctx).Debug().
		Str("provider", i.next.Name()).
		Int("prompt_bytes", len(req.Prompt)).
		Int("response_bytes", len(text)).
		Bool("json", req.JSON).
		Dur("elapsed", elapsed).
		Err(err).
		Msg("completion call")
	return text, err
}
