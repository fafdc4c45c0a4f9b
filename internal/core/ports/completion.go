package ports

import (
	"context"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

// CompletionProvider generates text for a rendered prompt.
type CompletionProvider interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
	Name() string
}
