package domain

import (
	"errors"
	"fmt"
)

// Failure kinds. Match them with errors.Is against a *Failure.
var (
	ErrLoadFailure       = errors.New("domain: catalog load failure")
	ErrProviderFailure   = errors.New("domain: completion provider failure")
	ErrValidationFailure = errors.New("domain: validation failure")
)

// FallbackReply is what the user sees when the completion provider fails.
const FallbackReply = "I'm having trouble right now. Please try again!"

// Failure is a classified, recoverable error surfaced to caller layers.
type Failure struct {
	Kind error  // one of the Err*Failure sentinels
	Op   string // operation that failed, e.g. "respond"
	Err  error  // underlying cause, may be nil
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %v", f.Op, f.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", f.Op, f.Kind, f.Err)
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{f.Kind}
	}
	return []error{f.Kind, f.Err}
}

// KindName returns a stable snake_case name for the failure kind.
func (f *Failure) KindName() string {
	switch f.Kind {
	case ErrLoadFailure:
		return "load_failure"
	case ErrProviderFailure:
		return "provider_failure"
	case ErrValidationFailure:
		return "validation_failure"
	default:
		return "unknown_failure"
	}
}

func NewLoadFailure(op string, err error) *Failure {
	return &Failure{Kind: ErrLoadFailure, Op: op, Err: err}
}

func NewProviderFailure(op string, err error) *Failure {
	return &Failure{Kind: ErrProviderFailure, Op: op, Err: err}
}

func NewValidationFailure(op string, err error) *Failure {
	return &Failure{Kind: ErrValidationFailure, Op: op, Err: err}
}

// Reply is the outcome of one Respond call. On failure Text holds
// FallbackReply and Failure is set.
type Reply struct {
	Text     string
	Intent   Intent
	Evidence []Track
	Failure  *Failure
}

// OK reports whether the reply came from the provider.
func (r Reply) OK() bool { return r.Failure == nil }

// CompletionRequest is what the engine hands to a completion provider.
type CompletionRequest struct {
	Prompt string
	// JSON asks the provider for a JSON-only answer. The engine always
	// requests free text.
	JSON bool
}
