// Package memory holds the bounded conversation log of one engine.
package memory

import (
	"strings"
	"sync"

	"github.com/shantanugsharp/chatbot-be/internal/core/domain"
)

const (
	// MaxTurns is the number of turns kept; older turns are dropped one at a time.
	MaxTurns = 20
	// DefaultWindow is the number of turns rendered into a prompt.
	DefaultWindow = 8
	// StartSentinel stands in for an empty history.
	StartSentinel = "This is the start of our conversation."
)

// Store is an append-only log capped at MaxTurns. Reads are safe alongside
// writes.
type Store struct {
	mu    sync.RWMutex
	turns []domain.Turn
}

func NewStore() *Store {
	return &Store{turns: make([]domain.Turn, 0, MaxTurns)}
}

// Append records a turn and evicts the oldest ones beyond MaxTurns.
func (s *Store) Append(role domain.Role, text string) domain.Turn {
	turn := domain.NewTurn(role, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	if over := len(s.turns) - MaxTurns; over > 0 {
		kept := make([]domain.Turn, MaxTurns)
		copy(kept, s.turns[over:])
		s.turns = kept
	}
	return turn
}

// ContextWindow renders the last n turns as "role: text" lines, oldest
// first. n <= 0 means DefaultWindow.
func (s *Store) ContextWindow(n int) string {
	if n <= 0 {
		n = DefaultWindow
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.turns) == 0 {
		return StartSentinel
	}
	start := max(len(s.turns)-n, 0)

	var b strings.Builder
	for i, t := range s.turns[start:] {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Text)
	}
	return b.String()
}

// Reset drops every turn.
func (s *Store) Reset() {
	s.mu.Lock()
	s.turns = s.turns[:0:0]
	s.mu.Unlock()
}

// Turns returns a copy of the log.
func (s *Store) Turns() []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}
