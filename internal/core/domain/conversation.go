package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleUser      Role = "User"
	RoleAssistant Role = "Assistant"
)

// Turn is one entry in the conversation log.
type Turn struct {
	ID   string    `json:"id"`
	Role Role      `json:"role"`
	Text string    `json:"message"`
	At   time.Time `json:"timestamp"`
}

// NewTurn stamps a turn with a fresh ID and the current time.
func NewTurn(role Role, text string) Turn {
	return Turn{
		ID:   uuid.NewString(),
		Role: role,
		Text: text,
		At:   time.Now().UTC(),
	}
}
