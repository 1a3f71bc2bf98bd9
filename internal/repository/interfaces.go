// Package repository persists chat transcripts to the local store.
package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// TranscriptMessage is one persisted transcript row.
type TranscriptMessage struct {
	ID        string
	SessionID string
	Role      string
	Name      string
	Content   string
	CreatedAt time.Time
}

// TranscriptRepo records chat sessions and their messages.
type TranscriptRepo interface {
	// StartSession records a new session for an employee id.
	StartSession(ctx context.Context, sessionID, empID string) error

	// AppendMessage appends one message to a session's transcript.
	AppendMessage(ctx context.Context, m *TranscriptMessage) error

	// ListMessages returns a session's messages in insertion order.
	ListMessages(ctx context.Context, sessionID string) ([]*TranscriptMessage, error)
}
