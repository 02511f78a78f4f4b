package session

import (
	"errors"
	"fmt"
)

// Failure taxonomy for backend interactions. The HTTP client maps response
// statuses onto these sentinels so callers can branch with errors.Is.
var (
	ErrNotFound    = errors.New("session not found")
	ErrUnavailable = errors.New("backend unavailable")
	ErrInvalid     = errors.New("request rejected")
)

// Local precondition failures. None of these involve a network call.
var (
	ErrEmptyQuery    = errors.New("query text is empty")
	ErrNotStarted    = errors.New("session not started")
	ErrStartInFlight = errors.New("session creation already in flight")
	ErrTurnInFlight  = errors.New("a turn is already in flight")
)

// PartialTurnError reports a turn where the user message was persisted but a
// later stage failed, leaving the transcript without an assistant reply.
type PartialTurnError struct {
	Stage string
	Err   error
}

// Turn stages that can fail after the user message is persisted.
const (
	StageSearch           = "search"
	StagePersistAssistant = "persist-assistant"
)

func (e *PartialTurnError) Error() string {
	return fmt.Sprintf("turn failed at %s after user message was saved: %v", e.Stage, e.Err)
}

func (e *PartialTurnError) Unwrap() error { return e.Err }
