package llm

import (
	"context"
	"errors"
	"fmt"
)

// Role identifies the author of a message.
type Role string

// Message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a single completion call.
type CompletionRequest struct {
	// SystemPrompt is prepended as a system message when non-empty.
	SystemPrompt string

	// Messages are the conversation turns, oldest first.
	Messages []Message

	// Model overrides the client's default model when non-empty.
	Model string

	// Temperature overrides the client default when non-nil.
	Temperature *float64

	// MaxTokens caps the response length when positive.
	MaxTokens int
}

// Usage reports token consumption for a completion.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// CompletionResponse is the result of a completion call.
type CompletionResponse struct {
	Content string
	Model   string
	Usage   Usage
}

// Client is the text-generation service. Implementations must be safe
// for concurrent use; each call is an independent, stateless request.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// ErrorKind classifies service failures.
type ErrorKind string

// Failure kinds.
const (
	KindAuth      ErrorKind = "auth"
	KindNetwork   ErrorKind = "network"
	KindRateLimit ErrorKind = "rate_limit"
	KindOther     ErrorKind = "other"
)

// Error is a failed generation call. It wraps the transport-level cause
// and classifies it so callers can report failures without inspecting
// provider-specific errors.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("generation service (%s): %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or KindOther for errors that
// did not originate from a generation client.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindOther
}
