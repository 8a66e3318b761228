package notify

import (
	"context"
	"time"
)

// EventType represents the type of workflow run event.
type EventType string

// Event type constants.
const (
	EventRunStarted   EventType = "run_started"
	EventRunCompleted EventType = "run_completed"
	EventRunFailed    EventType = "run_failed"
	EventRunRejected  EventType = "run_rejected"
)

// Severity constants for notification events.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Event describes a workflow run event for notification.
type Event struct {
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id"`
	Decision  string         `json:"decision,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Notifier sends notifications about workflow run events.
type Notifier interface {
	// Notify sends a notification. Implementations should handle errors
	// gracefully; a failed notification never fails the run.
	Notify(ctx context.Context, event Event) error
}

// Context injection, so nodes and runners can notify without a direct
// dependency on the configured sink.

type serviceContextKey string

const notifierServiceKey serviceContextKey = "reviewflow.notifier"

// WithNotifier adds a Notifier to the context.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierServiceKey, n)
}

// NotifierFromContext extracts the Notifier from context.
// Returns nil if no notifier is configured.
func NotifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierServiceKey).(Notifier); ok {
		return n
	}
	return nil
}
