// Package notify provides notification sinks for workflow run events.
//
// Core types:
//   - Notifier: Interface for sending notifications
//   - Event: Run event with type, message, and metadata
//
// Implementations:
//   - WebhookNotifier: Posts events to an HTTP webhook
//   - LogNotifier: Logs events via slog (for testing/debugging)
//   - MultiNotifier: Fans out to multiple notifiers
//   - NopNotifier: Discards all events
//
// Example usage:
//
//	notifier := notify.NewWebhookNotifier(url, nil)
//	_ = notifier.Notify(ctx, notify.Event{
//	    Type:    notify.EventRunCompleted,
//	    RunID:   runID,
//	    Message: "run completed",
//	})
package notify
