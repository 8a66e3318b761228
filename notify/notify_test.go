package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type recordingNotifier struct {
	events []Event
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, event Event) error {
	r.events = append(r.events, event)
	return r.err
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	notifier := NewLogNotifier(logger)
	err := notifier.Notify(context.Background(), Event{
		Type:     EventRunFailed,
		RunID:    "run-1",
		Message:  "boom",
		Severity: SeverityError,
	})
	if err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("log output missing error level: %q", out)
	}
	if !strings.Contains(out, "run-1") {
		t.Errorf("log output missing run ID: %q", out)
	}
}

func TestWebhookNotifier(t *testing.T) {
	var got Event
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Token") != "secret" {
			t.Errorf("X-Token = %q, want secret", r.Header.Get("X-Token"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode event: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, map[string]string{"X-Token": "secret"})
	event := Event{
		Type:      EventRunCompleted,
		RunID:     "run-2",
		Decision:  "GENERATE",
		Message:   "done",
		Severity:  SeverityInfo,
		Timestamp: time.Now(),
	}
	if err := notifier.Notify(context.Background(), event); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if got.Type != EventRunCompleted || got.RunID != "run-2" {
		t.Errorf("delivered event = %+v, want the sent event", got)
	}
}

func TestWebhookNotifier_DeliveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL, nil)
	if err := notifier.Notify(context.Background(), Event{Type: EventRunCompleted}); err == nil {
		t.Error("Notify() succeeded against a failing endpoint, want error")
	}
}

func TestMultiNotifier_ContinuesPastFailures(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("sink down")}
	working := &recordingNotifier{}

	multi := NewMultiNotifier(failing, working)
	multi.Logger = slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))

	err := multi.Notify(context.Background(), Event{Type: EventRunCompleted})
	if err == nil {
		t.Error("Notify() = nil, want the sink error propagated")
	}
	if len(working.events) != 1 {
		t.Errorf("second notifier received %d events, want 1", len(working.events))
	}
}

func TestNopNotifier(t *testing.T) {
	if err := (NopNotifier{}).Notify(context.Background(), Event{}); err != nil {
		t.Errorf("Notify() error = %v, want nil", err)
	}
}

func TestNotifierContext(t *testing.T) {
	if got := NotifierFromContext(context.Background()); got != nil {
		t.Errorf("NotifierFromContext(empty) = %v, want nil", got)
	}

	n := &recordingNotifier{}
	ctx := WithNotifier(context.Background(), n)
	if got := NotifierFromContext(ctx); got != Notifier(n) {
		t.Error("NotifierFromContext did not return the injected notifier")
	}
}
