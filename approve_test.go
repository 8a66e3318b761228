package reviewflow

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

func TestAutoApprover(t *testing.T) {
	ok, err := AutoApprover{}.Approve(context.Background(), NewState("task"))
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if !ok {
		t.Error("AutoApprover rejected")
	}
}

func TestConsoleApprover_Answers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"yes word", "yes\n", true},
		{"yes uppercase", "YES\n", true},
		{"yes padded", "  y  \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"gibberish", "maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			approver := &ConsoleApprover{In: strings.NewReader(tt.input), Out: &out}

			ok, err := approver.Approve(context.Background(), NewState("task"))
			if err != nil {
				t.Fatalf("Approve() error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("Approve(%q) = %v, want %v", tt.input, ok, tt.want)
			}
			if !strings.Contains(out.String(), "(y/N)") {
				t.Errorf("prompt not written: %q", out.String())
			}
		})
	}
}

func TestConsoleApprover_ClosedInputRejects(t *testing.T) {
	approver := &ConsoleApprover{In: strings.NewReader(""), Out: io.Discard}
	ok, err := approver.Approve(context.Background(), NewState("task"))
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if ok {
		t.Error("closed input approved, want rejected")
	}
}

func TestConsoleApprover_TimeoutRejects(t *testing.T) {
	// A reader that never produces input.
	pr, pw := io.Pipe()
	defer pw.Close()

	approver := &ConsoleApprover{In: pr, Out: io.Discard, Timeout: 20 * time.Millisecond}
	ok, err := approver.Approve(context.Background(), NewState("task"))
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if ok {
		t.Error("timed-out approval approved, want rejected")
	}
}

func TestConsoleApprover_CancellationAborts(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	approver := &ConsoleApprover{In: pr, Out: io.Discard}
	_, err := approver.Approve(ctx, NewState("task"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Approve() error = %v, want context.Canceled", err)
	}
}
