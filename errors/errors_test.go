package errors

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/randalmurphal/reviewflow/config"
	"github.com/randalmurphal/reviewflow/flow"
	"github.com/randalmurphal/reviewflow/llm"
)

func TestCLIError(t *testing.T) {
	cause := stderrors.New("cause")
	err := &CLIError{Err: cause, Message: "It broke.", Suggestion: "Try again."}

	if !strings.Contains(err.Error(), "It broke.") || !strings.Contains(err.Error(), "Try again.") {
		t.Errorf("Error() = %q, want message and suggestion", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("CLIError does not unwrap to its cause")
	}
}

func TestFriendly(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		suggestion string
	}{
		{"missing key", config.ErrNoAPIKey, "OPENAI_API_KEY"},
		{"missing openai key", llm.ErrNoAPIKey, "OPENAI_API_KEY"},
		{"unknown run", flow.ErrNotFound, "reviewflow status"},
		{"auth failure", &llm.Error{Kind: llm.KindAuth, Message: "nope"}, "OPENAI_API_KEY"},
		{"rate limited", &llm.Error{Kind: llm.KindRateLimit, Message: "slow"}, "REVIEWFLOW_MAX_CONCURRENT"},
		{"network", &llm.Error{Kind: llm.KindNetwork, Message: "down"}, "OPENAI_BASE_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Friendly(tt.err)
			var cliErr *CLIError
			if !stderrors.As(got, &cliErr) {
				t.Fatalf("Friendly() = %v, want *CLIError", got)
			}
			if !strings.Contains(cliErr.Suggestion, tt.suggestion) {
				t.Errorf("Suggestion = %q, want mention of %q", cliErr.Suggestion, tt.suggestion)
			}
			if !stderrors.Is(got, tt.err) {
				t.Error("Friendly() result does not unwrap to the original error")
			}
		})
	}
}

func TestFriendly_PassThrough(t *testing.T) {
	plain := stderrors.New("something odd")
	if got := Friendly(plain); got != plain {
		t.Errorf("Friendly(plain) = %v, want unchanged", got)
	}
	if got := Friendly(nil); got != nil {
		t.Errorf("Friendly(nil) = %v, want nil", got)
	}
}
