package errors

import (
	"errors"
	"strings"

	"github.com/randalmurphal/reviewflow/config"
	"github.com/randalmurphal/reviewflow/flow"
	"github.com/randalmurphal/reviewflow/llm"
)

// CLIError wraps an error with user-friendly context and a suggestion.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// Friendly converts err into a CLIError with a suggestion when the
// failure has a known remedy. Unknown errors pass through unchanged.
func Friendly(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, config.ErrNoAPIKey) || errors.Is(err, llm.ErrNoAPIKey) {
		return &CLIError{
			Err:        err,
			Message:    "No API credential is configured.",
			Suggestion: "Set OPENAI_API_KEY in your environment or shell profile.",
		}
	}

	if errors.Is(err, flow.ErrNotFound) {
		return &CLIError{
			Err:        err,
			Message:    "No checkpoint exists for that run.",
			Suggestion: "Run `reviewflow status` to list known runs.",
		}
	}

	var svcErr *llm.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case llm.KindAuth:
			return &CLIError{
				Err:        err,
				Message:    "The generation service rejected your credentials.",
				Suggestion: "Check that OPENAI_API_KEY is valid and has not expired.",
			}
		case llm.KindRateLimit:
			return &CLIError{
				Err:        err,
				Message:    "The generation service is rate limiting requests.",
				Suggestion: "Wait a moment and retry, or lower REVIEWFLOW_MAX_CONCURRENT.",
			}
		case llm.KindNetwork:
			return &CLIError{
				Err:        err,
				Message:    "Could not reach the generation service.",
				Suggestion: "Check your network connection and OPENAI_BASE_URL.",
			}
		}
	}

	return err
}
