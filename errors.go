package reviewflow

import (
	"errors"
	"fmt"
)

// Workflow errors.
var (
	// ErrEmptyTask indicates a run was started without a task description.
	ErrEmptyTask = errors.New("task description is empty")

	// ErrNoLLMClient indicates no generation client was found in context.
	ErrNoLLMClient = errors.New("llm.Client not found in context")

	// ErrNoPromptLoader indicates no prompt loader was found in context.
	ErrNoPromptLoader = errors.New("PromptLoader not found in context")
)

// RunError wraps a failed run for the caller. State carries whatever
// fields were populated before the failure, so partial progress stays
// inspectable.
type RunError struct {
	RunID string
	State State
	Err   error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("run %s failed: %v", e.RunID, e.Err)
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	return e.Err
}
