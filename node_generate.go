package reviewflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/reviewflow/llm"
)

// GenerateNode writes code for the task. On a retry pass the previous
// review feedback is included so the next attempt can address it.
//
// Updates: state.GeneratedCode (overwritten on each pass)
func GenerateNode(ctx context.Context, state State) (State, error) {
	client := LLMFromContext(ctx)
	if client == nil {
		return state, ErrNoLLMClient
	}
	loader := PromptLoaderFromContext(ctx)
	if loader == nil {
		return state, ErrNoPromptLoader
	}

	system, err := loader.Render("generate", promptVars{Task: state.Task})
	if err != nil {
		return state, err
	}

	userText := state.Task
	if state.RetryCount > 0 && state.ReviewFeedback != "" {
		userText = fmt.Sprintf("%s\n\nAddress this review feedback:\n%s", state.Task, state.ReviewFeedback)
	}

	result, err := client.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: system,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: userText}},
	})
	if err != nil {
		state.SetError(err)
		return state, fmt.Errorf("generate code: %w", err)
	}

	state.GeneratedCode = strings.TrimSpace(result.Content)
	state.AddTokens(result.Usage.InputTokens, result.Usage.OutputTokens)

	return state, nil
}
