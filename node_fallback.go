package reviewflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/reviewflow/llm"
)

// FallbackNode handles tasks the orchestrator could not classify with a
// generic assistant response. It writes DocumentedCode so downstream
// consumers see a uniform final-text field regardless of path taken.
//
// Updates: state.DocumentedCode
func FallbackNode(ctx context.Context, state State) (State, error) {
	client := LLMFromContext(ctx)
	if client == nil {
		return state, ErrNoLLMClient
	}
	loader := PromptLoaderFromContext(ctx)
	if loader == nil {
		return state, ErrNoPromptLoader
	}

	system, err := loader.Render("fallback", promptVars{})
	if err != nil {
		return state, err
	}

	result, err := client.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: system,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: "Task: " + state.Task}},
	})
	if err != nil {
		state.SetError(err)
		return state, fmt.Errorf("fallback response: %w", err)
	}

	state.DocumentedCode = strings.TrimSpace(result.Content)
	state.AddTokens(result.Usage.InputTokens, result.Usage.OutputTokens)

	return state, nil
}
