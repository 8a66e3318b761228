package reviewflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/reviewflow/llm"
)

// DocumentNode adds comments and a docstring to the generated code,
// producing the run's final deliverable.
//
// Updates: state.DocumentedCode
func DocumentNode(ctx context.Context, state State) (State, error) {
	client := LLMFromContext(ctx)
	if client == nil {
		return state, ErrNoLLMClient
	}
	loader := PromptLoaderFromContext(ctx)
	if loader == nil {
		return state, ErrNoPromptLoader
	}

	system, err := loader.Render("document", promptVars{Code: state.GeneratedCode})
	if err != nil {
		return state, err
	}

	result, err := client.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: system,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: "Document the code"}},
	})
	if err != nil {
		state.SetError(err)
		return state, fmt.Errorf("document code: %w", err)
	}

	state.DocumentedCode = strings.TrimSpace(result.Content)
	state.AddTokens(result.Usage.InputTokens, result.Usage.OutputTokens)

	return state, nil
}
