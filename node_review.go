package reviewflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/reviewflow/llm"
)

// ReviewNode reviews the generated code for errors, inefficiencies, and
// security flaws. The feedback feeds the retry router: trouble keywords
// send the code back for another generation pass.
//
// Updates: state.ReviewFeedback (latest value only)
func ReviewNode(ctx context.Context, state State) (State, error) {
	client := LLMFromContext(ctx)
	if client == nil {
		return state, ErrNoLLMClient
	}
	loader := PromptLoaderFromContext(ctx)
	if loader == nil {
		return state, ErrNoPromptLoader
	}

	system, err := loader.Render("review", promptVars{Code: state.GeneratedCode})
	if err != nil {
		return state, err
	}

	result, err := client.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: system,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: "Review the code above"}},
	})
	if err != nil {
		state.SetError(err)
		return state, fmt.Errorf("review code: %w", err)
	}

	state.ReviewFeedback = strings.TrimSpace(result.Content)
	state.AddTokens(result.Usage.InputTokens, result.Usage.OutputTokens)

	return state, nil
}
