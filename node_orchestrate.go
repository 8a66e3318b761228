package reviewflow

import (
	"context"
	"fmt"

	"github.com/randalmurphal/reviewflow/llm"
)

// OrchestrateNode classifies the task and records the routing decision.
//
// This is the system's only open-vocabulary boundary: whatever text the
// classifier returns is normalized into the Decision enum, and anything
// unexpected (including empty output) degrades to DecisionUnknown so the
// run takes the fallback path instead of aborting. A transport failure,
// by contrast, is a real service error and aborts the run.
//
// Updates: state.Decision
func OrchestrateNode(ctx context.Context, state State) (State, error) {
	client := LLMFromContext(ctx)
	if client == nil {
		return state, ErrNoLLMClient
	}
	loader := PromptLoaderFromContext(ctx)
	if loader == nil {
		return state, ErrNoPromptLoader
	}

	system, err := loader.Render("orchestrate", promptVars{})
	if err != nil {
		return state, err
	}

	result, err := client.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: system,
		Messages:     []llm.Message{{Role: llm.RoleUser, Content: state.Task}},
	})
	if err != nil {
		state.SetError(err)
		return state, fmt.Errorf("classify task: %w", err)
	}

	state.Decision = ParseDecision(result.Content)
	state.AddTokens(result.Usage.InputTokens, result.Usage.OutputTokens)

	return state, nil
}
