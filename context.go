package reviewflow

import (
	"context"

	"github.com/randalmurphal/reviewflow/llm"
)

// Context injection helpers. Collaborators (generation client, prompt
// loader, approver) are injected into context.Context so nodes stay
// plain functions over state.

// serviceContextKey is a private type for context keys to avoid collisions.
type serviceContextKey string

const (
	llmServiceKey      serviceContextKey = "reviewflow.llm"
	promptServiceKey   serviceContextKey = "reviewflow.prompts"
	approverServiceKey serviceContextKey = "reviewflow.approver"
)

// WithLLMClient adds a generation client to the context.
func WithLLMClient(ctx context.Context, client llm.Client) context.Context {
	return context.WithValue(ctx, llmServiceKey, client)
}

// LLMFromContext extracts the generation client from context.
// Returns nil if none is configured.
func LLMFromContext(ctx context.Context) llm.Client {
	if client, ok := ctx.Value(llmServiceKey).(llm.Client); ok {
		return client
	}
	return nil
}

// WithPromptLoader adds a PromptLoader to the context.
func WithPromptLoader(ctx context.Context, loader *PromptLoader) context.Context {
	return context.WithValue(ctx, promptServiceKey, loader)
}

// PromptLoaderFromContext extracts the PromptLoader from context.
// Returns nil if none is configured.
func PromptLoaderFromContext(ctx context.Context) *PromptLoader {
	if loader, ok := ctx.Value(promptServiceKey).(*PromptLoader); ok {
		return loader
	}
	return nil
}

// WithApprover adds an Approver to the context.
func WithApprover(ctx context.Context, approver Approver) context.Context {
	return context.WithValue(ctx, approverServiceKey, approver)
}

// ApproverFromContext extracts the Approver from context.
// Returns nil if none is configured.
func ApproverFromContext(ctx context.Context) Approver {
	if approver, ok := ctx.Value(approverServiceKey).(Approver); ok {
		return approver
	}
	return nil
}
