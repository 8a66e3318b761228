package reviewflow

import "strings"

// Node names in the workflow graph.
const (
	NodeOrchestrate  = "orchestrate"
	NodeGenerate     = "generate"
	NodeReview       = "review"
	NodeDocument     = "document"
	NodeFallback     = "fallback"
	NodeApprovalGate = "approval-gate"
)

// RetryKeywords are the trouble indicators that send reviewed code back
// for another generation pass. Matched case-insensitively.
var RetryKeywords = []string{"error", "fix"}

// DecisionRouter routes the orchestrator's classification to the agent
// node. Anything outside the known decisions lands on the fallback node.
func DecisionRouter(state State) string {
	switch state.Decision {
	case DecisionGenerate:
		return NodeGenerate
	case DecisionReview:
		return NodeReview
	case DecisionDocument:
		return NodeDocument
	default:
		return NodeFallback
	}
}

// NeedsRetry reports whether the review feedback contains a trouble
// indicator. Unset feedback never triggers a retry.
func NeedsRetry(state State) bool {
	fb := strings.ToLower(state.ReviewFeedback)
	if fb == "" {
		return false
	}
	for _, kw := range RetryKeywords {
		if strings.Contains(fb, kw) {
			return true
		}
	}
	return false
}

// ReviewRouter decides between another generation pass and proceeding to
// documentation. It is a pure function of state; the retry bound is
// enforced by the engine, not here.
func ReviewRouter(state State) string {
	if NeedsRetry(state) {
		return NodeGenerate
	}
	return NodeDocument
}
