package reviewflow

import "testing"

func TestDecisionRouter(t *testing.T) {
	tests := []struct {
		decision Decision
		want     string
	}{
		{DecisionGenerate, NodeGenerate},
		{DecisionReview, NodeReview},
		{DecisionDocument, NodeDocument},
		{DecisionUnknown, NodeFallback},
		{Decision(""), NodeFallback},
		{Decision("NONSENSE"), NodeFallback},
	}

	for _, tt := range tests {
		t.Run(string(tt.decision), func(t *testing.T) {
			got := DecisionRouter(State{Decision: tt.decision})
			if got != tt.want {
				t.Errorf("DecisionRouter(%s) = %s, want %s", tt.decision, got, tt.want)
			}
		})
	}
}

func TestNeedsRetry(t *testing.T) {
	tests := []struct {
		name     string
		feedback string
		want     bool
	}{
		{"empty", "", false},
		{"clean", "Looks good, well structured.", false},
		{"error lowercase", "there is an error on line 3", true},
		{"error uppercase", "ERROR: nil dereference", true},
		{"fix", "please fix the loop bounds", true},
		{"Fix capitalized", "Fix the off-by-one", true},
		{"keyword inside word", "the prefix handling is fine", true},
		{"unrelated praise", "idiomatic and clean", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NeedsRetry(State{ReviewFeedback: tt.feedback})
			if got != tt.want {
				t.Errorf("NeedsRetry(%q) = %v, want %v", tt.feedback, got, tt.want)
			}
		})
	}
}

func TestReviewRouter(t *testing.T) {
	if got := ReviewRouter(State{ReviewFeedback: "fix the error"}); got != NodeGenerate {
		t.Errorf("ReviewRouter(trouble) = %s, want %s", got, NodeGenerate)
	}
	if got := ReviewRouter(State{ReviewFeedback: "approved, ship it"}); got != NodeDocument {
		t.Errorf("ReviewRouter(clean) = %s, want %s", got, NodeDocument)
	}
	if got := ReviewRouter(State{}); got != NodeDocument {
		t.Errorf("ReviewRouter(empty) = %s, want %s", got, NodeDocument)
	}
}
