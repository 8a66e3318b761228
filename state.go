package reviewflow

import (
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Decision is the orchestrator's classification of a task. It is a
// closed enumeration: arbitrary classifier text never crosses this
// boundary, it is normalized by ParseDecision first.
type Decision string

// Routing decisions.
const (
	DecisionGenerate Decision = "GENERATE"
	DecisionReview   Decision = "REVIEW"
	DecisionDocument Decision = "DOCUMENT"
	DecisionUnknown  Decision = "UNKNOWN"
)

// ParseDecision normalizes raw classifier output into a Decision.
// Whitespace and trailing punctuation are stripped and the result is
// upper-cased; anything that is not an exact enum member, including
// empty text, becomes DecisionUnknown.
func ParseDecision(raw string) Decision {
	cleaned := strings.ToUpper(strings.Trim(strings.TrimSpace(raw), ".!:"))
	switch Decision(cleaned) {
	case DecisionGenerate, DecisionReview, DecisionDocument:
		return Decision(cleaned)
	default:
		return DecisionUnknown
	}
}

// ApprovalStatus is the approval gate's outcome.
type ApprovalStatus string

// Approval outcomes.
const (
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// State is the workflow state threaded through the graph. Each run owns
// an independent copy; exactly one node mutates it per iteration. JSON
// field names are the stable checkpoint format.
type State struct {
	// RunID identifies the run across checkpoints and notifications.
	RunID string `json:"runId"`

	// Task is the caller's task description. Immutable after creation.
	Task string `json:"taskDescription"`

	// Decision is set once by the orchestrator step.
	Decision Decision `json:"routingDecision,omitempty"`

	// GeneratedCode is overwritten on each generation pass.
	GeneratedCode string `json:"generatedArtifact,omitempty"`

	// ReviewFeedback holds the latest review output.
	ReviewFeedback string `json:"reviewFeedback,omitempty"`

	// DocumentedCode is the final deliverable, written by the
	// documentation step or the fallback step.
	DocumentedCode string `json:"documentedArtifact,omitempty"`

	// ApprovalStatus is set only by the approval gate.
	ApprovalStatus ApprovalStatus `json:"approvalStatus,omitempty"`

	// RetryCount tracks review->generation traversals. Owned by the
	// engine, not by steps.
	RetryCount int `json:"retryCount,omitempty"`

	// Metrics
	StartTime      time.Time `json:"startedAt"`
	TotalTokensIn  int       `json:"totalTokensIn,omitempty"`
	TotalTokensOut int       `json:"totalTokensOut,omitempty"`

	// Error tracking
	Error string `json:"error,omitempty"`
}

// NewState creates the state for a new run.
func NewState(task string) State {
	return State{
		RunID:     generateRunID(),
		Task:      task,
		StartTime: time.Now(),
	}
}

// WithRunID sets a custom run ID.
func (s State) WithRunID(runID string) State {
	s.RunID = runID
	return s
}

// Validate checks the state can start a run.
func (s State) Validate() error {
	if strings.TrimSpace(s.Task) == "" {
		return ErrEmptyTask
	}
	return nil
}

// AddTokens accumulates token usage.
func (s *State) AddTokens(in, out int) {
	s.TotalTokensIn += in
	s.TotalTokensOut += out
}

// SetError records an error on the state.
func (s *State) SetError(err error) {
	if err != nil {
		s.Error = err.Error()
	}
}

// HasError returns true if the state carries an error.
func (s State) HasError() bool {
	return s.Error != ""
}

// FinalText returns the run's deliverable: documented code when present,
// otherwise the last generated code.
func (s State) FinalText() string {
	if s.DocumentedCode != "" {
		return s.DocumentedCode
	}
	return s.GeneratedCode
}

// generateRunID creates a unique run ID.
func generateRunID() string {
	return "run-" + gonanoid.Must(10)
}
