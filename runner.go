package reviewflow

import (
	"context"
	"os"
	"time"

	"github.com/randalmurphal/reviewflow/config"
	"github.com/randalmurphal/reviewflow/flow"
	"github.com/randalmurphal/reviewflow/llm"
	"github.com/randalmurphal/reviewflow/notify"
)

// Result is a completed run's outcome, one field per workflow product.
type Result struct {
	RunID          string         `json:"runId"`
	Decision       Decision       `json:"decision"`
	GeneratedCode  string         `json:"generatedCode,omitempty"`
	ReviewFeedback string         `json:"reviewFeedback,omitempty"`
	DocumentedCode string         `json:"documentedCode,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus,omitempty"`
	Retries        int            `json:"retries"`
	TokensIn       int            `json:"tokensIn"`
	TokensOut      int            `json:"tokensOut"`
	Duration       time.Duration  `json:"duration"`
}

func resultFromState(state State) *Result {
	return &Result{
		RunID:          state.RunID,
		Decision:       state.Decision,
		GeneratedCode:  state.GeneratedCode,
		ReviewFeedback: state.ReviewFeedback,
		DocumentedCode: state.DocumentedCode,
		ApprovalStatus: state.ApprovalStatus,
		Retries:        state.RetryCount,
		TokensIn:       state.TotalTokensIn,
		TokensOut:      state.TotalTokensOut,
		Duration:       time.Since(state.StartTime),
	}
}

// Runner wires the workflow graph to a generation client, checkpoint
// store, and notifier, and drives runs end to end. A Runner is safe for
// concurrent use; each Run is an independent state machine.
type Runner struct {
	cfg      config.Config
	client   llm.Client
	saver    flow.Checkpointer[State]
	notifier notify.Notifier
	prompts  *PromptLoader
	approver Approver
	graph    *flow.Compiled[State]
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithClient overrides the generation client (for tests and custom
// providers). The concurrency cap is not applied to injected clients.
func WithClient(client llm.Client) RunnerOption {
	return func(r *Runner) { r.client = client }
}

// WithCheckpointer overrides the checkpoint store.
func WithCheckpointer(saver flow.Checkpointer[State]) RunnerOption {
	return func(r *Runner) { r.saver = saver }
}

// WithNotifier sets a notification sink for run completion events.
func WithNotifier(n notify.Notifier) RunnerOption {
	return func(r *Runner) { r.notifier = n }
}

// WithPrompts overrides the prompt loader.
func WithPrompts(loader *PromptLoader) RunnerOption {
	return func(r *Runner) { r.prompts = loader }
}

// WithRunApprover overrides the approver used in interactive mode.
func WithRunApprover(a Approver) RunnerOption {
	return func(r *Runner) { r.approver = a }
}

// NewRunner creates a Runner from config. Unless overridden, the
// generation client is the OpenAI client capped at cfg.MaxConcurrent
// in-flight calls, and checkpoints go to an in-memory store.
func NewRunner(cfg config.Config, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		cfg:     cfg,
		prompts: NewPromptLoader(""),
		saver:   flow.NewMemorySaver[State](),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.client == nil {
		client, err := llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		r.client = llm.WithConcurrencyLimit(client, cfg.MaxConcurrent)
	}

	graph, err := BuildGraph()
	if err != nil {
		return nil, err
	}
	r.graph = graph

	return r, nil
}

// BuildGraph constructs the workflow topology:
//
//	orchestrate -(decision)-> generate | review | document | fallback
//	generate -> review
//	review -(feedback)-> generate (bounded cycle) | document
//	document -> approval-gate -> end
//	fallback -> end
func BuildGraph() (*flow.Compiled[State], error) {
	return flow.NewGraph[State]().
		AddNode(NodeOrchestrate, WithTiming(OrchestrateNode, NodeOrchestrate)).
		AddNode(NodeGenerate, WithTiming(GenerateNode, NodeGenerate)).
		AddNode(NodeReview, WithTiming(ReviewNode, NodeReview)).
		AddNode(NodeDocument, WithTiming(DocumentNode, NodeDocument)).
		AddNode(NodeFallback, WithTiming(FallbackNode, NodeFallback)).
		AddNode(NodeApprovalGate, ApprovalGateNode).
		SetEntry(NodeOrchestrate).
		AddConditionalEdges(NodeOrchestrate, DecisionRouter,
			NodeGenerate, NodeReview, NodeDocument, NodeFallback).
		AddEdge(NodeGenerate, NodeReview).
		AddCycle(NodeReview, ReviewRouter, NodeGenerate, NodeDocument).
		AddEdge(NodeDocument, NodeApprovalGate).
		AddEdge(NodeApprovalGate, flow.End).
		AddEdge(NodeFallback, flow.End).
		OnRetry(func(s State, count int) State {
			s.RetryCount = count
			return s
		}).
		Compile()
}

// Run executes the workflow for a task. On failure the returned error is
// a *RunError carrying the partially-populated state.
func (r *Runner) Run(ctx context.Context, task string) (*Result, error) {
	state := NewState(task)
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return r.execute(ctx, state, false)
}

// Resume continues an interrupted run from its last checkpoint.
func (r *Runner) Resume(ctx context.Context, runID string) (*Result, error) {
	return r.execute(ctx, State{RunID: runID}, true)
}

func (r *Runner) execute(ctx context.Context, state State, resume bool) (*Result, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	ctx = WithLLMClient(ctx, r.client)
	ctx = WithPromptLoader(ctx, r.prompts)
	if r.notifier != nil {
		ctx = notify.WithNotifier(ctx, r.notifier)
	}
	if r.cfg.Interactive {
		approver := r.approver
		if approver == nil {
			approver = defaultConsoleApprover(r.cfg.ApprovalTimeout)
		}
		ctx = WithApprover(ctx, approver)
	}

	opts := []flow.Option[State]{
		flow.WithRunID[State](state.RunID),
		flow.WithCheckpointer[State](r.saver),
		flow.WithMaxRetries[State](r.cfg.MaxRetries),
		// Each retry revisits two nodes, so grow the safety cap with
		// the retry budget.
		flow.WithMaxSteps[State](2*6 + 2*r.cfg.MaxRetries),
	}

	var (
		final State
		err   error
	)
	if resume {
		final, err = r.graph.Resume(ctx, state.RunID, opts...)
	} else {
		final, err = r.graph.Invoke(ctx, state, opts...)
	}

	if err != nil {
		r.sendEvent(ctx, final, err)
		return nil, &RunError{RunID: state.RunID, State: final, Err: err}
	}

	r.sendEvent(ctx, final, nil)
	return resultFromState(final), nil
}

// sendEvent notifies the configured sink about run completion. A failed
// notification never fails the run.
func (r *Runner) sendEvent(ctx context.Context, state State, runErr error) {
	if r.notifier == nil {
		return
	}

	event := notify.Event{
		RunID:     state.RunID,
		Decision:  string(state.Decision),
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"retries":   state.RetryCount,
			"tokensIn":  state.TotalTokensIn,
			"tokensOut": state.TotalTokensOut,
		},
	}

	switch {
	case runErr != nil:
		event.Type = notify.EventRunFailed
		event.Severity = notify.SeverityError
		event.Message = runErr.Error()
	case state.ApprovalStatus == ApprovalRejected:
		event.Type = notify.EventRunRejected
		event.Severity = notify.SeverityWarning
		event.Message = "deliverable rejected at approval gate"
	default:
		event.Type = notify.EventRunCompleted
		event.Severity = notify.SeverityInfo
		event.Message = "run completed"
	}

	_ = r.notifier.Notify(ctx, event)
}

func defaultConsoleApprover(timeout time.Duration) Approver {
	return &ConsoleApprover{In: os.Stdin, Out: os.Stderr, Timeout: timeout}
}
