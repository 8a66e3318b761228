package flow

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultMaxRetries bounds the cycle edge when no override is given.
const DefaultMaxRetries = 3

// Compiled is a validated, immutable workflow graph. It is safe for
// concurrent use: each Invoke call is an independent run with its own
// state value, and the topology is never mutated after Compile.
type Compiled[S any] struct {
	nodes        map[string]NodeFunc[S]
	edges        map[string]string
	conditionals map[string]*conditional[S]
	cycles       map[string]*cycle[S]
	entry        string
	onRetry      func(S, int) S
	nodeNames    []string
}

// Option configures a single run.
type Option[S any] func(*runOptions[S])

type runOptions[S any] struct {
	runID      string
	saver      Checkpointer[S]
	maxRetries int
	maxSteps   int
}

// WithRunID sets the run identifier used for checkpoints. A random ID is
// generated when unset.
func WithRunID[S any](runID string) Option[S] {
	return func(o *runOptions[S]) { o.runID = runID }
}

// WithCheckpointer enables per-step state persistence for the run.
func WithCheckpointer[S any](saver Checkpointer[S]) Option[S] {
	return func(o *runOptions[S]) { o.saver = saver }
}

// WithMaxRetries overrides the cycle-edge retry budget for the run.
func WithMaxRetries[S any](n int) Option[S] {
	return func(o *runOptions[S]) { o.maxRetries = n }
}

// WithMaxSteps overrides the global iteration cap. The default is twice
// the node count, a final safety bound against misconfigured topologies.
func WithMaxSteps[S any](n int) Option[S] {
	return func(o *runOptions[S]) { o.maxSteps = n }
}

func (c *Compiled[S]) buildOptions(opts []Option[S]) *runOptions[S] {
	o := &runOptions[S]{maxRetries: DefaultMaxRetries}
	for _, opt := range opts {
		opt(o)
	}
	if o.runID == "" {
		o.runID = "run-" + gonanoid.Must(10)
	}
	if o.maxSteps <= 0 {
		o.maxSteps = 2 * len(c.nodes)
	}
	return o
}

// NodeNames returns the node names in registration order.
func (c *Compiled[S]) NodeNames() []string {
	return slices.Clone(c.nodeNames)
}

// Invoke executes one run from the entry node until End, an error, or the
// iteration cap. On failure the state accumulated so far is returned
// alongside the error so callers can inspect partial progress.
func (c *Compiled[S]) Invoke(ctx context.Context, state S, opts ...Option[S]) (S, error) {
	o := c.buildOptions(opts)
	return c.run(ctx, o, state, c.entry, 0)
}

// Resume continues an interrupted run from its last checkpoint. The
// checkpointer must be supplied via WithCheckpointer; ErrNotFound is
// returned when no checkpoint exists for runID.
func (c *Compiled[S]) Resume(ctx context.Context, runID string, opts ...Option[S]) (S, error) {
	o := c.buildOptions(opts)
	o.runID = runID

	var zero S
	if o.saver == nil {
		return zero, fmt.Errorf("resume %s: no checkpointer configured", runID)
	}
	cp, err := o.saver.Load(ctx, runID)
	if err != nil {
		return zero, fmt.Errorf("resume %s: %w", runID, err)
	}
	if cp.Next == End {
		return cp.State, nil
	}
	return c.run(ctx, o, cp.State, cp.Next, cp.Retries)
}

func (c *Compiled[S]) run(ctx context.Context, o *runOptions[S], state S, current string, retries int) (S, error) {
	for step := 0; ; step++ {
		if step >= o.maxSteps {
			return state, fmt.Errorf("run %s: %w (%d)", o.runID, ErrMaxSteps, o.maxSteps)
		}
		// Checkpoints are the natural cancellation points; an in-flight
		// node observes ctx itself.
		if err := ctx.Err(); err != nil {
			return state, err
		}

		fn, ok := c.nodes[current]
		if !ok {
			return state, fmt.Errorf("run %s: %w: %s", o.runID, ErrUnknownNode, current)
		}

		slog.Debug("executing node", "runId", o.runID, "node", current, "step", step)
		result, err := fn(ctx, state)
		if err != nil {
			return result, &NodeError{Node: current, Step: step, Err: err}
		}
		state = result

		next, err := c.resolveNext(current, &state, &retries, o.maxRetries)
		if err != nil {
			return state, err
		}

		if o.saver != nil {
			cp := Checkpoint[S]{
				RunID:     o.runID,
				Step:      current,
				Next:      next,
				Retries:   retries,
				State:     state,
				UpdatedAt: time.Now(),
			}
			if err := o.saver.Save(ctx, cp); err != nil {
				return state, fmt.Errorf("checkpoint %s after %s: %w", o.runID, current, err)
			}
		}

		if next == End {
			slog.Debug("run complete", "runId", o.runID, "steps", step+1)
			return state, nil
		}
		current = next
	}
}

// resolveNext picks the successor of current. For the cycle edge it
// enforces the retry budget: once retries reaches the budget the router's
// decision to loop is overridden with the proceed target. The counter
// lives here, in the engine, so routers remain pure and the termination
// guarantee is centralized.
func (c *Compiled[S]) resolveNext(current string, state *S, retries *int, maxRetries int) (string, error) {
	if to, ok := c.edges[current]; ok {
		return to, nil
	}

	if cond, ok := c.conditionals[current]; ok {
		got := cond.router(*state)
		if !slices.Contains(cond.targets, got) {
			return "", &GraphError{Node: current, Got: got, Allowed: cond.targets}
		}
		return got, nil
	}

	if cyc, ok := c.cycles[current]; ok {
		got := cyc.router(*state)
		switch got {
		case cyc.retry:
			if *retries >= maxRetries {
				slog.Debug("retry budget spent, forcing exit",
					"node", current, "retries", *retries, "proceed", cyc.proceed)
				return cyc.proceed, nil
			}
			*retries++
			if c.onRetry != nil {
				*state = c.onRetry(*state, *retries)
			}
			return cyc.retry, nil
		case cyc.proceed:
			return cyc.proceed, nil
		default:
			return "", &GraphError{Node: current, Got: got, Allowed: []string{cyc.retry, cyc.proceed}}
		}
	}

	return "", fmt.Errorf("%w: node %q", ErrNoRoute, current)
}
