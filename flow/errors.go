package flow

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by graph construction and execution.
var (
	// ErrNoEntry indicates Compile was called without SetEntry.
	ErrNoEntry = errors.New("no entry node set")

	// ErrUnknownNode indicates an edge references a node that was never added.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDuplicateNode indicates AddNode was called twice with the same name.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrNoRoute indicates execution reached a node with no outgoing edge.
	ErrNoRoute = errors.New("no outgoing edge")

	// ErrMaxSteps indicates the global iteration cap was exceeded.
	ErrMaxSteps = errors.New("iteration cap exceeded")

	// ErrNotFound indicates no checkpoint exists for the run ID.
	ErrNotFound = errors.New("checkpoint not found")
)

// GraphError reports a router decision outside its declared destination
// set. This is a programming error in the graph definition, not a runtime
// condition, and is never retried.
type GraphError struct {
	Node    string   // Node whose router misbehaved
	Got     string   // Destination the router returned
	Allowed []string // Destinations declared for the edge
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	return fmt.Sprintf("router at %q returned %q, allowed: %s",
		e.Node, e.Got, strings.Join(e.Allowed, ", "))
}

// NodeError wraps a failure from a node's execution with its position in
// the graph. The engine aborts the run and surfaces the partial state.
type NodeError struct {
	Node string // Node that failed
	Step int    // Zero-based engine iteration
	Err  error  // Underlying failure
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return fmt.Sprintf("node %q (step %d): %v", e.Node, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *NodeError) Unwrap() error {
	return e.Err
}
