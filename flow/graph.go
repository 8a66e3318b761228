package flow

import (
	"context"
	"fmt"
	"slices"
)

// End is the terminal marker. Routing to End completes the run.
const End = "__end__"

// NodeFunc processes state and returns the updated state. State ownership
// transfers to the node for the duration of the call and back to the
// engine afterward; nodes must not retain references past return.
type NodeFunc[S any] func(ctx context.Context, state S) (S, error)

// RouterFunc selects the next node at a conditional edge. Routers must be
// pure functions of state: no side effects, no retained counters. Loop
// bounding is the engine's job, not the router's.
type RouterFunc[S any] func(state S) string

// conditional is a router bound to its enumerated destination set.
type conditional[S any] struct {
	router  RouterFunc[S]
	targets []string
}

// cycle is the single designed feedback loop: from `from`, the router may
// send execution back to `retry` a bounded number of times before the
// engine forces `proceed`.
type cycle[S any] struct {
	router  RouterFunc[S]
	retry   string
	proceed string
}

// Graph is a fluent builder for workflow graphs. Build errors are
// collected and reported by Compile so call chains stay readable.
type Graph[S any] struct {
	nodes        map[string]NodeFunc[S]
	order        []string // insertion order, for deterministic validation output
	edges        map[string]string
	conditionals map[string]*conditional[S]
	cycles       map[string]*cycle[S]
	entry        string
	onRetry      func(S, int) S
	errs         []error
}

// NewGraph creates an empty graph builder for state type S.
func NewGraph[S any]() *Graph[S] {
	return &Graph[S]{
		nodes:        make(map[string]NodeFunc[S]),
		edges:        make(map[string]string),
		conditionals: make(map[string]*conditional[S]),
		cycles:       make(map[string]*cycle[S]),
	}
}

// AddNode registers a named node.
func (g *Graph[S]) AddNode(name string, fn NodeFunc[S]) *Graph[S] {
	if name == End {
		g.errs = append(g.errs, fmt.Errorf("node name %q is reserved", End))
		return g
	}
	if _, exists := g.nodes[name]; exists {
		g.errs = append(g.errs, fmt.Errorf("%w: %s", ErrDuplicateNode, name))
		return g
	}
	g.nodes[name] = fn
	g.order = append(g.order, name)
	return g
}

// AddEdge adds an unconditional edge from one node to another (or to End).
func (g *Graph[S]) AddEdge(from, to string) *Graph[S] {
	g.edges[from] = to
	return g
}

// AddConditionalEdges adds a routed edge. At runtime the router is
// evaluated against current state and its result must be one of targets;
// anything else is a *GraphError.
func (g *Graph[S]) AddConditionalEdges(from string, router RouterFunc[S], targets ...string) *Graph[S] {
	g.conditionals[from] = &conditional[S]{router: router, targets: targets}
	return g
}

// AddCycle adds the bounded feedback edge. The router picks between
// looping back to retry and proceeding to proceed. The engine counts
// traversals to retry per run and overrides the router's decision with
// proceed once the run's retry budget is spent, guaranteeing termination
// regardless of router behavior.
func (g *Graph[S]) AddCycle(from string, router RouterFunc[S], retry, proceed string) *Graph[S] {
	g.cycles[from] = &cycle[S]{router: router, retry: retry, proceed: proceed}
	return g
}

// OnRetry registers a hook invoked each time the cycle edge loops back,
// with the new traversal count. Use it to record the count in state.
func (g *Graph[S]) OnRetry(fn func(state S, count int) S) *Graph[S] {
	g.onRetry = fn
	return g
}

// SetEntry sets the node where execution starts.
func (g *Graph[S]) SetEntry(name string) *Graph[S] {
	g.entry = name
	return g
}

// Compile validates the topology and returns an immutable executable
// graph. Validation catches dangling edges, missing entry, nodes with no
// outgoing edge, and out-of-graph conditional targets at build time so
// they cannot surface mid-run.
func (g *Graph[S]) Compile() (*Compiled[S], error) {
	if len(g.errs) > 0 {
		return nil, g.errs[0]
	}
	if g.entry == "" {
		return nil, ErrNoEntry
	}
	if _, ok := g.nodes[g.entry]; !ok {
		return nil, fmt.Errorf("%w: entry %q", ErrUnknownNode, g.entry)
	}

	known := func(name string) bool {
		if name == End {
			return true
		}
		_, ok := g.nodes[name]
		return ok
	}

	for from, to := range g.edges {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("%w: edge from %q", ErrUnknownNode, from)
		}
		if !known(to) {
			return nil, fmt.Errorf("%w: edge %q -> %q", ErrUnknownNode, from, to)
		}
	}
	for from, c := range g.conditionals {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("%w: conditional edge from %q", ErrUnknownNode, from)
		}
		if len(c.targets) == 0 {
			return nil, fmt.Errorf("conditional edge from %q has no targets", from)
		}
		for _, t := range c.targets {
			if !known(t) {
				return nil, fmt.Errorf("%w: conditional target %q -> %q", ErrUnknownNode, from, t)
			}
		}
	}
	for from, c := range g.cycles {
		if _, ok := g.nodes[from]; !ok {
			return nil, fmt.Errorf("%w: cycle edge from %q", ErrUnknownNode, from)
		}
		if !known(c.retry) || !known(c.proceed) {
			return nil, fmt.Errorf("%w: cycle %q -> {%q, %q}", ErrUnknownNode, from, c.retry, c.proceed)
		}
	}

	// Every node needs exactly one kind of outgoing edge.
	for _, name := range g.order {
		_, hasEdge := g.edges[name]
		_, hasCond := g.conditionals[name]
		_, hasCycle := g.cycles[name]
		switch {
		case !hasEdge && !hasCond && !hasCycle:
			return nil, fmt.Errorf("%w: node %q", ErrNoRoute, name)
		case hasEdge && hasCond, hasEdge && hasCycle, hasCond && hasCycle:
			return nil, fmt.Errorf("node %q has conflicting outgoing edges", name)
		}
	}

	return &Compiled[S]{
		nodes:        g.nodes,
		edges:        g.edges,
		conditionals: g.conditionals,
		cycles:       g.cycles,
		entry:        g.entry,
		onRetry:      g.onRetry,
		nodeNames:    slices.Clone(g.order),
	}, nil
}
