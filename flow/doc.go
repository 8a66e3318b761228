// Package flow implements a generic, stateful workflow graph engine.
//
// A workflow is a directed graph of named nodes. Each node is a function
// that receives the current state value, transforms it, and returns the
// updated state. Edges are either unconditional (a fixed successor) or
// conditional (a pure router function selects the successor from an
// enumerated set of destinations). A single bounded cycle may be declared
// for retry-style feedback loops; the engine owns the traversal counter
// and forces the loop's exit once the bound is reached, so routers stay
// pure functions of state.
//
// Core types:
//   - Graph[S]: fluent builder (AddNode, AddEdge, AddConditionalEdges,
//     AddCycle, SetEntry, Compile)
//   - Compiled[S]: immutable, validated graph; safe for concurrent runs
//   - Checkpointer[S]: per-step state persistence for resume
//
// Example:
//
//	g, err := flow.NewGraph[MyState]().
//		AddNode("classify", classifyNode).
//		AddNode("work", workNode).
//		AddConditionalEdges("classify", route, "work", flow.End).
//		AddEdge("work", flow.End).
//		SetEntry("classify").
//		Compile()
//	final, err := g.Invoke(ctx, initial, flow.WithRunID("run-1"))
//
// Every run owns an independent state value; the compiled graph is
// read-only and shared across concurrent runs without locking.
package flow
