// Package reviewflow coordinates AI code-assistant steps (generation,
// review, documentation, fallback) through a stateful workflow graph.
//
// An orchestrator step classifies the incoming task and routes it to the
// matching agent step. Generated code flows through a review step whose
// feedback can send it back for another pass, bounded by a configurable
// retry budget. Documented output passes an approval gate that can pause
// for a human decision. Every step is checkpointed so interrupted runs
// can be resumed.
//
// The graph machinery itself lives in the flow package; this package
// supplies the state, routers, prompts, and step implementations, plus
// the Runner that wires them to a generation client and checkpoint
// store.
//
// Example:
//
//	cfg, _ := config.Load()
//	runner, err := reviewflow.NewRunner(cfg)
//	if err != nil { ... }
//	result, err := runner.Run(ctx, "Create a function to validate email addresses")
package reviewflow
