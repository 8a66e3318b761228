package reviewflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/reviewflow/flow"
)

// NodeFunc is the signature shared by all workflow nodes.
type NodeFunc = flow.NodeFunc[State]

// WithTiming wraps a node with timing metrics.
func WithTiming(node NodeFunc, name string) NodeFunc {
	return func(ctx context.Context, state State) (State, error) {
		start := time.Now()
		result, err := node(ctx, state)
		duration := time.Since(start)
		if err != nil {
			slog.Debug("node failed", "node", name, "runId", state.RunID, "duration", duration, "error", err)
		} else {
			slog.Debug("node completed", "node", name, "runId", state.RunID, "duration", duration)
		}
		return result, err
	}
}
