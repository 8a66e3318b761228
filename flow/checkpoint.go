package flow

import (
	"context"
	"slices"
	"sync"
	"time"
)

// Checkpoint is a durable snapshot of a run taken after each completed
// node. Next names the node the run will execute when resumed; a
// checkpoint with Next == End belongs to a finished run.
type Checkpoint[S any] struct {
	RunID     string    `json:"runId"`
	Step      string    `json:"step"`
	Next      string    `json:"next"`
	Retries   int       `json:"retries"`
	State     S         `json:"state"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Checkpointer persists run checkpoints. Implementations must be safe
// for concurrent use by runs with distinct run IDs; writes for the same
// run ID are issued sequentially by the engine and must be observed in
// that order on Load.
type Checkpointer[S any] interface {
	// Save stores the checkpoint, replacing any previous one for the run.
	Save(ctx context.Context, cp Checkpoint[S]) error

	// Load returns the latest checkpoint for runID, or ErrNotFound.
	Load(ctx context.Context, runID string) (Checkpoint[S], error)
}

// MemorySaver is an in-memory Checkpointer. Checkpoints do not survive
// the process; use SQLiteSaver when resume across restarts is needed.
type MemorySaver[S any] struct {
	mu   sync.RWMutex
	runs map[string]Checkpoint[S]
}

// NewMemorySaver creates an empty in-memory checkpointer.
func NewMemorySaver[S any]() *MemorySaver[S] {
	return &MemorySaver[S]{runs: make(map[string]Checkpoint[S])}
}

// Save implements Checkpointer.
func (m *MemorySaver[S]) Save(_ context.Context, cp Checkpoint[S]) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[cp.RunID] = cp
	return nil
}

// Load implements Checkpointer.
func (m *MemorySaver[S]) Load(_ context.Context, runID string) (Checkpoint[S], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp, ok := m.runs[runID]
	if !ok {
		return cp, ErrNotFound
	}
	return cp, nil
}

// List returns the stored checkpoints, most recently updated first.
func (m *MemorySaver[S]) List(_ context.Context) ([]Checkpoint[S], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Checkpoint[S], 0, len(m.runs))
	for _, cp := range m.runs {
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b Checkpoint[S]) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out, nil
}
