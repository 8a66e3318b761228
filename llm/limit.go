package llm

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Limited caps the number of in-flight completion calls across all
// concurrent workflow runs sharing the client, protecting the external
// service from process-wide bursts. Acquisition respects ctx, so a
// cancelled run never waits on the semaphore.
type Limited struct {
	inner Client
	sem   *semaphore.Weighted
}

// WithConcurrencyLimit wraps client so at most n completions run at once.
// n <= 0 returns the client unwrapped.
func WithConcurrencyLimit(client Client, n int) Client {
	if n <= 0 {
		return client
	}
	return &Limited{inner: client, sem: semaphore.NewWeighted(int64(n))}
}

// Complete implements Client.
func (l *Limited) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire completion slot: %w", err)
	}
	defer l.sem.Release(1)

	return l.inner.Complete(ctx, req)
}
