package reviewflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Approver supplies the out-of-band approval decision for a run.
// Approve blocks only its own run; other concurrent runs are unaffected.
type Approver interface {
	// Approve returns true to approve the deliverable. Implementations
	// must honor ctx cancellation and resolve failures to false rather
	// than blocking forever.
	Approve(ctx context.Context, state State) (bool, error)
}

// AutoApprover approves immediately without suspending the run. This is
// the non-interactive default.
type AutoApprover struct{}

// Approve implements Approver.
func (AutoApprover) Approve(context.Context, State) (bool, error) {
	return true, nil
}

// ConsoleApprover asks for a y/N decision on a console. Anything other
// than an affirmative answer, a closed input stream, cancellation, or
// the timeout expiring all resolve to rejection.
type ConsoleApprover struct {
	In      io.Reader
	Out     io.Writer
	Timeout time.Duration // Zero disables the timeout.
}

// Approve implements Approver.
func (a *ConsoleApprover) Approve(ctx context.Context, state State) (bool, error) {
	if a.Out != nil {
		fmt.Fprintf(a.Out, "Awaiting approval for run %s... (y/N): ", state.RunID)
	}

	type answer struct {
		text string
		err  error
	}
	// The reader goroutine may outlive the decision when input never
	// arrives; it holds no locks and exits on the next read result.
	ch := make(chan answer, 1)
	go func() {
		line, err := bufio.NewReader(a.In).ReadString('\n')
		ch <- answer{text: line, err: err}
	}()

	var timeout <-chan time.Time
	if a.Timeout > 0 {
		timer := time.NewTimer(a.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-timeout:
		slog.Warn("approval timed out, rejecting", "runId", state.RunID, "timeout", a.Timeout)
		return false, nil
	case ans := <-ch:
		if ans.err != nil {
			// Closed or failed input defaults to rejection.
			return false, nil
		}
		return isAffirmative(ans.text), nil
	}
}

func isAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
