package reviewflow

import (
	"context"
)

// ApprovalGateNode resolves the run's approval status. With no Approver
// in context (the non-interactive default) the deliverable is approved
// immediately and the run never suspends. An injected Approver may block
// this run awaiting an external decision; a decision failure resolves to
// rejected rather than an error, while cancellation aborts the run.
//
// Updates: state.ApprovalStatus
func ApprovalGateNode(ctx context.Context, state State) (State, error) {
	approver := ApproverFromContext(ctx)
	if approver == nil {
		state.ApprovalStatus = ApprovalApproved
		return state, nil
	}

	ok, err := approver.Approve(ctx, state)
	if err != nil {
		state.ApprovalStatus = ApprovalRejected
		return state, err
	}

	if ok {
		state.ApprovalStatus = ApprovalApproved
	} else {
		state.ApprovalStatus = ApprovalRejected
	}
	return state, nil
}
