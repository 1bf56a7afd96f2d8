// Guards are pure functions that evaluate preconditions without side effects.
package premise

import (
	"fmt"

	"github.com/example/searchops/internal/errs"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to a validation error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return errs.Validation("%s", r.Reason)
}

// RecceTransitionContext provides context for recce status guards.
type RecceTransitionContext struct {
	PremiseID string
	Current   RecceStatus
	Target    RecceStatus
}

// DecisionContext provides context for decision guards.
type DecisionContext struct {
	PremiseID         string
	RecceStatus       RecceStatus
	Current           DecisionStatus
	Target            DecisionStatus
	ActiveAllocations int
}

// AllocationStatusContext provides context for the completion marker guard.
type AllocationStatusContext struct {
	PremiseID      string
	DecisionStatus DecisionStatus
	Target         AllocationStatus
}

// EditRequirementsContext provides context for requisition edits.
type EditRequirementsContext struct {
	PremiseID      string
	DecisionStatus DecisionStatus
}

// AllocateContext provides context for any allocation against a premise.
type AllocateContext struct {
	PremiseID      string
	DecisionStatus DecisionStatus
}

var recceTransitions = map[RecceStatus][]RecceStatus{
	RecceStatusPending:    {RecceStatusInProgress, RecceStatusCouldNotLocate},
	RecceStatusInProgress: {RecceStatusCompleted, RecceStatusCouldNotLocate},
}

// CanTransitionRecce evaluates a recce status change.
// Rules:
// - PENDING -> IN_PROGRESS -> COMPLETED
// - PENDING or IN_PROGRESS -> COULD_NOT_LOCATE
// - COMPLETED and COULD_NOT_LOCATE are terminal
func CanTransitionRecce(ctx RecceTransitionContext) GuardResult {
	for _, next := range recceTransitions[ctx.Current] {
		if next == ctx.Target {
			return GuardResult{Allowed: true}
		}
	}

	if len(recceTransitions[ctx.Current]) == 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("recce of premise %s is already %s", ctx.PremiseID, ctx.Current),
		}
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("cannot move recce of premise %s from %s to %s", ctx.PremiseID, ctx.Current, ctx.Target),
	}
}

// CanDecide evaluates a decision status change.
// Rules:
// - REJECTED is terminal
// - APPROVED requires recce COMPLETED
// - Leaving APPROVED requires no active allocations
// - Target must differ from current
func CanDecide(ctx DecisionContext) GuardResult {
	switch ctx.Target {
	case DecisionStatusApproved, DecisionStatusRejected, DecisionStatusOnHold:
	default:
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid decision %q", ctx.Target),
		}
	}

	if ctx.Current == DecisionStatusRejected {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("premise %s was rejected; the decision is final", ctx.PremiseID),
		}
	}

	if ctx.Current == ctx.Target {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("premise %s is already %s", ctx.PremiseID, ctx.Current),
		}
	}

	if ctx.Target == DecisionStatusApproved && ctx.RecceStatus != RecceStatusCompleted {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot approve premise %s before recce is COMPLETED (current: %s)", ctx.PremiseID, ctx.RecceStatus),
		}
	}

	if ctx.Current == DecisionStatusApproved && ctx.ActiveAllocations > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("premise %s still has %d allocation(s); release them first", ctx.PremiseID, ctx.ActiveAllocations),
		}
	}

	return GuardResult{Allowed: true}
}

// CanSetAllocationStatus evaluates a change of the completion marker.
// Rules:
// - Target must be PENDING or DONE
// - DONE requires decision APPROVED
func CanSetAllocationStatus(ctx AllocationStatusContext) GuardResult {
	switch ctx.Target {
	case AllocationStatusPending:
		return GuardResult{Allowed: true}
	case AllocationStatusDone:
		if ctx.DecisionStatus != DecisionStatusApproved {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("cannot mark allocation done for premise %s (decision: %s)", ctx.PremiseID, ctx.DecisionStatus),
			}
		}
		return GuardResult{Allowed: true}
	}

	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("invalid allocation status %q", ctx.Target),
	}
}

// CanEditRequirements evaluates whether the requisition may change.
// Rules:
// - Decision must be APPROVED
func CanEditRequirements(ctx EditRequirementsContext) GuardResult {
	if ctx.DecisionStatus != DecisionStatusApproved {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("requirements of premise %s can only be edited once APPROVED (decision: %s)", ctx.PremiseID, ctx.DecisionStatus),
		}
	}

	return GuardResult{Allowed: true}
}

// CanAllocate evaluates whether resources may be allocated to a premise.
// Rules:
// - Decision must be APPROVED
func CanAllocate(ctx AllocateContext) GuardResult {
	if ctx.DecisionStatus != DecisionStatusApproved {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("premise %s is not approved for allocation (decision: %s)", ctx.PremiseID, ctx.DecisionStatus),
		}
	}

	return GuardResult{Allowed: true}
}
