package primary

import "context"

// AllocationService defines the primary port for allocation operations.
type AllocationService interface {
	// SuggestAllocation proposes additions for one premise without committing.
	SuggestAllocation(ctx context.Context, premiseID string) (*Suggestion, error)

	// AutoAssign plans and commits allocations for every approved premise.
	AutoAssign(ctx context.Context) (*AutoAssignResult, error)

	// SyncAllocations removes and adds allocations of one premise atomically.
	SyncAllocations(ctx context.Context, req SyncRequest) (*SyncResult, error)

	// AllocateResource allocates a single resource after policy checks.
	AllocateResource(ctx context.Context, req AllocateResourceRequest) (*SyncResult, error)

	// ReleasePremise removes every allocation of a premise.
	ReleasePremise(ctx context.Context, premiseID string) (*SyncResult, error)

	// GetTeam returns the resources allocated to a premise and its shortfalls.
	GetTeam(ctx context.Context, premiseID string) (*Team, error)
}

// Suggestion is a proposed, uncommitted delta for one premise.
type Suggestion struct {
	PremiseID    string      `json:"premiseId"`
	SuggestedIDs []string    `json:"suggestedIds"`
	Suggested    []*Resource `json:"suggested"`
	Warnings     []string    `json:"warnings"`
}

// AutoAssignResult summarises one auto-assign run.
type AutoAssignResult struct {
	// NoEligiblePremises is set when no premise is APPROVED; nothing ran.
	NoEligiblePremises  bool                `json:"noEligiblePremises"`
	Processed           int                 `json:"processed"`
	Created             int                 `json:"created"`
	WithoutRequirements []string            `json:"withoutRequirements,omitempty"`
	Attempts            int                 `json:"attempts"`
	Warnings            map[string][]string `json:"warnings,omitempty"`
}

// SyncRequest contains parameters for a manual allocation sync.
type SyncRequest struct {
	PremiseID string   `json:"premiseId" validate:"required"`
	Add       []string `json:"add" validate:"dive,required"`
	Remove    []string `json:"remove" validate:"dive,required"`
}

// SyncResult reports what a sync changed.
type SyncResult struct {
	PremiseID string   `json:"premiseId"`
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
}

// AllocateResourceRequest contains parameters for a single manual allocation.
type AllocateResourceRequest struct {
	PremiseID  string `json:"premiseId" validate:"required"`
	ResourceID string `json:"resourceId" validate:"required"`
}

// Team is the current allocation of a premise.
type Team struct {
	PremiseID string      `json:"premiseId"`
	Members   []*Resource `json:"members"`
	Warnings  []string    `json:"warnings"`
}
