package primary

import "context"

// PremiseService defines the primary port for premise operations.
type PremiseService interface {
	// CreatePremise creates a new premise with every status track PENDING.
	CreatePremise(ctx context.Context, req CreatePremiseRequest) (*Premise, error)

	// GetPremise retrieves a premise by ID.
	GetPremise(ctx context.Context, premiseID string) (*Premise, error)

	// ListPremises lists premises with optional filters.
	ListPremises(ctx context.Context, filters PremiseFilters) ([]*Premise, error)

	// SetRecceStatus moves the recce track.
	SetRecceStatus(ctx context.Context, premiseID, status string) error

	// SetDecision moves the decision track.
	SetDecision(ctx context.Context, premiseID, decision string) error

	// SetAllocationStatus sets the manual completion marker.
	SetAllocationStatus(ctx context.Context, premiseID, status string) error

	// UpdateRequirements replaces the requisition of an approved premise.
	UpdateRequirements(ctx context.Context, premiseID string, req Requirements) error
}

// CreatePremiseRequest contains parameters for creating a premise.
// Requirements must be nil: a requisition is entered after approval.
type CreatePremiseRequest struct {
	SearchID     string        `json:"searchId" yaml:"searchId" validate:"required"`
	Name         string        `json:"name" yaml:"name" validate:"required"`
	Address      string        `json:"address" yaml:"address"`
	Nature       string        `json:"nature" yaml:"nature" validate:"required,oneof=RESIDENTIAL COMMERCIAL OFFICE INDUSTRIAL OTHERS"`
	Requirements *Requirements `json:"requirements" yaml:"requirements"`
}

// Requirements is the requisition of a premise.
type Requirements struct {
	MaleWitness     int `json:"maleWitness" yaml:"maleWitness" validate:"gte=0"`
	FemaleWitness   int `json:"femaleWitness" yaml:"femaleWitness" validate:"gte=0"`
	CrpfTeamSize    int `json:"crpfTeamSize" yaml:"crpfTeamSize" validate:"gte=0"`
	CrpfMaleCount   int `json:"crpfMaleCount" yaml:"crpfMaleCount" validate:"gte=0"`
	CrpfFemaleCount int `json:"crpfFemaleCount" yaml:"crpfFemaleCount" validate:"gte=0"`
	Vehicles        int `json:"vehicles" yaml:"vehicles" validate:"gte=0"`
}

// PremiseFilters contains filter options for listing premises.
type PremiseFilters struct {
	SearchID       string
	DecisionStatus string
}

// Premise represents a premise at the port boundary.
type Premise struct {
	ID               string        `json:"id"`
	SearchID         string        `json:"searchId"`
	Name             string        `json:"name"`
	Address          string        `json:"address,omitempty"`
	Nature           string        `json:"nature"`
	Requirements     *Requirements `json:"requirements,omitempty"`
	RecceStatus      string        `json:"recceStatus"`
	DecisionStatus   string        `json:"decisionStatus"`
	AllocationStatus string        `json:"allocationStatus"`
	CreatedAt        string        `json:"createdAt,omitempty"`
	UpdatedAt        string        `json:"updatedAt,omitempty"`
}
