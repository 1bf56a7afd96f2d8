// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// Transactor runs fn as one all-or-nothing unit. Repositories called with the
// ctx passed to fn take part in the same transaction. A non-nil error from fn
// rolls everything back.
type Transactor interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// ResourceRepository defines the secondary port for resource persistence.
type ResourceRepository interface {
	// Create persists a new resource.
	Create(ctx context.Context, resource *ResourceRecord) error

	// GetByID retrieves a resource by its ID.
	GetByID(ctx context.Context, id string) (*ResourceRecord, error)

	// GetByIDs retrieves the resources with the given IDs. Missing IDs are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]*ResourceRecord, error)

	// List retrieves resources matching the given filters.
	List(ctx context.Context, filters ResourceFilters) ([]*ResourceRecord, error)

	// UpdateStatusBatch sets status on every id whose current status is one of
	// from (any status when from is empty) and returns how many rows changed.
	UpdateStatusBatch(ctx context.Context, ids []string, status string, from ...string) (int, error)

	// GetNextID returns the next available resource ID.
	GetNextID(ctx context.Context) (string, error)
}

// ResourceRecord represents a resource as stored in persistence.
// Type-specific columns are zero when they do not apply.
type ResourceRecord struct {
	ID              string
	Type            string // OFFICIAL, WITNESS, DRIVER, CRPF
	Name            string
	Gender          string // Empty string means null (CRPF)
	Rank            string // OFFICIAL only
	Designation     string // OFFICIAL only
	Phone           string // WITNESS only
	VehicleType     string // DRIVER only
	VehicleNumber   string // DRIVER only
	CrpfMaleCount   int    // CRPF only
	CrpfFemaleCount int    // CRPF only
	Status          string // AVAILABLE, ASSIGNED, UNAVAILABLE
	SearchID        string // Empty string means null - usable by any search
	CreatedAt       string
	UpdatedAt       string
}

// ResourceFilters contains filter options for querying resources.
type ResourceFilters struct {
	Type     string
	Status   string
	SearchID string // matches the search and unscoped resources
}

// PremiseRepository defines the secondary port for premise persistence.
type PremiseRepository interface {
	// Create persists a new premise.
	Create(ctx context.Context, premise *PremiseRecord) error

	// GetByID retrieves a premise by its ID.
	GetByID(ctx context.Context, id string) (*PremiseRecord, error)

	// List retrieves premises matching the given filters.
	List(ctx context.Context, filters PremiseFilters) ([]*PremiseRecord, error)

	// ListEligibleForAllocation retrieves every APPROVED premise.
	ListEligibleForAllocation(ctx context.Context) ([]*PremiseRecord, error)

	// UpdateRecceStatus sets the recce track.
	UpdateRecceStatus(ctx context.Context, id, status string) error

	// UpdateDecisionStatus sets the decision track.
	UpdateDecisionStatus(ctx context.Context, id, status string) error

	// UpdateAllocationStatus sets the completion marker.
	UpdateAllocationStatus(ctx context.Context, id, status string) error

	// UpdateRequirements replaces the requisition.
	UpdateRequirements(ctx context.Context, id string, req RequirementsRecord) error

	// GetNextID returns the next available premise ID.
	GetNextID(ctx context.Context) (string, error)
}

// PremiseRecord represents a premise as stored in persistence.
type PremiseRecord struct {
	ID               string
	SearchID         string
	Name             string
	Address          string
	Nature           string
	Requirements     *RequirementsRecord // nil means no requisition recorded
	RecceStatus      string
	DecisionStatus   string
	AllocationStatus string
	CreatedAt        string
	UpdatedAt        string
}

// RequirementsRecord is the stored requisition of a premise.
type RequirementsRecord struct {
	MaleWitness     int
	FemaleWitness   int
	CrpfTeamSize    int
	CrpfMaleCount   int
	CrpfFemaleCount int
	Vehicles        int
}

// PremiseFilters contains filter options for querying premises.
type PremiseFilters struct {
	SearchID       string
	DecisionStatus string
}

// AllocationLedger defines the secondary port for the premise/resource junction.
type AllocationLedger interface {
	// Create inserts one allocation per pair.
	Create(ctx context.Context, pairs []AllocationRecord) error

	// DeleteByResourceIDs removes the allocations of the given resources from
	// a premise and returns the resource IDs that were actually deleted.
	DeleteByResourceIDs(ctx context.Context, premiseID string, resourceIDs []string) ([]string, error)

	// ListByPremise returns the active allocations of a premise.
	ListByPremise(ctx context.Context, premiseID string) ([]*AllocationRecord, error)

	// ListByPremises returns the active allocations of several premises.
	ListByPremises(ctx context.Context, premiseIDs []string) ([]*AllocationRecord, error)

	// CountByPremise returns the number of active allocations of a premise.
	CountByPremise(ctx context.Context, premiseID string) (int, error)
}

// AllocationRecord represents one active (premise, resource) pair.
type AllocationRecord struct {
	ID         string
	PremiseID  string
	ResourceID string
	Source     string // auto, sync, manual
	CreatedAt  string
}
