package primary

import "context"

// ResourceService defines the primary port for resource operations.
type ResourceService interface {
	// CreateResource registers a new resource.
	CreateResource(ctx context.Context, req CreateResourceRequest) (*Resource, error)

	// GetResource retrieves a resource by ID.
	GetResource(ctx context.Context, resourceID string) (*Resource, error)

	// ListResources lists resources with optional filters.
	ListResources(ctx context.Context, filters ResourceFilters) ([]*Resource, error)

	// SetAvailability toggles a resource between AVAILABLE and UNAVAILABLE.
	// ASSIGNED resources only change through allocation.
	SetAvailability(ctx context.Context, resourceID string, available bool) error
}

// RosterService defines the primary port for bulk roster import.
type RosterService interface {
	// ImportRoster creates every resource and premise of a roster in one transaction.
	ImportRoster(ctx context.Context, roster Roster) (*ImportResult, error)
}

// CreateResourceRequest contains parameters for registering a resource.
// Only the fields of the chosen type are read.
type CreateResourceRequest struct {
	Type            string `json:"type" yaml:"type" validate:"required,oneof=OFFICIAL WITNESS DRIVER CRPF"`
	Name            string `json:"name" yaml:"name" validate:"required"`
	Gender          string `json:"gender,omitempty" yaml:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Rank            string `json:"rank,omitempty" yaml:"rank" validate:"required_if=Type OFFICIAL"`
	Designation     string `json:"designation,omitempty" yaml:"designation"`
	Phone           string `json:"phone,omitempty" yaml:"phone"`
	VehicleType     string `json:"vehicleType,omitempty" yaml:"vehicleType"`
	VehicleNumber   string `json:"vehicleNumber,omitempty" yaml:"vehicleNumber"`
	CrpfMaleCount   int    `json:"crpfMaleCount,omitempty" yaml:"crpfMaleCount" validate:"gte=0"`
	CrpfFemaleCount int    `json:"crpfFemaleCount,omitempty" yaml:"crpfFemaleCount" validate:"gte=0"`
	SearchID        string `json:"searchId,omitempty" yaml:"searchId"`
	Unavailable     bool   `json:"unavailable,omitempty" yaml:"unavailable"`
}

// ResourceFilters contains filter options for listing resources.
type ResourceFilters struct {
	Type     string
	Status   string
	SearchID string
}

// Resource represents a resource at the port boundary.
type Resource struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Name            string `json:"name"`
	Gender          string `json:"gender,omitempty"`
	Rank            string `json:"rank,omitempty"`
	Designation     string `json:"designation,omitempty"`
	Phone           string `json:"phone,omitempty"`
	VehicleType     string `json:"vehicleType,omitempty"`
	VehicleNumber   string `json:"vehicleNumber,omitempty"`
	CrpfMaleCount   int    `json:"crpfMaleCount,omitempty"`
	CrpfFemaleCount int    `json:"crpfFemaleCount,omitempty"`
	Status          string `json:"status"`
	SearchID        string `json:"searchId,omitempty"`
}

// Roster is a bulk import document.
type Roster struct {
	Resources []CreateResourceRequest `yaml:"resources" validate:"dive"`
	Premises  []CreatePremiseRequest  `yaml:"premises" validate:"dive"`
}

// ImportResult lists the IDs created by an import.
type ImportResult struct {
	ResourceIDs []string
	PremiseIDs  []string
}
