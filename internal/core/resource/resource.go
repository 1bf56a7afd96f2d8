// Package resource contains the pure model of allocatable resources.
// A Resource carries common fields plus exactly one type-specific variant.
// This is part of the Functional Core - no I/O, only pure functions.
package resource

import (
	"fmt"
	"sort"
)

// Type identifies the resource variant.
type Type string

const (
	TypeOfficial Type = "OFFICIAL"
	TypeWitness  Type = "WITNESS"
	TypeDriver   Type = "DRIVER"
	TypeCRPF     Type = "CRPF"
)

// Gender of an individual resource. CRPF squads have none.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Status is the availability state of a resource.
// ASSIGNED holds iff exactly one active allocation references the resource.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusAssigned    Status = "ASSIGNED"
	StatusUnavailable Status = "UNAVAILABLE"
)

// Details is the type-specific variant of a Resource.
type Details interface {
	ResourceType() Type
}

// OfficialDetails holds the fields of an OFFICIAL.
type OfficialDetails struct {
	Gender      Gender
	Rank        Rank
	Designation string
}

// WitnessDetails holds the fields of a WITNESS.
type WitnessDetails struct {
	Gender Gender
	Phone  string
}

// DriverDetails holds the fields of a DRIVER.
type DriverDetails struct {
	Gender        Gender
	VehicleType   string
	VehicleNumber string
}

// CrpfDetails holds the headcount of an indivisible CRPF squad.
type CrpfDetails struct {
	MaleCount   int
	FemaleCount int
}

func (OfficialDetails) ResourceType() Type { return TypeOfficial }
func (WitnessDetails) ResourceType() Type  { return TypeWitness }
func (DriverDetails) ResourceType() Type   { return TypeDriver }
func (CrpfDetails) ResourceType() Type     { return TypeCRPF }

// Strength is the total headcount of the squad.
func (d CrpfDetails) Strength() int { return d.MaleCount + d.FemaleCount }

// Resource is a person, vehicle driver, or squad that can be allocated to a premise.
type Resource struct {
	ID       string
	Name     string
	Status   Status
	SearchID string // empty means usable by any search
	Details  Details
}

// Type returns the variant type, or "" when Details is unset.
func (r Resource) Type() Type {
	if r.Details == nil {
		return ""
	}
	return r.Details.ResourceType()
}

// Gender returns the gender of an individual resource; squads return "".
func (r Resource) Gender() Gender {
	switch d := r.Details.(type) {
	case OfficialDetails:
		return d.Gender
	case WitnessDetails:
		return d.Gender
	case DriverDetails:
		return d.Gender
	}
	return ""
}

// Official returns the official variant when the resource is an OFFICIAL.
func (r Resource) Official() (OfficialDetails, bool) {
	d, ok := r.Details.(OfficialDetails)
	return d, ok
}

// Squad returns the CRPF variant when the resource is a CRPF squad.
func (r Resource) Squad() (CrpfDetails, bool) {
	d, ok := r.Details.(CrpfDetails)
	return d, ok
}

// IsLeader reports whether the resource is an official holding a leader rank.
func (r Resource) IsLeader() bool {
	d, ok := r.Official()
	return ok && d.Rank.IsLeader()
}

// IsFemalePresence reports whether the resource provides female presence:
// a female official or witness, or a squad with at least one woman.
func (r Resource) IsFemalePresence() bool {
	switch d := r.Details.(type) {
	case OfficialDetails:
		return d.Gender == GenderFemale
	case WitnessDetails:
		return d.Gender == GenderFemale
	case CrpfDetails:
		return d.FemaleCount > 0
	}
	return false
}

// IsFemaleIndividual reports whether the resource is a female official or witness.
func (r Resource) IsFemaleIndividual() bool {
	switch d := r.Details.(type) {
	case OfficialDetails:
		return d.Gender == GenderFemale
	case WitnessDetails:
		return d.Gender == GenderFemale
	}
	return false
}

// EligibleFor reports whether the resource may serve a premise of the given search.
func (r Resource) EligibleFor(searchID string) bool {
	return r.SearchID == "" || r.SearchID == searchID
}

// Validate checks the variant is consistent with the common fields.
func (r Resource) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("resource id is required")
	}
	switch d := r.Details.(type) {
	case OfficialDetails:
		if !d.Gender.Valid() {
			return fmt.Errorf("resource %s: invalid gender %q", r.ID, d.Gender)
		}
		if !d.Rank.Valid() {
			return fmt.Errorf("resource %s: invalid rank %q", r.ID, d.Rank)
		}
	case WitnessDetails:
		if !d.Gender.Valid() {
			return fmt.Errorf("resource %s: invalid gender %q", r.ID, d.Gender)
		}
	case DriverDetails:
		if !d.Gender.Valid() {
			return fmt.Errorf("resource %s: invalid gender %q", r.ID, d.Gender)
		}
	case CrpfDetails:
		if d.MaleCount < 0 || d.FemaleCount < 0 {
			return fmt.Errorf("resource %s: squad counts must be non-negative", r.ID)
		}
		if d.Strength() == 0 {
			return fmt.Errorf("resource %s: squad must have at least one member", r.ID)
		}
	default:
		return fmt.Errorf("resource %s: missing type details", r.ID)
	}
	return nil
}

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ParseType converts a string into a Type.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeOfficial, TypeWitness, TypeDriver, TypeCRPF:
		return t, nil
	}
	return "", fmt.Errorf("unknown resource type %q", s)
}

// ParseStatus converts a string into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusAvailable, StatusAssigned, StatusUnavailable:
		return st, nil
	}
	return "", fmt.Errorf("unknown resource status %q", s)
}

// Filter keeps resources for which keep returns true, preserving order.
func Filter(resources []Resource, keep func(Resource) bool) []Resource {
	var out []Resource
	for _, r := range resources {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// OfType returns a predicate matching resources of type t.
func OfType(t Type) func(Resource) bool {
	return func(r Resource) bool { return r.Type() == t }
}

// SortOfficialsByRank orders officials by rank priority, keeping input order
// among equal ranks. Non-officials sort last.
func SortOfficialsByRank(resources []Resource) {
	sort.SliceStable(resources, func(i, j int) bool {
		return rankPriority(resources[i]) < rankPriority(resources[j])
	})
}

func rankPriority(r Resource) int {
	d, ok := r.Official()
	if !ok {
		return len(rankOrder) + 1
	}
	return d.Rank.Priority()
}
