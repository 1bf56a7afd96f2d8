// Package premise contains the pure business logic for premises and their lifecycle.
// This is part of the Functional Core - no I/O, only pure functions.
package premise

import "fmt"

// Nature classifies the kind of site.
type Nature string

const (
	NatureResidential Nature = "RESIDENTIAL"
	NatureCommercial  Nature = "COMMERCIAL"
	NatureOffice      Nature = "OFFICE"
	NatureIndustrial  Nature = "INDUSTRIAL"
	NatureOthers      Nature = "OTHERS"
)

// RecceStatus tracks reconnaissance of the premise.
type RecceStatus string

const (
	RecceStatusPending        RecceStatus = "PENDING"
	RecceStatusInProgress     RecceStatus = "IN_PROGRESS"
	RecceStatusCompleted      RecceStatus = "COMPLETED"
	RecceStatusCouldNotLocate RecceStatus = "COULD_NOT_LOCATE"
)

// DecisionStatus tracks whether the premise will be searched.
type DecisionStatus string

const (
	DecisionStatusPending  DecisionStatus = "PENDING"
	DecisionStatusApproved DecisionStatus = "APPROVED"
	DecisionStatusRejected DecisionStatus = "REJECTED"
	DecisionStatusOnHold   DecisionStatus = "ON_HOLD"
)

// AllocationStatus is a manually-set completion marker. It does not reflect
// whether the team actually meets the requirements.
type AllocationStatus string

const (
	AllocationStatusPending AllocationStatus = "PENDING"
	AllocationStatusDone    AllocationStatus = "DONE"
)

// Requirements is the requisition for a premise. All counts default to 0.
type Requirements struct {
	MaleWitness     int `json:"maleWitness" yaml:"maleWitness" validate:"gte=0"`
	FemaleWitness   int `json:"femaleWitness" yaml:"femaleWitness" validate:"gte=0"`
	CrpfTeamSize    int `json:"crpfTeamSize" yaml:"crpfTeamSize" validate:"gte=0"`
	CrpfMaleCount   int `json:"crpfMaleCount" yaml:"crpfMaleCount" validate:"gte=0"`
	CrpfFemaleCount int `json:"crpfFemaleCount" yaml:"crpfFemaleCount" validate:"gte=0"`
	Vehicles        int `json:"vehicles" yaml:"vehicles" validate:"gte=0"`
}

// Witnesses is the total number of explicitly requested witnesses.
func (r Requirements) Witnesses() int { return r.MaleWitness + r.FemaleWitness }

// CrpfStrength is the total CRPF headcount requested. A team size smaller than
// the gender split is raised to the split.
func (r Requirements) CrpfStrength() int {
	return max(r.CrpfTeamSize, r.CrpfMaleCount+r.CrpfFemaleCount)
}

// Premise is a physical site slated for a search operation.
type Premise struct {
	ID               string
	SearchID         string
	Name             string
	Address          string
	Nature           Nature
	Requirements     *Requirements // nil until a requisition is recorded
	RecceStatus      RecceStatus
	DecisionStatus   DecisionStatus
	AllocationStatus AllocationStatus
}

// IsResidential reports whether the residential female-presence rule applies.
func (p Premise) IsResidential() bool { return p.Nature == NatureResidential }

// IsEligibleForAllocation reports whether the allocation engines may see the premise.
func (p Premise) IsEligibleForAllocation() bool {
	return p.DecisionStatus == DecisionStatusApproved
}

// InitialPremise returns a premise with every status track at PENDING.
func InitialPremise(id, searchID, name string, nature Nature) Premise {
	return Premise{
		ID:               id,
		SearchID:         searchID,
		Name:             name,
		Nature:           nature,
		RecceStatus:      RecceStatusPending,
		DecisionStatus:   DecisionStatusPending,
		AllocationStatus: AllocationStatusPending,
	}
}

// ParseNature converts a string into a Nature.
func ParseNature(s string) (Nature, error) {
	switch n := Nature(s); n {
	case NatureResidential, NatureCommercial, NatureOffice, NatureIndustrial, NatureOthers:
		return n, nil
	}
	return "", fmt.Errorf("unknown premise nature %q", s)
}
