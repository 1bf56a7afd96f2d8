package allocation

import (
	"fmt"

	"github.com/example/searchops/internal/core/premise"
	"github.com/example/searchops/internal/core/resource"
)

// Policy holds the staffing floors that apply regardless of the requisition.
type Policy struct {
	MinWitnesses int
	MinOfficials int
}

// DefaultPolicy returns the standard floors: two witnesses and two officials.
func DefaultPolicy() Policy {
	return Policy{MinWitnesses: 2, MinOfficials: 2}
}

// Tally counts what a team of resources provides.
type Tally struct {
	MaleWitnesses   int
	FemaleWitnesses int
	Witnesses       int
	Drivers         int
	Officials       int
	Leaders         int
	CrpfMale        int
	CrpfFemale      int
	FemalePresence  bool
}

// CrpfStrength is the total headcount of the team's squads.
func (t Tally) CrpfStrength() int { return t.CrpfMale + t.CrpfFemale }

// TallyOf counts every resource across the given groups.
func TallyOf(groups ...[]resource.Resource) Tally {
	var t Tally
	for _, group := range groups {
		for _, r := range group {
			t.add(r)
		}
	}
	return t
}

func (t *Tally) add(r resource.Resource) {
	if r.IsFemalePresence() {
		t.FemalePresence = true
	}
	switch d := r.Details.(type) {
	case resource.WitnessDetails:
		t.Witnesses++
		switch d.Gender {
		case resource.GenderMale:
			t.MaleWitnesses++
		case resource.GenderFemale:
			t.FemaleWitnesses++
		}
	case resource.DriverDetails:
		t.Drivers++
	case resource.OfficialDetails:
		t.Officials++
		if d.Rank.IsLeader() {
			t.Leaders++
		}
	case resource.CrpfDetails:
		t.CrpfMale += d.MaleCount
		t.CrpfFemale += d.FemaleCount
	}
}

// SquadNeedFor returns the CRPF shortfall of a team against req.
func SquadNeedFor(req premise.Requirements, t Tally) SquadNeed {
	return SquadNeed{
		Male:   req.CrpfMaleCount - t.CrpfMale,
		Female: req.CrpfFemaleCount - t.CrpfFemale,
		Total:  req.CrpfStrength() - t.CrpfStrength(),
	}
}

// Warnings describes every shortfall of a team against its premise. An empty
// result means the team satisfies the requisition and the policy floors.
func Warnings(p premise.Premise, t Tally, policy Policy) []string {
	var req premise.Requirements
	if p.Requirements != nil {
		req = *p.Requirements
	}

	var warnings []string
	if want := max(req.Witnesses(), policy.MinWitnesses); t.Witnesses < want {
		warnings = append(warnings, fmt.Sprintf("Short by %d witness(es): have %d of %d", want-t.Witnesses, t.Witnesses, want))
	}
	if short := req.MaleWitness - t.MaleWitnesses; short > 0 {
		warnings = append(warnings, fmt.Sprintf("Short by %d male witness(es)", short))
	}
	if short := req.FemaleWitness - t.FemaleWitnesses; short > 0 {
		warnings = append(warnings, fmt.Sprintf("Short by %d female witness(es)", short))
	}
	if short := req.Vehicles - t.Drivers; short > 0 {
		warnings = append(warnings, fmt.Sprintf("Short by %d driver(s)", short))
	}
	if short := req.CrpfStrength() - t.CrpfStrength(); short > 0 {
		warnings = append(warnings, fmt.Sprintf("Short by %d CRPF personnel", short))
	}
	if t.Leaders == 0 {
		warnings = append(warnings, "No leader-ranked official (AD/EO) assigned")
	}
	if short := policy.MinOfficials - t.Officials; short > 0 {
		warnings = append(warnings, fmt.Sprintf("Short by %d official(s)", short))
	}
	if p.IsResidential() && !t.FemalePresence {
		warnings = append(warnings, "Residential premise has no female presence")
	}
	return warnings
}
