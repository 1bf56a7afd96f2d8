package allocation

import (
	"sort"

	"github.com/example/searchops/internal/core/premise"
	"github.com/example/searchops/internal/core/resource"
)

// PremiseState is one eligible premise with its current team.
type PremiseState struct {
	Premise  premise.Premise
	Assigned []resource.Resource
}

// AutoAssignInput contains everything the auto-assign planner needs.
// All values are pre-fetched by the caller - no I/O in the planner.
type AutoAssignInput struct {
	Premises []PremiseState
	Pool     []resource.Resource
	Policy   Policy
}

// AutoAssignPlan is the proposed set of new allocations across all premises.
type AutoAssignPlan struct {
	Claims *Claims
	// Processed counts the premises the passes ran over.
	Processed int
	// WithoutRequirements lists premises planned against an all-zero
	// requisition because none has been entered yet.
	WithoutRequirements []string
	// Warnings holds the remaining shortfalls per premise after every pass.
	Warnings map[string][]string
}

// Pairs returns every proposed (premise, resource) allocation in claim order.
func (p AutoAssignPlan) Pairs() []Pair { return p.Claims.Pairs() }

// pass is one ordered step of the auto-assign run. Passes share the claims so
// later passes see earlier ones.
type pass func(states []PremiseState, pool *Pool, claims *Claims, policy Policy)

var passes = []pass{
	assignLeaders,
	assignFemalePresence,
	assignSquads,
	assignDriversAndWitnesses,
	fillOfficials,
}

// PlanAutoAssign runs the five passes over every premise in input order,
// sharing one pool so no resource is proposed to two premises.
func PlanAutoAssign(in AutoAssignInput) AutoAssignPlan {
	plan := AutoAssignPlan{
		Claims:   NewClaims(),
		Warnings: make(map[string][]string),
	}

	states := make([]PremiseState, 0, len(in.Premises))
	var assigned []resource.Resource
	for _, st := range in.Premises {
		assigned = append(assigned, st.Assigned...)
		if st.Premise.Requirements == nil {
			plan.WithoutRequirements = append(plan.WithoutRequirements, st.Premise.ID)
			st.Premise.Requirements = &premise.Requirements{}
		}
		states = append(states, st)
	}
	plan.Processed = len(states)

	pool := NewPool(in.Pool, assigned)
	for _, run := range passes {
		run(states, pool, plan.Claims, in.Policy)
	}

	for _, st := range states {
		t := teamOf(st, plan.Claims)
		if w := Warnings(st.Premise, t, in.Policy); len(w) > 0 {
			plan.Warnings[st.Premise.ID] = w
		}
	}
	return plan
}

func teamOf(st PremiseState, claims *Claims) Tally {
	return TallyOf(st.Assigned, claims.ForPremise(st.Premise.ID))
}

// assignLeaders gives every premise without a leader the first available one.
func assignLeaders(states []PremiseState, pool *Pool, claims *Claims, _ Policy) {
	for _, st := range states {
		if teamOf(st, claims).Leaders > 0 {
			continue
		}
		pool.Take(1, resource.TypeOfficial, st.Premise.SearchID, st.Premise.ID, claims, isLeader)
	}
}

// assignFemalePresence gives every residential premise lacking female
// presence one female official or witness.
func assignFemalePresence(states []PremiseState, pool *Pool, claims *Claims, _ Policy) {
	for _, st := range states {
		if !st.Premise.IsResidential() || teamOf(st, claims).FemalePresence {
			continue
		}
		pool.TakeFirst([]resource.Type{resource.TypeOfficial, resource.TypeWitness},
			st.Premise.SearchID, st.Premise.ID, claims, isFemaleIndividual)
	}
}

// assignSquads services the largest CRPF demands first, repeatedly taking the
// squad closest in size to the remaining gap.
func assignSquads(states []PremiseState, pool *Pool, claims *Claims, _ Policy) {
	ordered := make([]PremiseState, len(states))
	copy(ordered, states)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Premise.Requirements.CrpfStrength() > ordered[j].Premise.Requirements.CrpfStrength()
	})

	for _, st := range ordered {
		need := SquadNeedFor(*st.Premise.Requirements, teamOf(st, claims))
		for !need.Met() {
			squads := pool.Candidates(resource.TypeCRPF, st.Premise.SearchID, claims, func(r resource.Resource) bool {
				return need.Helps(squadOf(r))
			})
			i := ClosestFitSquad(squads, need.Gap())
			if i < 0 {
				break
			}
			claims.Claim(st.Premise.ID, squads[i])
			need = need.After(squadOf(squads[i]))
		}
	}
}

// assignDriversAndWitnesses fills vehicle and gender-specific witness shortfalls.
func assignDriversAndWitnesses(states []PremiseState, pool *Pool, claims *Claims, _ Policy) {
	for _, st := range states {
		p, req := st.Premise, *st.Premise.Requirements
		t := teamOf(st, claims)
		pool.Take(req.Vehicles-t.Drivers, resource.TypeDriver, p.SearchID, p.ID, claims, nil)
		pool.Take(req.MaleWitness-t.MaleWitnesses, resource.TypeWitness, p.SearchID, p.ID, claims, hasGender(resource.GenderMale))
		pool.Take(req.FemaleWitness-t.FemaleWitnesses, resource.TypeWitness, p.SearchID, p.ID, claims, hasGender(resource.GenderFemale))
	}
}

// fillOfficials tops every premise up to the officials floor.
func fillOfficials(states []PremiseState, pool *Pool, claims *Claims, policy Policy) {
	for _, st := range states {
		short := policy.MinOfficials - teamOf(st, claims).Officials
		pool.Take(short, resource.TypeOfficial, st.Premise.SearchID, st.Premise.ID, claims, nil)
	}
}
