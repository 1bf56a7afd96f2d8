package allocation

import (
	"github.com/example/searchops/internal/core/premise"
	"github.com/example/searchops/internal/core/resource"
)

// SuggestInput contains everything the suggestion planner needs.
// All values are pre-fetched by the caller - no I/O in the planner.
type SuggestInput struct {
	Premise  premise.Premise
	Assigned []resource.Resource // resources currently allocated to the premise
	Pool     []resource.Resource // snapshot; non-AVAILABLE entries are ignored
	Policy   Policy
}

// Suggestion is a proposed delta for one premise. Nothing is committed.
type Suggestion struct {
	PremiseID    string
	SuggestedIDs []string
	Suggested    []resource.Resource
	Warnings     []string
}

// Suggest proposes additions that bring one premise up to its requisition.
// Steps run in order and each sees the claims of the previous ones:
// witnesses, drivers, CRPF squads, officials, residential female presence.
func Suggest(in SuggestInput) Suggestion {
	p := in.Premise
	var req premise.Requirements
	if p.Requirements != nil {
		req = *p.Requirements
	}

	pool := NewPool(in.Pool, in.Assigned)
	claims := NewClaims()
	assigned := TallyOf(in.Assigned)
	proposed := func() Tally { return TallyOf(in.Assigned, claims.ForPremise(p.ID)) }

	// Witnesses: gender-specific shortfalls first, then the floor with any gender.
	pool.Take(req.MaleWitness-assigned.MaleWitnesses, resource.TypeWitness, p.SearchID, p.ID, claims, hasGender(resource.GenderMale))
	pool.Take(req.FemaleWitness-assigned.FemaleWitnesses, resource.TypeWitness, p.SearchID, p.ID, claims, hasGender(resource.GenderFemale))
	pool.Take(in.Policy.MinWitnesses-proposed().Witnesses, resource.TypeWitness, p.SearchID, p.ID, claims, nil)

	// Drivers: one per requested vehicle.
	pool.Take(req.Vehicles-assigned.Drivers, resource.TypeDriver, p.SearchID, p.ID, claims, nil)

	suggestSquads(pool, p, SquadNeedFor(req, assigned), claims)

	// Officials: a leader first, then anyone up to the floor.
	if assigned.Leaders == 0 {
		pool.Take(1, resource.TypeOfficial, p.SearchID, p.ID, claims, isLeader)
	}
	pool.Take(in.Policy.MinOfficials-proposed().Officials, resource.TypeOfficial, p.SearchID, p.ID, claims, nil)

	if p.IsResidential() && !proposed().FemalePresence {
		pool.TakeFirst([]resource.Type{resource.TypeWitness, resource.TypeOfficial}, p.SearchID, p.ID, claims, isFemaleIndividual)
	}

	suggested := claims.ForPremise(p.ID)
	return Suggestion{
		PremiseID:    p.ID,
		SuggestedIDs: claims.IDsForPremise(p.ID),
		Suggested:    suggested,
		Warnings:     Warnings(p, TallyOf(in.Assigned, suggested), in.Policy),
	}
}

// suggestSquads prefers one squad covering the whole need with the least
// overshoot, and otherwise accumulates squads smallest first.
func suggestSquads(pool *Pool, p premise.Premise, need SquadNeed, claims *Claims) {
	if need.Met() {
		return
	}
	squads := pool.Candidates(resource.TypeCRPF, p.SearchID, claims, nil)
	if i := SmallestCoveringSquad(squads, need); i >= 0 {
		claims.Claim(p.ID, squads[i])
		return
	}
	for _, i := range AccumulateAscending(squads, need) {
		claims.Claim(p.ID, squads[i])
	}
}
