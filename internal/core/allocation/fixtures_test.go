package allocation

import (
	"github.com/example/searchops/internal/core/premise"
	"github.com/example/searchops/internal/core/resource"
)

func official(id string, rank resource.Rank, g resource.Gender) resource.Resource {
	return resource.Resource{ID: id, Status: resource.StatusAvailable, Details: resource.OfficialDetails{Gender: g, Rank: rank}}
}

func witness(id string, g resource.Gender) resource.Resource {
	return resource.Resource{ID: id, Status: resource.StatusAvailable, Details: resource.WitnessDetails{Gender: g}}
}

func driver(id string) resource.Resource {
	return resource.Resource{ID: id, Status: resource.StatusAvailable, Details: resource.DriverDetails{Gender: resource.GenderMale}}
}

func squad(id string, male, female int) resource.Resource {
	return resource.Resource{ID: id, Status: resource.StatusAvailable, Details: resource.CrpfDetails{MaleCount: male, FemaleCount: female}}
}

func assignedCopy(r resource.Resource) resource.Resource {
	r.Status = resource.StatusAssigned
	return r
}

func approvedPremise(id string, nature premise.Nature, req premise.Requirements) premise.Premise {
	p := premise.InitialPremise(id, "SRCH-001", id, nature)
	p.RecceStatus = premise.RecceStatusCompleted
	p.DecisionStatus = premise.DecisionStatusApproved
	p.Requirements = &req
	return p
}

func ids(rs []resource.Resource) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

// applyPlan commits a plan to an input snapshot the way the executor would.
func applyPlan(in AutoAssignInput, plan AutoAssignPlan) AutoAssignInput {
	next := AutoAssignInput{Policy: in.Policy}
	byID := make(map[string]resource.Resource)
	for _, r := range in.Pool {
		if plan.Claims.IsClaimed(r.ID) {
			r = assignedCopy(r)
		}
		byID[r.ID] = r
		next.Pool = append(next.Pool, r)
	}
	for _, st := range in.Premises {
		assigned := append([]resource.Resource(nil), st.Assigned...)
		for _, id := range plan.Claims.IDsForPremise(st.Premise.ID) {
			assigned = append(assigned, byID[id])
		}
		next.Premises = append(next.Premises, PremiseState{Premise: st.Premise, Assigned: assigned})
	}
	return next
}
