package allocation

import "github.com/example/searchops/internal/core/resource"

// Pool is a point-in-time snapshot of AVAILABLE resources, grouped by type.
// Officials are kept in rank-priority order; other types keep input order.
type Pool struct {
	byType map[resource.Type][]resource.Resource
}

// NewPool builds a pool from a snapshot. Resources that are not AVAILABLE, or
// whose id appears in exclude, are dropped.
func NewPool(snapshot []resource.Resource, exclude ...[]resource.Resource) *Pool {
	skip := make(map[string]struct{})
	for _, list := range exclude {
		for _, r := range list {
			skip[r.ID] = struct{}{}
		}
	}

	p := &Pool{byType: make(map[resource.Type][]resource.Resource)}
	for _, r := range snapshot {
		if r.Status != resource.StatusAvailable {
			continue
		}
		if _, ok := skip[r.ID]; ok {
			continue
		}
		p.byType[r.Type()] = append(p.byType[r.Type()], r)
	}
	resource.SortOfficialsByRank(p.byType[resource.TypeOfficial])
	return p
}

// Candidates returns unclaimed resources of type t usable by searchID that
// satisfy keep (nil keeps all), in pool order.
func (p *Pool) Candidates(t resource.Type, searchID string, claims *Claims, keep func(resource.Resource) bool) []resource.Resource {
	var out []resource.Resource
	for _, r := range p.byType[t] {
		if claims.IsClaimed(r.ID) || !r.EligibleFor(searchID) {
			continue
		}
		if keep != nil && !keep(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Take claims up to n candidates for premiseID and returns how many were claimed.
func (p *Pool) Take(n int, t resource.Type, searchID, premiseID string, claims *Claims, keep func(resource.Resource) bool) int {
	if n <= 0 {
		return 0
	}
	taken := 0
	for _, r := range p.Candidates(t, searchID, claims, keep) {
		if taken == n {
			break
		}
		if claims.Claim(premiseID, r) {
			taken++
		}
	}
	return taken
}

// TakeFirst claims the first candidate across types, trying types in order.
func (p *Pool) TakeFirst(types []resource.Type, searchID, premiseID string, claims *Claims, keep func(resource.Resource) bool) bool {
	for _, t := range types {
		if p.Take(1, t, searchID, premiseID, claims, keep) == 1 {
			return true
		}
	}
	return false
}

func hasGender(g resource.Gender) func(resource.Resource) bool {
	return func(r resource.Resource) bool { return r.Gender() == g }
}

func isLeader(r resource.Resource) bool { return r.IsLeader() }

func isFemaleIndividual(r resource.Resource) bool { return r.IsFemaleIndividual() }
