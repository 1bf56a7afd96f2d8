package allocation

import (
	"sort"

	"github.com/example/searchops/internal/core/resource"
)

// SquadNeed is the remaining CRPF shortfall. Values at or below zero are met.
type SquadNeed struct {
	Male   int
	Female int
	Total  int
}

// Met reports whether every component is satisfied.
func (n SquadNeed) Met() bool {
	return n.Male <= 0 && n.Female <= 0 && n.Total <= 0
}

// After returns the need left once squad s is added.
func (n SquadNeed) After(s resource.CrpfDetails) SquadNeed {
	return SquadNeed{
		Male:   n.Male - s.MaleCount,
		Female: n.Female - s.FemaleCount,
		Total:  n.Total - s.Strength(),
	}
}

// Gap is the headcount still missing, used as the closest-fit target.
func (n SquadNeed) Gap() int {
	return max(n.Total, max(n.Male, 0)+max(n.Female, 0), 0)
}

// Covers reports whether squad s alone satisfies the need.
func (n SquadNeed) Covers(s resource.CrpfDetails) bool {
	return n.After(s).Met()
}

// Helps reports whether squad s reduces an unmet component.
func (n SquadNeed) Helps(s resource.CrpfDetails) bool {
	return (n.Total > 0 && s.Strength() > 0) ||
		(n.Male > 0 && s.MaleCount > 0) ||
		(n.Female > 0 && s.FemaleCount > 0)
}

// squadOf returns the squad details; non-squads count as empty.
func squadOf(r resource.Resource) resource.CrpfDetails {
	d, _ := r.Squad()
	return d
}

// SmallestCoveringSquad returns the index of the smallest squad that alone
// meets need, or -1 if none does. Equal sizes keep input order.
func SmallestCoveringSquad(squads []resource.Resource, need SquadNeed) int {
	best := -1
	for i, r := range squads {
		s := squadOf(r)
		if !need.Covers(s) {
			continue
		}
		if best == -1 || s.Strength() < squadOf(squads[best]).Strength() {
			best = i
		}
	}
	return best
}

// AccumulateAscending picks squads smallest first until need is met or the
// squads run out. Squads that reduce no unmet component are skipped.
// Returns indices into squads in pick order.
func AccumulateAscending(squads []resource.Resource, need SquadNeed) []int {
	order := make([]int, len(squads))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return squadOf(squads[order[a]]).Strength() < squadOf(squads[order[b]]).Strength()
	})

	var picked []int
	for _, i := range order {
		if need.Met() {
			break
		}
		s := squadOf(squads[i])
		if !need.Helps(s) {
			continue
		}
		picked = append(picked, i)
		need = need.After(s)
	}
	return picked
}

// ClosestFitSquad returns the index of the squad whose strength has the
// smallest absolute difference from gap. Ties go to the larger squad, then to
// input order. Returns -1 for an empty slice.
func ClosestFitSquad(squads []resource.Resource, gap int) int {
	best := -1
	bestDiff, bestSize := 0, 0
	for i, r := range squads {
		size := squadOf(r).Strength()
		diff := abs(size - gap)
		if best == -1 || diff < bestDiff || (diff == bestDiff && size > bestSize) {
			best, bestDiff, bestSize = i, diff, size
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
