// Package allocation contains the pure allocation planners: the single-premise
// suggestion and the multi-pass auto-assignment. Planners never write; they
// return proposals that the application layer commits.
// This is part of the Functional Core - no I/O, only pure functions.
package allocation

import "github.com/example/searchops/internal/core/resource"

// Pair links one premise to one resource.
type Pair struct {
	PremiseID  string
	ResourceID string
}

// Claims is the ownership map of one planning run: resourceID -> premiseID.
// A resource can be claimed at most once per run.
type Claims struct {
	owner     map[string]string
	byPremise map[string][]resource.Resource
	order     []Pair
}

// NewClaims returns an empty ownership map.
func NewClaims() *Claims {
	return &Claims{
		owner:     make(map[string]string),
		byPremise: make(map[string][]resource.Resource),
	}
}

// Claim records r for premiseID. Returns false if r is already owned.
func (c *Claims) Claim(premiseID string, r resource.Resource) bool {
	if _, taken := c.owner[r.ID]; taken {
		return false
	}
	c.owner[r.ID] = premiseID
	c.byPremise[premiseID] = append(c.byPremise[premiseID], r)
	c.order = append(c.order, Pair{PremiseID: premiseID, ResourceID: r.ID})
	return true
}

// Owner returns the premise that claimed resourceID.
func (c *Claims) Owner(resourceID string) (string, bool) {
	p, ok := c.owner[resourceID]
	return p, ok
}

// IsClaimed reports whether resourceID has an owner in this run.
func (c *Claims) IsClaimed(resourceID string) bool {
	_, ok := c.owner[resourceID]
	return ok
}

// ForPremise returns the resources claimed for premiseID in claim order.
func (c *Claims) ForPremise(premiseID string) []resource.Resource {
	return c.byPremise[premiseID]
}

// IDsForPremise returns the ids claimed for premiseID in claim order.
func (c *Claims) IDsForPremise(premiseID string) []string {
	claimed := c.byPremise[premiseID]
	ids := make([]string, len(claimed))
	for i, r := range claimed {
		ids[i] = r.ID
	}
	return ids
}

// Pairs returns every claim in the order it was made.
func (c *Claims) Pairs() []Pair {
	out := make([]Pair, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of claims.
func (c *Claims) Len() int { return len(c.order) }
