package resource

// Rank of an official.
type Rank string

const (
	RankAD        Rank = "AD"
	RankEO        Rank = "EO"
	RankAEO       Rank = "AEO"
	RankDSP       Rank = "DSP"
	RankInspector Rank = "INSPECTOR"
	RankSI        Rank = "SI"
	RankASI       Rank = "ASI"
	RankHC        Rank = "HC"
	RankConstable Rank = "CONSTABLE"
	RankOther     Rank = "OTHER"
)

// rankOrder lists ranks from highest to lowest priority.
var rankOrder = []Rank{
	RankAD, RankEO, RankAEO, RankDSP, RankInspector,
	RankSI, RankASI, RankHC, RankConstable, RankOther,
}

// Priority returns the rank's position, 0 being the highest.
// Unknown ranks sort after OTHER.
func (r Rank) Priority() int {
	for i, candidate := range rankOrder {
		if candidate == r {
			return i
		}
	}
	return len(rankOrder)
}

// IsLeader reports whether the rank may head a premise team (AD or EO).
func (r Rank) IsLeader() bool {
	return r == RankAD || r == RankEO
}

// Valid reports whether r is a known rank.
func (r Rank) Valid() bool {
	return r.Priority() < len(rankOrder)
}
