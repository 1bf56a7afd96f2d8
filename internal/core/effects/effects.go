// Package effects defines effect types as data structures representing I/O operations.
// Planners and services describe what should happen; the executor decides how.
package effects

import "github.com/example/searchops/internal/core/allocation"

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// AllocateEffect creates allocations for a premise and flips each resource
// from AVAILABLE to ASSIGNED.
type AllocateEffect struct {
	PremiseID   string
	ResourceIDs []string
	Source      string // auto, sync, manual
}

func (e AllocateEffect) EffectType() string { return "allocate" }

// ReleaseEffect deletes allocations for a premise and returns each released
// resource to AVAILABLE.
type ReleaseEffect struct {
	PremiseID   string
	ResourceIDs []string
}

func (e ReleaseEffect) EffectType() string { return "release" }

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }

// Allocation sources recorded on the ledger.
const (
	SourceAuto   = "auto"
	SourceSync   = "sync"
	SourceManual = "manual"
)

// FromPairs groups pairs into one AllocateEffect per premise, keeping the
// order in which each premise first appears.
func FromPairs(source string, pairs []allocation.Pair) []Effect {
	var order []string
	grouped := make(map[string][]string)
	for _, p := range pairs {
		if _, seen := grouped[p.PremiseID]; !seen {
			order = append(order, p.PremiseID)
		}
		grouped[p.PremiseID] = append(grouped[p.PremiseID], p.ResourceID)
	}

	out := make([]Effect, 0, len(order))
	for _, id := range order {
		out = append(out, AllocateEffect{PremiseID: id, ResourceIDs: grouped[id], Source: source})
	}
	return out
}

// SyncPlan returns the effects of a manual sync: releases first, then additions.
// Empty lists produce no effect.
func SyncPlan(premiseID string, add, remove []string, source string) []Effect {
	var out []Effect
	if len(remove) > 0 {
		out = append(out, ReleaseEffect{PremiseID: premiseID, ResourceIDs: remove})
	}
	if len(add) > 0 {
		out = append(out, AllocateEffect{PremiseID: premiseID, ResourceIDs: add, Source: source})
	}
	return out
}

// Count returns the number of resources each kind of effect touches,
// descending into composites.
func Count(effs []Effect) (allocated, released int) {
	for _, eff := range effs {
		switch e := eff.(type) {
		case AllocateEffect:
			allocated += len(e.ResourceIDs)
		case ReleaseEffect:
			released += len(e.ResourceIDs)
		case CompositeEffect:
			a, r := Count(e.Effects)
			allocated += a
			released += r
		}
	}
	return allocated, released
}
