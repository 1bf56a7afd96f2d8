package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/example/searchops/internal/ports/primary"
)

// AllocationAdapter translates allocate subcommands to AllocationService calls.
type AllocationAdapter struct {
	service primary.AllocationService
	out     io.Writer
}

// NewAllocationAdapter creates a new AllocationAdapter with the given service.
func NewAllocationAdapter(service primary.AllocationService, out io.Writer) *AllocationAdapter {
	return &AllocationAdapter{
		service: service,
		out:     out,
	}
}

// Suggest prints the proposed additions for a premise. With apply set the
// suggestion is committed through a sync.
func (a *AllocationAdapter) Suggest(ctx context.Context, premiseID string, apply bool) error {
	s, err := a.service.SuggestAllocation(ctx, premiseID)
	if err != nil {
		return err
	}

	if len(s.Suggested) == 0 {
		fmt.Fprintf(a.out, "No additional resources suggested for %s\n", premiseID)
	} else {
		fmt.Fprintf(a.out, "\nSuggested for %s:\n", premiseID)
		printResources(a.out, s.Suggested)
	}
	if len(s.Warnings) > 0 {
		fmt.Fprintln(a.out, "\nWarnings:")
		printWarnings(a.out, s.Warnings)
	}

	if !apply || len(s.SuggestedIDs) == 0 {
		return nil
	}
	return a.Sync(ctx, premiseID, s.SuggestedIDs, nil)
}

// Auto runs the bulk auto-assign and prints a per-premise summary.
func (a *AllocationAdapter) Auto(ctx context.Context) error {
	res, err := a.service.AutoAssign(ctx)
	if err != nil {
		return err
	}

	if res.NoEligiblePremises {
		fmt.Fprintln(a.out, "No approved premises to allocate")
		return nil
	}

	fmt.Fprintf(a.out, "%s Auto-assign processed %d premise(s), created %d allocation(s)", okMark, res.Processed, res.Created)
	if res.Attempts > 1 {
		fmt.Fprintf(a.out, " after %d attempts", res.Attempts)
	}
	fmt.Fprintln(a.out)

	if len(res.WithoutRequirements) > 0 {
		fmt.Fprintf(a.out, "Planned without requirements: %s\n", joinOrDash(res.WithoutRequirements))
	}

	ids := make([]string, 0, len(res.Warnings))
	for id := range res.Warnings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(a.out, "\n%s:\n", id)
		printWarnings(a.out, res.Warnings[id])
	}
	return nil
}

// Sync adds and removes allocations of a premise in one transaction.
func (a *AllocationAdapter) Sync(ctx context.Context, premiseID string, add, remove []string) error {
	res, err := a.service.SyncAllocations(ctx, primary.SyncRequest{
		PremiseID: premiseID,
		Add:       add,
		Remove:    remove,
	})
	if err != nil {
		return err
	}

	a.printSync(res)
	return nil
}

// Add allocates one resource to a premise.
func (a *AllocationAdapter) Add(ctx context.Context, premiseID, resourceID string) error {
	res, err := a.service.AllocateResource(ctx, primary.AllocateResourceRequest{
		PremiseID:  premiseID,
		ResourceID: resourceID,
	})
	if err != nil {
		return err
	}

	a.printSync(res)
	return nil
}

// Release frees every resource allocated to a premise.
func (a *AllocationAdapter) Release(ctx context.Context, premiseID string) error {
	res, err := a.service.ReleasePremise(ctx, premiseID)
	if err != nil {
		return err
	}

	if len(res.Removed) == 0 {
		fmt.Fprintf(a.out, "Premise %s has no allocations\n", premiseID)
		return nil
	}
	fmt.Fprintf(a.out, "%s Released %d resource(s) from %s: %s\n", okMark, len(res.Removed), premiseID, joinOrDash(res.Removed))
	return nil
}

func (a *AllocationAdapter) printSync(res *primary.SyncResult) {
	fmt.Fprintf(a.out, "%s Synced %s\n", okMark, res.PremiseID)
	fmt.Fprintf(a.out, "  added:   %s\n", joinOrDash(res.Added))
	fmt.Fprintf(a.out, "  removed: %s\n", joinOrDash(res.Removed))
}
