package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/searchops/internal/ports/primary"
)

// PremiseAdapter translates premise subcommands to PremiseService calls.
type PremiseAdapter struct {
	service     primary.PremiseService
	allocations primary.AllocationService
	out         io.Writer
}

// NewPremiseAdapter creates a new PremiseAdapter. The allocation service
// backs the team view.
func NewPremiseAdapter(service primary.PremiseService, allocations primary.AllocationService, out io.Writer) *PremiseAdapter {
	return &PremiseAdapter{
		service:     service,
		allocations: allocations,
		out:         out,
	}
}

// Create creates a new premise.
func (a *PremiseAdapter) Create(ctx context.Context, req primary.CreatePremiseRequest) error {
	p, err := a.service.CreatePremise(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Created premise %s: %s\n", okMark, p.ID, p.Name)
	return nil
}

// List lists premises with optional filters.
func (a *PremiseAdapter) List(ctx context.Context, filters primary.PremiseFilters) error {
	premises, err := a.service.ListPremises(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list premises: %w", err)
	}

	if len(premises) == 0 {
		fmt.Fprintln(a.out, "No premises found")
		return nil
	}

	w := newTable(a.out)
	fmt.Fprintln(w, "ID\tSEARCH\tNAME\tNATURE\tRECCE\tDECISION\tALLOCATION")
	for _, p := range premises {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.SearchID, p.Name, p.Nature,
			colorStatus(p.RecceStatus), colorStatus(p.DecisionStatus), colorStatus(p.AllocationStatus))
	}
	w.Flush()
	return nil
}

// Show displays details for a single premise.
func (a *PremiseAdapter) Show(ctx context.Context, premiseID string) (*primary.Premise, error) {
	p, err := a.service.GetPremise(ctx, premiseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get premise: %w", err)
	}

	fmt.Fprintf(a.out, "\nPremise:    %s\n", p.ID)
	fmt.Fprintf(a.out, "Search:     %s\n", p.SearchID)
	fmt.Fprintf(a.out, "Name:       %s\n", p.Name)
	if p.Address != "" {
		fmt.Fprintf(a.out, "Address:    %s\n", p.Address)
	}
	fmt.Fprintf(a.out, "Nature:     %s\n", p.Nature)
	fmt.Fprintf(a.out, "Recce:      %s\n", colorStatus(p.RecceStatus))
	fmt.Fprintf(a.out, "Decision:   %s\n", colorStatus(p.DecisionStatus))
	fmt.Fprintf(a.out, "Allocation: %s\n", colorStatus(p.AllocationStatus))
	if r := p.Requirements; r != nil {
		fmt.Fprintln(a.out, "Requirements:")
		fmt.Fprintf(a.out, "  witnesses: %d male, %d female\n", r.MaleWitness, r.FemaleWitness)
		fmt.Fprintf(a.out, "  crpf:      team of %d (%d male, %d female)\n", r.CrpfTeamSize, r.CrpfMaleCount, r.CrpfFemaleCount)
		fmt.Fprintf(a.out, "  vehicles:  %d\n", r.Vehicles)
	} else {
		fmt.Fprintf(a.out, "Requirements: %s\n", warnText("(not set)"))
	}
	fmt.Fprintln(a.out)

	return p, nil
}

// Recce moves the recce track of a premise.
func (a *PremiseAdapter) Recce(ctx context.Context, premiseID, status string) error {
	if err := a.service.SetRecceStatus(ctx, premiseID, status); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Premise %s recce %s\n", okMark, premiseID, status)
	return nil
}

// Decide records the decision on a premise.
func (a *PremiseAdapter) Decide(ctx context.Context, premiseID, decision string) error {
	if err := a.service.SetDecision(ctx, premiseID, decision); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Premise %s decision %s\n", okMark, premiseID, decision)
	return nil
}

// Requirements replaces the requisition of a premise.
func (a *PremiseAdapter) Requirements(ctx context.Context, premiseID string, req primary.Requirements) error {
	if err := a.service.UpdateRequirements(ctx, premiseID, req); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Premise %s requirements updated\n", okMark, premiseID)
	return nil
}

// Done marks allocation of a premise DONE, or back to PENDING when reopen is set.
func (a *PremiseAdapter) Done(ctx context.Context, premiseID string, reopen bool) error {
	status := "DONE"
	if reopen {
		status = "PENDING"
	}
	if err := a.service.SetAllocationStatus(ctx, premiseID, status); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Premise %s allocation %s\n", okMark, premiseID, status)
	return nil
}

// Team prints the resources allocated to a premise and its shortfalls.
func (a *PremiseAdapter) Team(ctx context.Context, premiseID string) error {
	team, err := a.allocations.GetTeam(ctx, premiseID)
	if err != nil {
		return err
	}

	if len(team.Members) == 0 {
		fmt.Fprintf(a.out, "No resources allocated to %s\n", premiseID)
	} else {
		fmt.Fprintf(a.out, "\nTeam for %s (%d):\n", premiseID, len(team.Members))
		printResources(a.out, team.Members)
	}
	if len(team.Warnings) > 0 {
		fmt.Fprintln(a.out, "\nShortfalls:")
		printWarnings(a.out, team.Warnings)
	}
	return nil
}
