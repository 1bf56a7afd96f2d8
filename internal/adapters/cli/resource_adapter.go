package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/primary"
)

// ResourceAdapter translates resource and import subcommands to service calls.
type ResourceAdapter struct {
	service primary.ResourceService
	roster  primary.RosterService
	out     io.Writer
}

// NewResourceAdapter creates a new ResourceAdapter.
func NewResourceAdapter(service primary.ResourceService, roster primary.RosterService, out io.Writer) *ResourceAdapter {
	return &ResourceAdapter{
		service: service,
		roster:  roster,
		out:     out,
	}
}

// List lists resources with optional filters.
func (a *ResourceAdapter) List(ctx context.Context, filters primary.ResourceFilters) error {
	resources, err := a.service.ListResources(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list resources: %w", err)
	}

	if len(resources) == 0 {
		fmt.Fprintln(a.out, "No resources found")
		return nil
	}

	printResources(a.out, resources)
	return nil
}

// Add registers a new resource.
func (a *ResourceAdapter) Add(ctx context.Context, req primary.CreateResourceRequest) error {
	r, err := a.service.CreateResource(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Created %s %s: %s\n", okMark, r.Type, r.ID, r.Name)
	return nil
}

// SetStatus toggles a resource between AVAILABLE and UNAVAILABLE.
func (a *ResourceAdapter) SetStatus(ctx context.Context, resourceID, status string) error {
	var available bool
	switch status {
	case "AVAILABLE":
		available = true
	case "UNAVAILABLE":
	default:
		return errs.Validation("status must be AVAILABLE or UNAVAILABLE, got %q", status)
	}

	if err := a.service.SetAvailability(ctx, resourceID, available); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Resource %s is %s\n", okMark, resourceID, colorStatus(status))
	return nil
}

// ImportFile loads a YAML roster from path and imports it.
func (a *ResourceAdapter) ImportFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read roster: %w", err)
	}
	return a.Import(ctx, data)
}

// Import decodes a YAML roster and imports it in one transaction.
func (a *ResourceAdapter) Import(ctx context.Context, data []byte) error {
	roster, err := ParseRoster(data)
	if err != nil {
		return err
	}

	res, err := a.roster.ImportRoster(ctx, *roster)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Imported %d resource(s) and %d premise(s)\n", okMark, len(res.ResourceIDs), len(res.PremiseIDs))
	return nil
}

// ParseRoster decodes a YAML roster document. Unknown keys are rejected.
func ParseRoster(data []byte) (*primary.Roster, error) {
	var roster primary.Roster
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&roster); err != nil {
		if err == io.EOF {
			return nil, errs.Validation("roster is empty")
		}
		return nil, errs.Validation("invalid roster: %v", err)
	}
	return &roster, nil
}
