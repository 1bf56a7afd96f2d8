// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/searchops/internal/ports/primary"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnText = color.New(color.FgYellow).SprintFunc()
	badText  = color.New(color.FgRed).SprintFunc()
	goodText = color.New(color.FgGreen).SprintFunc()
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// colorStatus highlights resource and premise statuses.
func colorStatus(status string) string {
	switch status {
	case "AVAILABLE", "APPROVED", "COMPLETED", "DONE":
		return goodText(status)
	case "ASSIGNED", "IN_PROGRESS", "ON_HOLD":
		return warnText(status)
	case "UNAVAILABLE", "REJECTED", "COULD_NOT_LOCATE":
		return badText(status)
	}
	return status
}

func printWarnings(out io.Writer, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(out, "  %s %s\n", warnText("!"), w)
	}
}

// describe renders the type-specific detail column of a resource.
func describe(r *primary.Resource) string {
	switch r.Type {
	case "OFFICIAL":
		parts := []string{r.Rank}
		if r.Designation != "" {
			parts = append(parts, r.Designation)
		}
		return strings.Join(parts, ", ")
	case "DRIVER":
		return strings.TrimSpace(r.VehicleType + " " + r.VehicleNumber)
	case "CRPF":
		return fmt.Sprintf("%dM/%dF", r.CrpfMaleCount, r.CrpfFemaleCount)
	}
	return ""
}

func printResources(out io.Writer, resources []*primary.Resource) {
	w := newTable(out)
	fmt.Fprintln(w, "ID\tTYPE\tNAME\tGENDER\tDETAIL\tSTATUS")
	for _, r := range resources {
		gender := r.Gender
		if gender == "" {
			gender = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Type, r.Name, gender, describe(r), colorStatus(r.Status))
	}
	w.Flush()
}

func joinOrDash(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}
