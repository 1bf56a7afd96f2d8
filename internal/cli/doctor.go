package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/searchops/internal/config"
	"github.com/example/searchops/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the searchops config and database",
		Long: `Health check for searchops.

Validates:
- .searchops/config.json parses and holds a usable policy
- The database opens and its schema is at the latest version

Examples:
  searchops doctor              # Run full health check
  searchops doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgResult, cfg := checkConfig(configDir)
			results := []CheckResult{cfgResult}
			if cfg != nil {
				results = append(results, checkDatabase(cfg))
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				printChecks(cmd.OutOrStdout(), results, hasErrors)
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func printChecks(out io.Writer, results []CheckResult, hasErrors bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, statusIcon(r.Status))
	}
	fmt.Fprintln(out)

	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasErrors {
		fmt.Fprintln(out, "\n⚠ Issues found. Run 'searchops init' to create missing files.")
	} else {
		fmt.Fprintln(out, "All checks passed.")
	}
}

func statusIcon(status string) string {
	switch status {
	case "✓":
		return color.New(color.FgGreen).Sprint(status)
	case "⚠":
		return color.New(color.FgYellow).Sprint(status)
	}
	return color.New(color.FgRed).Sprint(status)
}

// checkConfig validates the config file. A missing file is a warning since
// defaults apply.
func checkConfig(dir string) (CheckResult, *config.Config) {
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}, nil
	}
	if _, err := config.LoadConfig(dir); err != nil {
		return CheckResult{Name: "Config", Status: "⚠", Details: "  No config file, using defaults"}, cfg
	}
	return CheckResult{Name: "Config", Status: "✓"}, cfg
}

// checkDatabase opens the database and compares its schema version.
func checkDatabase(cfg *config.Config) CheckResult {
	applyDBPath(cfg)
	path, err := db.GetDBPath()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}

	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: fmt.Sprintf("  %s: %v", path, err)}
	}

	current, err := db.CurrentVersion(database)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: fmt.Sprintf("  %s: %v", path, err)}
	}
	if latest := db.LatestVersion(); current != latest {
		return CheckResult{
			Name:    "Database",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s is at schema version %d, latest is %d", path, current, latest),
		}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}
