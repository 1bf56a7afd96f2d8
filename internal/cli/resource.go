package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/searchops/internal/ports/primary"
	"github.com/example/searchops/internal/wire"
)

// ResourceCmd returns the resource command group.
func ResourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage the resource pool (officials, witnesses, drivers, CRPF squads)",
	}
	cmd.AddCommand(resourceListCmd())
	cmd.AddCommand(resourceAddCmd())
	cmd.AddCommand(resourceSetStatusCmd())
	return cmd
}

func resourceListCmd() *cobra.Command {
	var filters primary.ResourceFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.Type = strings.ToUpper(filters.Type)
			filters.Status = strings.ToUpper(filters.Status)
			return wire.ResourceAdapterWithOutput(cmd.OutOrStdout()).List(commandContext(cmd), filters)
		},
	}

	cmd.Flags().StringVar(&filters.Type, "type", "", "Filter by type (OFFICIAL, WITNESS, DRIVER, CRPF)")
	cmd.Flags().StringVar(&filters.Status, "status", "", "Filter by status (AVAILABLE, ASSIGNED, UNAVAILABLE)")
	cmd.Flags().StringVar(&filters.SearchID, "search", "", "Only resources usable by this search")

	return cmd
}

func resourceAddCmd() *cobra.Command {
	var req primary.CreateResourceRequest

	cmd := &cobra.Command{
		Use:   "add [type] [name]",
		Short: "Register a resource",
		Long: `Register a resource of type OFFICIAL, WITNESS, DRIVER or CRPF.

Examples:
  searchops resource add OFFICIAL "A. Sharma" --gender MALE --rank AD
  searchops resource add WITNESS "L. Das" --gender FEMALE --phone 9800000002
  searchops resource add DRIVER "B. Singh" --gender MALE --vehicle-type SUV --vehicle-number DL01AB1234
  searchops resource add CRPF "Alpha section" --male 6 --female 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Type = strings.ToUpper(args[0])
			req.Name = args[1]
			req.Gender = strings.ToUpper(req.Gender)
			req.Rank = strings.ToUpper(req.Rank)
			return wire.ResourceAdapterWithOutput(cmd.OutOrStdout()).Add(commandContext(cmd), req)
		},
	}

	cmd.Flags().StringVar(&req.Gender, "gender", "", "MALE, FEMALE or OTHER")
	cmd.Flags().StringVar(&req.Rank, "rank", "", "Official rank (AD, EO, AEO, DSP, INSPECTOR, SI, ASI, HC, CONSTABLE, OTHER)")
	cmd.Flags().StringVar(&req.Designation, "designation", "", "Official designation")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Contact number")
	cmd.Flags().StringVar(&req.VehicleType, "vehicle-type", "", "Driver vehicle type")
	cmd.Flags().StringVar(&req.VehicleNumber, "vehicle-number", "", "Driver vehicle registration")
	cmd.Flags().IntVar(&req.CrpfMaleCount, "male", 0, "CRPF squad male personnel")
	cmd.Flags().IntVar(&req.CrpfFemaleCount, "female", 0, "CRPF squad female personnel")
	cmd.Flags().StringVar(&req.SearchID, "search", "", "Restrict the resource to one search")
	cmd.Flags().BoolVar(&req.Unavailable, "unavailable", false, "Register as UNAVAILABLE")

	return cmd
}

func resourceSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status [resource-id] [AVAILABLE|UNAVAILABLE]",
		Short: "Mark a resource available or unavailable",
		Long:  "Toggle a resource that is not allocated. ASSIGNED resources change only through allocation.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ResourceAdapterWithOutput(cmd.OutOrStdout()).SetStatus(commandContext(cmd), args[0], strings.ToUpper(args[1]))
		},
	}
}
