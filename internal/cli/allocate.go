package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/searchops/internal/wire"
)

// AllocateCmd returns the allocate command group.
func AllocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Suggest, assign and release resources for premises",
	}
	cmd.AddCommand(allocateSuggestCmd())
	cmd.AddCommand(allocateApplyCmd())
	cmd.AddCommand(allocateAutoCmd())
	cmd.AddCommand(allocateSyncCmd())
	cmd.AddCommand(allocateAddCmd())
	cmd.AddCommand(allocateReleaseCmd())
	return cmd
}

func allocateSuggestCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "suggest [premise-id]",
		Short: "Suggest resources to add to a premise",
		Long:  "Propose additions that close the premise's shortfalls. Nothing is written unless --apply is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AllocationAdapterWithOutput(cmd.OutOrStdout()).Suggest(commandContext(cmd), args[0], apply)
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Commit the suggestion")

	return cmd
}

func allocateApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply [premise-id]",
		Short: "Compute and commit a suggestion for a premise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AllocationAdapterWithOutput(cmd.OutOrStdout()).Suggest(commandContext(cmd), args[0], true)
		},
	}
}

func allocateAutoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auto",
		Short: "Allocate the available pool across every approved premise",
		Long: `Run the bulk auto-assign over all APPROVED premises. Existing
allocations are kept. Premises without requirements are planned against
an empty requisition, so they still get a leader and the minimum officials.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AllocationAdapterWithOutput(cmd.OutOrStdout()).Auto(commandContext(cmd))
		},
	}
}

func allocateSyncCmd() *cobra.Command {
	var add, remove []string

	cmd := &cobra.Command{
		Use:     "sync [premise-id]",
		Short:   "Add and remove allocations of a premise in one step",
		Example: `  searchops allocate sync PREM-001 --add RES-006,RES-007 --remove RES-009`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AllocationAdapterWithOutput(cmd.OutOrStdout()).Sync(commandContext(cmd), args[0], add, remove)
		},
	}

	cmd.Flags().StringSliceVar(&add, "add", nil, "Resource IDs to allocate")
	cmd.Flags().StringSliceVar(&remove, "remove", nil, "Resource IDs to release")

	return cmd
}

func allocateAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [premise-id] [resource-id]",
		Short: "Allocate one resource to a premise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AllocationAdapterWithOutput(cmd.OutOrStdout()).Add(commandContext(cmd), args[0], args[1])
		},
	}
}

func allocateReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release [premise-id]",
		Short: "Release every resource allocated to a premise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AllocationAdapterWithOutput(cmd.OutOrStdout()).Release(commandContext(cmd), args[0])
		},
	}
}
