package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/searchops/internal/ports/primary"
	"github.com/example/searchops/internal/wire"
)

// PremiseCmd returns the premise command group.
func PremiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "premise",
		Short: "Manage premises and their recce, decision and allocation tracks",
	}
	cmd.AddCommand(premiseCreateCmd())
	cmd.AddCommand(premiseListCmd())
	cmd.AddCommand(premiseShowCmd())
	cmd.AddCommand(premiseRecceCmd())
	cmd.AddCommand(premiseDecideCmd())
	cmd.AddCommand(premiseRequirementsCmd())
	cmd.AddCommand(premiseDoneCmd())
	cmd.AddCommand(premiseTeamCmd())
	return cmd
}

// searchOrDefault falls back to default_search_id from the config.
func searchOrDefault(searchID string) string {
	if searchID != "" {
		return searchID
	}
	return wire.Config().DefaultSearchID
}

func premiseCreateCmd() *cobra.Command {
	var req primary.CreatePremiseRequest

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a premise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Name = args[0]
			req.SearchID = searchOrDefault(req.SearchID)
			req.Nature = strings.ToUpper(req.Nature)
			return wire.PremiseAdapterWithOutput(cmd.OutOrStdout()).Create(commandContext(cmd), req)
		},
	}

	cmd.Flags().StringVar(&req.SearchID, "search", "", "Search ID (defaults to default_search_id)")
	cmd.Flags().StringVar(&req.Address, "address", "", "Premise address")
	cmd.Flags().StringVar(&req.Nature, "nature", "", "RESIDENTIAL, COMMERCIAL, OFFICE, INDUSTRIAL or OTHERS")
	_ = cmd.MarkFlagRequired("nature")

	return cmd
}

func premiseListCmd() *cobra.Command {
	var filters primary.PremiseFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List premises",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters.SearchID = searchOrDefault(filters.SearchID)
			filters.DecisionStatus = strings.ToUpper(filters.DecisionStatus)
			return wire.PremiseAdapterWithOutput(cmd.OutOrStdout()).List(commandContext(cmd), filters)
		},
	}

	cmd.Flags().StringVar(&filters.SearchID, "search", "", "Filter by search")
	cmd.Flags().StringVar(&filters.DecisionStatus, "decision", "", "Filter by decision (PENDING, APPROVED, REJECTED, ON_HOLD)")

	return cmd
}

func premiseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [premise-id]",
		Short: "Show premise details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.PremiseAdapterWithOutput(cmd.OutOrStdout()).Show(commandContext(cmd), args[0])
			return err
		},
	}
}

func premiseRecceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recce [premise-id] [IN_PROGRESS|COMPLETED|COULD_NOT_LOCATE]",
		Short: "Record recce progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PremiseAdapterWithOutput(cmd.OutOrStdout()).Recce(commandContext(cmd), args[0], strings.ToUpper(args[1]))
		},
	}
}

func premiseDecideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decide [premise-id] [APPROVED|REJECTED|ON_HOLD]",
		Short: "Record the decision on a premise",
		Long:  "Approval needs a completed recce. An approved premise with allocations must be released before it can be put on hold or rejected.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PremiseAdapterWithOutput(cmd.OutOrStdout()).Decide(commandContext(cmd), args[0], strings.ToUpper(args[1]))
		},
	}
}

func premiseRequirementsCmd() *cobra.Command {
	var req primary.Requirements

	cmd := &cobra.Command{
		Use:   "requirements [premise-id]",
		Short: "Set the requisition of an approved premise",
		Example: `  searchops premise requirements PREM-001 --male-witness 1 --female-witness 1 \
      --crpf-team 6 --crpf-male 4 --crpf-female 2 --vehicles 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PremiseAdapterWithOutput(cmd.OutOrStdout()).Requirements(commandContext(cmd), args[0], req)
		},
	}

	cmd.Flags().IntVar(&req.MaleWitness, "male-witness", 0, "Male witnesses required")
	cmd.Flags().IntVar(&req.FemaleWitness, "female-witness", 0, "Female witnesses required")
	cmd.Flags().IntVar(&req.CrpfTeamSize, "crpf-team", 0, "Total CRPF personnel required")
	cmd.Flags().IntVar(&req.CrpfMaleCount, "crpf-male", 0, "Male CRPF personnel required")
	cmd.Flags().IntVar(&req.CrpfFemaleCount, "crpf-female", 0, "Female CRPF personnel required")
	cmd.Flags().IntVar(&req.Vehicles, "vehicles", 0, "Vehicles required")

	return cmd
}

func premiseDoneCmd() *cobra.Command {
	var reopen bool

	cmd := &cobra.Command{
		Use:   "done [premise-id]",
		Short: "Mark allocation of a premise as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PremiseAdapterWithOutput(cmd.OutOrStdout()).Done(commandContext(cmd), args[0], reopen)
		},
	}

	cmd.Flags().BoolVar(&reopen, "reopen", false, "Set allocation back to PENDING")

	return cmd
}

func premiseTeamCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "team [premise-id]",
		Short: "Show the resources allocated to a premise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.PremiseAdapterWithOutput(cmd.OutOrStdout()).Team(commandContext(cmd), args[0])
		},
	}
}
