package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/searchops/internal/wire"
)

// ImportCmd returns the roster import command.
func ImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [roster.yaml]",
		Short: "Import resources and premises from a YAML roster",
		Long: `Import a YAML roster in one transaction. Nothing is written if any
entry is invalid.

Example roster:
  resources:
    - type: OFFICIAL
      name: A. Sharma
      gender: MALE
      rank: AD
    - type: CRPF
      name: Alpha section
      crpfMaleCount: 6
      crpfFemaleCount: 2
  premises:
    - searchId: SRCH-001
      name: Registered office
      nature: OFFICE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.ResourceAdapterWithOutput(cmd.OutOrStdout()).ImportFile(commandContext(cmd), args[0])
		},
	}
}
