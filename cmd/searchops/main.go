package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/searchops/internal/cli"
	"github.com/example/searchops/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "searchops",
		Short:   "searchops - resource allocation for search operations",
		Version: version.String(),
		Long: `searchops allocates officials, witnesses, drivers and CRPF squads to the
premises of a search, keeping every resource assigned to at most one premise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.BindGlobalFlags(rootCmd)

	// Setup
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	// Registries and allocation
	rootCmd.AddCommand(cli.ResourceCmd())
	rootCmd.AddCommand(cli.PremiseCmd())
	rootCmd.AddCommand(cli.AllocateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
