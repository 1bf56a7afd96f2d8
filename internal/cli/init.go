package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/searchops/internal/config"
	"github.com/example/searchops/internal/db"
)

// applyDBPath points the database at the configured path unless
// $SEARCHOPS_DB is set.
func applyDBPath(cfg *config.Config) {
	if cfg.DBPath != "" && os.Getenv(db.EnvDBPath) == "" {
		db.SetPath(cfg.DBPath)
	}
}

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the searchops config and database",
		Long: `Write .searchops/config.json (when absent) and create the database
with the required schema. With --seed a demonstration search is loaded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadOrDefault(configDir)
			if err != nil {
				return err
			}
			if _, err := os.Stat(config.Path(configDir)); os.IsNotExist(err) {
				if err := config.SaveConfig(configDir, cfg); err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ Config written to %s\n", config.Path(configDir))
			}

			applyDBPath(cfg)
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Fprintf(out, "Initializing searchops database at %s\n", dbPath)
			database, err := db.GetDB()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "✓ Database initialized successfully")

			if seed {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed database: %w", err)
				}
				fmt.Fprintln(out, "✓ Demonstration search SRCH-DEMO loaded")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  searchops import roster.yaml")
			fmt.Fprintln(out, "  searchops allocate auto")
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Load demonstration resources and premises")

	return cmd
}
