package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/searchops/internal/ctxutil"
	"github.com/example/searchops/internal/wire"
)

var (
	configDir string
	operator  string
)

// BindGlobalFlags adds the flags every subcommand shares and points the
// service wiring at the chosen config directory before any command runs.
func BindGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory containing .searchops/config.json")
	root.PersistentFlags().StringVar(&operator, "operator", os.Getenv("USER"), "Name recorded as the operator of changes")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		wire.SetConfigDir(configDir)
	}
}

// commandContext returns the command's context carrying the operator.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctxutil.WithOperator(ctx, operator)
}
