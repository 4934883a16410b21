package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	outDir     string
	outputJSON bool
)

// Execute runs the root cobra command.
func Execute() {
	_ = godotenv.Load() // best-effort: load .env if present
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipmerge",
		Short: "Merge video clips with normalization and transitions",
	}

	cmd.PersistentFlags().StringVar(&outDir, "out-dir", "", "Working directory for config, logs, and default output")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")

	cmd.AddCommand(newMergeCmd())
	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newProbeCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}
