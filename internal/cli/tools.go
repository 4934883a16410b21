package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"clipmerge/internal/tools"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Show status of required external tools",
		RunE:  runTools,
	}
	return cmd
}

func runTools(cmd *cobra.Command, _ []string) error {
	statuses := tools.Detect(cmd.Context(), nil)

	if outputJSON {
		data, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printStatusTable(cmd, statuses)

	for _, st := range statuses {
		if st.Error != "" {
			return fmt.Errorf("%s is not usable", st.Tool)
		}
	}
	return nil
}

func printStatusTable(cmd *cobra.Command, statuses []tools.Status) {
	if len(statuses) == 0 {
		cmd.Println("(no tool statuses)")
		return
	}

	rows := make([]tools.Status, len(statuses))
	copy(rows, statuses)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Tool < rows[j].Tool
	})

	cmd.Printf("%-10s %-14s %s\n", "Tool", "Version", "Path")
	for _, st := range rows {
		path := st.Path
		if path == "" {
			path = "(missing)"
		}
		version := st.Version
		if version == "" {
			version = "-"
		}
		cmd.Printf("%-10s %-14s %s\n", st.Tool, version, path)
		if st.Error != "" {
			cmd.Printf("  error: %s\n", st.Error)
		}
	}
}
