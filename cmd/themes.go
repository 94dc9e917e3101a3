package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/texit/internal/ui/styles"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in theme presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range styles.PresetNames() {
			marker := " "
			if name == cfg.Theme {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-8s %s\n", marker, name, styles.DisplayName(name))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
}
