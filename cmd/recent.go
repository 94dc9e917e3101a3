package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/texit/internal/config"
	"github.com/zjrosen/texit/internal/history"
)

var recentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened files",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.DefaultHistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer func() { _ = store.Close() }()

		files, err := store.ListRecent(recentLimit)
		if err != nil {
			return fmt.Errorf("listing recent files: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "No recent files.")
			return nil
		}
		for _, f := range files {
			fmt.Fprintf(out, "%s  (opened %d times, last %s)\n",
				f.Path, f.OpenCount, f.LastOpenedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", 10, "maximum entries to show")
	rootCmd.AddCommand(recentCmd)
}
