package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/texit/internal/config"
	"github.com/zjrosen/texit/internal/history"
)

var snapshotsLimit int

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List autosave snapshots of unsaved files",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.DefaultHistoryPath())
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer func() { _ = store.Close() }()

		snaps, err := store.ListSnapshots(snapshotsLimit)
		if err != nil {
			return fmt.Errorf("listing snapshots: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(snaps) == 0 {
			fmt.Fprintln(out, "No snapshots recorded.")
			return nil
		}
		for _, s := range snaps {
			fmt.Fprintf(out, "%s  %s  (%s)\n",
				s.CreatedAt.Format("2006-01-02 15:04"), s.Path, s.Source)
		}
		return nil
	},
}

func init() {
	snapshotsCmd.Flags().IntVar(&snapshotsLimit, "limit", 20, "maximum entries to show")
	rootCmd.AddCommand(snapshotsCmd)
}
