package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"thumbtrack/internal/catalog"
)

func newRunsCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		limit  int
		source string
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent thumbnail runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			var records []catalog.Record
			if source != "" {
				records, err = store.RunsForSource(cmd.Context(), source)
			} else {
				records, err = store.RecentRuns(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				detail := rec.TrackPath
				if rec.Status == catalog.StatusFailed {
					detail = rec.ErrorMessage
				}
				rows = append(rows, []string{
					rec.CreatedAt.Local().Format(time.DateTime),
					filepath.Base(rec.Source),
					rec.Mode,
					rec.Status,
					fmt.Sprintf("%d", rec.FrameCount),
					(time.Duration(rec.ElapsedMS) * time.Millisecond).String(),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Video", "Mode", "Status", "Frames", "Elapsed", "Detail"},
				rows, 4, 5,
			))
			return nil
		},
	}

	cmd.AddCommand(newRunsClearCommand(cmdCtx))
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Show runs for one source video")
	return cmd
}

func newRunsClearCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the recorded run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Run history cleared")
			return nil
		},
	}
}
