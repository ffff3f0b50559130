package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"thumbtrack/internal/batch"
	"thumbtrack/internal/config"
	"thumbtrack/internal/pipeline"
	"thumbtrack/internal/services"
)

func newBatchCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		extensions []string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Generate thumbnails for every video under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			runCfg := *cfg
			if output != "" {
				expanded, err := config.ExpandPath(output)
				if err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
				runCfg.Paths.OutputDir = expanded
			}
			cfg = &runCfg

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := &batch.Runner{
				Config:     cfg,
				Logger:     logger,
				Extensions: extensions,
				Process: func(ctx context.Context, source string) (*pipeline.Result, error) {
					progress, finish := newExtractionProgress(filepath.Base(source))
					result, err := pipeline.Run(ctx, pipeline.Options{
						Source:   source,
						Config:   cfg,
						Logger:   logger,
						Progress: progress,
					})
					finish()
					recordRun(context.Background(), cfg, logger, source, result, err)
					return result, err
				},
			}

			summary, runErr := runner.Run(ctx, args[0])
			if summary != nil && len(summary.Outcomes) > 0 {
				printSweepSummary(cmd, summary)
			}
			if runErr != nil {
				return runErr
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d videos failed", summary.Failed, len(summary.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&extensions, "extensions", "e", nil,
		"Video extensions to include (defaults to mp4, webm, mov, mkv, avi)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory override")
	return cmd
}

func printSweepSummary(cmd *cobra.Command, summary *batch.Summary) {
	rows := make([][]string, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		status := "ok"
		detail := ""
		frames := ""
		if outcome.Err != nil {
			status = services.Label(outcome.Err)
			detail = outcome.Err.Error()
		} else if outcome.Result != nil {
			frames = fmt.Sprintf("%d", outcome.Result.FrameCount)
			detail = outcome.Result.TrackPath
		}
		rows = append(rows, []string{
			filepath.Base(outcome.Source),
			status,
			frames,
			outcome.Elapsed.Round(10 * time.Millisecond).String(),
			detail,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Video", "Status", "Frames", "Elapsed", "Detail"},
		rows, 2, 3,
	))
	fmt.Fprintf(out, "%d succeeded, %d failed in %s\n",
		summary.Succeeded, summary.Failed, summary.Elapsed.Round(10*time.Millisecond))
}
