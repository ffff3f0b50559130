package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"thumbtrack/internal/catalog"
	"thumbtrack/internal/config"
	"thumbtrack/internal/logging"
	"thumbtrack/internal/pipeline"
)

func newGenerateCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		interval  int
		columns   int
		rows      int
		width     int
		height    int
		format    string
		quality   int
		mode      string
		output    string
		workers   int
		hwaccel   string
		noCatalog bool
	)

	cmd := &cobra.Command{
		Use:   "generate <video>",
		Short: "Generate a thumbnail sprite and WebVTT track for one video",
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
			applyOverride(&runCfg.Thumbnails.Interval, interval)
			applyOverride(&runCfg.Thumbnails.Columns, columns)
			if cmd.Flags().Changed("rows") {
				runCfg.Thumbnails.Rows = rows
			}
			applyOverride(&runCfg.Thumbnails.TileWidth, width)
			applyOverride(&runCfg.Thumbnails.TileHeight, height)
			applyOverride(&runCfg.Thumbnails.ImageQuality, quality)
			applyOverride(&runCfg.FFmpeg.Workers, workers)
			if format != "" {
				normalized := strings.ToLower(strings.TrimSpace(format))
				if normalized == "jpeg" {
					normalized = "jpg"
				}
				runCfg.Thumbnails.ImageFormat = normalized
			}
			if mode != "" {
				runCfg.Thumbnails.CaptionMode = strings.ToLower(strings.TrimSpace(mode))
			}
			if cmd.Flags().Changed("hwaccel") {
				runCfg.FFmpeg.HWAccel = hwaccel
			}
			if output != "" {
				expanded, err := config.ExpandPath(output)
				if err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
				runCfg.Paths.OutputDir = expanded
			}
			if err := runCfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			progress, finish := newExtractionProgress("extracting frames")
			result, runErr := pipeline.Run(ctx, pipeline.Options{
				Source:   args[0],
				Config:   &runCfg,
				Logger:   logger,
				Progress: progress,
			})
			finish()

			if !noCatalog {
				recordRun(context.Background(), &runCfg, logger, args[0], result, runErr)
			}
			if runErr != nil {
				return runErr
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated %d thumbnails from %s in %s\n",
				result.FrameCount, result.Source, result.Elapsed.Round(10*time.Millisecond))
			if result.SpritePath != "" {
				fmt.Fprintf(out, "  sprite: %s\n", result.SpritePath)
			}
			if result.TilesDir != "" {
				fmt.Fprintf(out, "  tiles:  %s\n", result.TilesDir)
			}
			fmt.Fprintf(out, "  track:  %s\n", result.TrackPath)
			fmt.Fprintf(out, "  meta:   %s\n", result.MetadataPath)
			return nil
		},
	}

	cmd.Flags().IntVarP(&interval, "interval", "i", 0, "Seconds between thumbnails")
	cmd.Flags().IntVar(&columns, "columns", 0, "Sprite grid columns")
	cmd.Flags().IntVar(&rows, "rows", 0, "Sprite grid rows (0 derives from frame count)")
	cmd.Flags().IntVar(&width, "width", 0, "Thumbnail width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Thumbnail height in pixels")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Image format (webp, jpg, png)")
	cmd.Flags().IntVarP(&quality, "quality", "q", 0, "Image encode quality (1-100)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Caption mode (sprite or tiles)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory override")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent ffmpeg invocations")
	cmd.Flags().StringVar(&hwaccel, "hwaccel", "", "Hardware acceleration hint passed to ffmpeg")
	cmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "Skip recording the run in the catalog")
	return cmd
}

func applyOverride(target *int, value int) {
	if value > 0 {
		*target = value
	}
}

// recordRun appends the run to the catalog. History is best effort; a catalog
// problem never fails the run that produced real artifacts.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, source string, result *pipeline.Result, runErr error) {
	store, err := catalog.Open(cfg)
	if err != nil {
		logger.Warn("catalog unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	rec := catalog.Record{Source: source, Status: catalog.StatusCompleted}
	if result != nil {
		rec.RunID = result.RunID
		rec.Source = result.Source
		rec.Mode = result.Mode
		rec.FrameCount = result.FrameCount
		rec.DurationSeconds = result.DurationSeconds
		rec.TrackPath = result.TrackPath
		rec.SpritePath = result.SpritePath
		rec.TilesDir = result.TilesDir
		rec.ElapsedMS = result.Elapsed.Milliseconds()
	}
	if runErr != nil {
		rec.Status = catalog.StatusFailed
		rec.ErrorMessage = runErr.Error()
		rec.Mode = cfg.Thumbnails.CaptionMode
	}
	if _, err := store.RecordRun(ctx, rec); err != nil {
		logger.Warn("catalog record failed", logging.Error(err))
	}
}
