// Package pipeline orchestrates a full thumbnail run: probe the source,
// plan sample points, extract frames under a bounded pool, assemble the
// sprite sheet or tile set, emit the WebVTT track, and publish everything
// atomically into the output directory.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"thumbtrack/internal/config"
	"thumbtrack/internal/extract"
	"thumbtrack/internal/fileutil"
	"thumbtrack/internal/logging"
	"thumbtrack/internal/media/ffprobe"
	"thumbtrack/internal/plan"
	"thumbtrack/internal/services"
	"thumbtrack/internal/sprite"
	"thumbtrack/internal/vtt"
)

// Caption modes.
const (
	ModeSprite = "sprite"
	ModeTiles  = "tiles"
)

// Options parameterizes a single run.
type Options struct {
	Source   string
	Config   *config.Config
	Logger   *slog.Logger
	Progress func(completed, total int)
}

// Result summarizes a completed run. Artifact paths are absolute.
type Result struct {
	RunID           string
	Source          string
	DurationSeconds float64
	FrameCount      int
	Mode            string
	Layout          plan.Layout
	SpritePath      string
	TilesDir        string
	TrackPath       string
	MetadataPath    string
	Elapsed         time.Duration
}

// Run generates thumbnails for one source video. All intermediate artifacts
// live in a throwaway workspace; the output directory receives either the
// complete artifact set or nothing.
func Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()
	cfg := opts.Config
	if cfg == nil {
		return nil, services.Wrap(services.ErrInvalidInput, "pipeline", "", "configuration is required", nil)
	}

	source, err := config.ExpandPath(opts.Source)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "pipeline", "", "resolve source path", err)
	}
	if info, err := os.Stat(source); err != nil || info.IsDir() {
		return nil, services.Wrap(services.ErrInvalidInput, "pipeline", "",
			fmt.Sprintf("source %q is not a readable file", opts.Source), err)
	}

	runID := uuid.NewString()
	ctx = services.WithRunID(services.WithSource(ctx, source), runID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "pipeline"))

	format, err := sprite.ParseFormat(cfg.Thumbnails.ImageFormat)
	if err != nil {
		return nil, err
	}
	mode := cfg.Thumbnails.CaptionMode
	if mode != ModeSprite && mode != ModeTiles {
		return nil, services.Wrap(services.ErrInvalidInput, "pipeline", "",
			fmt.Sprintf("unknown caption mode %q", mode), nil)
	}

	probe, err := ffprobe.Inspect(ctx, cfg.FFmpeg.FFprobeBinary, source)
	if err != nil {
		return nil, services.Wrap(services.ErrProbeFailed, "probe", "", "inspect source", err)
	}
	if !probe.HasVideo() {
		return nil, services.Wrap(services.ErrProbeFailed, "probe", "", "source has no video stream", nil)
	}
	duration := probe.DurationSeconds()
	if duration <= 0 {
		return nil, services.Wrap(services.ErrProbeFailed, "probe", "", "source reports no duration", nil)
	}

	timestamps, err := plan.Timestamps(duration, cfg.Thumbnails.Interval)
	if err != nil {
		return nil, err
	}
	logger.Info("run planned",
		logging.Float64("duration", duration),
		logging.Int("frames", len(timestamps)),
		logging.String("mode", mode),
	)

	workspace, err := os.MkdirTemp("", "thumbtrack-*")
	if err != nil {
		return nil, services.Wrap(services.ErrWriteFailed, "pipeline", "", "create workspace", err)
	}
	defer func() {
		if err := os.RemoveAll(workspace); err != nil {
			logger.Warn("workspace cleanup failed", logging.Error(err))
		}
	}()

	framePaths, err := extractFrames(ctx, cfg, opts.Progress, logger, source, timestamps, workspace)
	if err != nil {
		return nil, err
	}

	base := SourceBase(source)
	result := &Result{
		RunID:           runID,
		Source:          source,
		DurationSeconds: duration,
		FrameCount:      len(timestamps),
		Mode:            mode,
	}

	var staged []stagedArtifact
	meta := RunMetadata{
		RunID:           runID,
		Source:          source,
		GeneratedAt:     started.UTC(),
		DurationSeconds: duration,
		IntervalSeconds: cfg.Thumbnails.Interval,
		FrameCount:      len(timestamps),
		Mode:            mode,
		ImageFormat:     string(format),
		Timestamps:      timestamps,
	}

	switch mode {
	case ModeSprite:
		layout, err := plan.NewLayout(len(timestamps), cfg.Thumbnails.Columns, cfg.Thumbnails.Rows,
			cfg.Thumbnails.TileWidth, cfg.Thumbnails.TileHeight)
		if err != nil {
			return nil, err
		}
		result.Layout = layout
		meta.Layout = &LayoutMetadata{
			Columns:    layout.Columns,
			Rows:       layout.Rows,
			TileWidth:  layout.TileWidth,
			TileHeight: layout.TileHeight,
		}

		canvas, err := sprite.Compose(framePaths, layout)
		if err != nil {
			return nil, err
		}
		spriteName := SpriteName(base, format)
		stagedSprite := filepath.Join(workspace, spriteName)
		if err := sprite.Save(stagedSprite, canvas, format, cfg.Thumbnails.ImageQuality); err != nil {
			return nil, err
		}
		staged = append(staged, stagedArtifact{path: stagedSprite, name: spriteName})
		meta.Artifacts.Sprite = spriteName
		result.SpritePath = filepath.Join(cfg.Paths.OutputDir, spriteName)

		cues, err := vtt.SpriteCues(timestamps, layout, spriteName)
		if err != nil {
			return nil, err
		}
		if err := stageTrack(&staged, &meta, result, workspace, cfg.Paths.OutputDir, base, cues); err != nil {
			return nil, err
		}

	case ModeTiles:
		tilesName := TilesDirName(base)
		stagedTiles := filepath.Join(workspace, tilesName)
		tilePaths, err := sprite.WriteTiles(framePaths, stagedTiles, format, cfg.Thumbnails.ImageQuality)
		if err != nil {
			return nil, err
		}
		tileNames := make([]string, len(tilePaths))
		for i, path := range tilePaths {
			tileNames[i] = filepath.Base(path)
		}
		staged = append(staged, stagedArtifact{path: stagedTiles, name: tilesName, dir: true})
		meta.Artifacts.TilesDir = tilesName
		result.TilesDir = filepath.Join(cfg.Paths.OutputDir, tilesName)

		cues, err := vtt.TileCues(timestamps, tilesName, tileNames)
		if err != nil {
			return nil, err
		}
		if err := stageTrack(&staged, &meta, result, workspace, cfg.Paths.OutputDir, base, cues); err != nil {
			return nil, err
		}
	}

	meta.ElapsedMS = time.Since(started).Milliseconds()
	metaName := MetadataName(base)
	stagedMeta := filepath.Join(workspace, metaName)
	if err := WriteMetadata(stagedMeta, meta); err != nil {
		return nil, err
	}
	staged = append(staged, stagedArtifact{path: stagedMeta, name: metaName})
	result.MetadataPath = filepath.Join(cfg.Paths.OutputDir, metaName)

	if err := publish(staged, cfg.Paths.OutputDir); err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(started)
	logger.Info("run complete",
		logging.Int("frames", result.FrameCount),
		logging.Duration("elapsed", result.Elapsed),
		logging.String("track", result.TrackPath),
	)
	return result, nil
}

func extractFrames(ctx context.Context, cfg *config.Config, progress func(int, int), logger *slog.Logger, source string, timestamps []float64, workspace string) ([]string, error) {
	extractor := &extract.Extractor{
		Binary:        cfg.FFmpeg.FFmpegBinary,
		HWAccel:       cfg.FFmpeg.HWAccel,
		DecodeQuality: cfg.Thumbnails.DecodeQuality,
		Timeout:       time.Duration(cfg.FFmpeg.ExtractTimeout) * time.Second,
		Logger:        logger,
	}

	jobs := make([]extract.Job, len(timestamps))
	framePaths := make([]string, len(timestamps))
	for i, ts := range timestamps {
		dest := filepath.Join(workspace, fmt.Sprintf("frame_%05d.png", i))
		jobs[i] = extract.Job{Index: i, Timestamp: ts, Dest: dest}
		framePaths[i] = dest
	}

	pool := &extract.Coordinator{Workers: cfg.FFmpeg.Workers, Progress: progress}
	err := pool.Run(ctx, jobs, func(jobCtx context.Context, job extract.Job) error {
		return extractor.Extract(jobCtx, extract.Request{
			Source:    source,
			Timestamp: job.Timestamp,
			Width:     cfg.Thumbnails.TileWidth,
			Height:    cfg.Thumbnails.TileHeight,
			Dest:      job.Dest,
		})
	})
	if err != nil {
		return nil, err
	}
	return framePaths, nil
}

func stageTrack(staged *[]stagedArtifact, meta *RunMetadata, result *Result, workspace, outputDir, base string, cues []vtt.Cue) error {
	trackName := TrackName(base)
	stagedTrack := filepath.Join(workspace, trackName)
	if err := vtt.WriteFile(stagedTrack, cues); err != nil {
		return err
	}
	*staged = append(*staged, stagedArtifact{path: stagedTrack, name: trackName})
	meta.Artifacts.Track = trackName
	result.TrackPath = filepath.Join(outputDir, trackName)
	return nil
}

type stagedArtifact struct {
	path string
	name string
	dir  bool
}

// publish moves every staged artifact into the output directory. If any move
// fails the artifacts already placed are removed again, so a partial set is
// never left behind.
func publish(staged []stagedArtifact, outputDir string) error {
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return services.Wrap(services.ErrWriteFailed, "publish", "", fmt.Sprintf("create output directory %q", outputDir), err)
	}

	var placed []stagedArtifact
	for _, artifact := range staged {
		dest := filepath.Join(outputDir, artifact.name)
		var err error
		if artifact.dir {
			_ = os.RemoveAll(dest)
			err = fileutil.MoveDir(artifact.path, dest)
		} else {
			err = fileutil.MoveFile(artifact.path, dest)
		}
		if err != nil {
			for _, prior := range placed {
				_ = os.RemoveAll(filepath.Join(outputDir, prior.name))
			}
			return services.Wrap(services.ErrWriteFailed, "publish", artifact.name, "place artifact", err)
		}
		placed = append(placed, artifact)
	}
	return nil
}
