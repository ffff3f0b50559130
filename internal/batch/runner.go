// Package batch generates thumbnails for every video under a directory,
// isolating failures so one broken source never stops the sweep.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"thumbtrack/internal/config"
	"thumbtrack/internal/fileutil"
	"thumbtrack/internal/logging"
	"thumbtrack/internal/pipeline"
	"thumbtrack/internal/services"
)

// Runner sweeps a directory tree. Process defaults to the full pipeline; tests
// swap it out.
type Runner struct {
	Config     *config.Config
	Logger     *slog.Logger
	Extensions []string
	Process    func(ctx context.Context, source string) (*pipeline.Result, error)
}

// Outcome records one source's fate within a sweep.
type Outcome struct {
	Source  string
	Result  *pipeline.Result
	Err     error
	Elapsed time.Duration
}

// Summary aggregates a completed sweep.
type Summary struct {
	Root      string
	Outcomes  []Outcome
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// Run discovers videos under root and processes them one at a time. A per-host
// file lock keeps concurrent sweeps from racing over the same output
// directory. Individual failures are recorded and skipped; Run itself only
// fails when the sweep cannot proceed at all.
func (r *Runner) Run(ctx context.Context, root string) (*Summary, error) {
	started := time.Now()
	if r.Config == nil {
		return nil, services.Wrap(services.ErrInvalidInput, "batch", "", "configuration is required", nil)
	}
	logger := logging.NewComponentLogger(r.Logger, "batch")

	root, err := config.ExpandPath(root)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "batch", "", "resolve root path", err)
	}

	release, err := r.acquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	videos, err := FindVideos(root, r.Extensions)
	if err != nil {
		return nil, err
	}
	logger.Info("sweep planned", logging.String("root", root), logging.Int("videos", len(videos)))

	process := r.Process
	if process == nil {
		process = func(ctx context.Context, source string) (*pipeline.Result, error) {
			return pipeline.Run(ctx, pipeline.Options{Source: source, Config: r.Config, Logger: r.Logger})
		}
	}

	summary := &Summary{Root: root}
	for _, source := range videos {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		videoStart := time.Now()
		result, err := process(ctx, source)
		outcome := Outcome{Source: source, Result: result, Err: err, Elapsed: time.Since(videoStart)}
		summary.Outcomes = append(summary.Outcomes, outcome)
		if err != nil {
			summary.Failed++
			logger.Error("video failed", logging.String("source", source), logging.Error(err))
			continue
		}
		summary.Succeeded++
		logger.Info("video complete",
			logging.String("source", source),
			logging.Int("frames", result.FrameCount),
			logging.Duration("elapsed", outcome.Elapsed),
		)
	}

	summary.Elapsed = time.Since(started)
	logger.Info("sweep complete",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (r *Runner) acquireLock() (func(), error) {
	lockDir := r.Config.Paths.LogDir
	if err := fileutil.EnsureDir(lockDir); err != nil {
		return nil, services.Wrap(services.ErrWriteFailed, "batch", "", "create lock directory", err)
	}
	lock := flock.New(filepath.Join(lockDir, "batch.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrPipelineFailed, "batch", "", "acquire sweep lock", err)
	}
	if !acquired {
		return nil, services.Wrap(services.ErrPipelineFailed, "batch", "",
			fmt.Sprintf("another sweep holds %s", lock.Path()), nil)
	}
	return func() { _ = lock.Unlock() }, nil
}
