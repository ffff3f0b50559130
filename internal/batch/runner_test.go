package batch_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"thumbtrack/internal/batch"
	"thumbtrack/internal/config"
	"thumbtrack/internal/pipeline"
	"thumbtrack/internal/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogPath = filepath.Join(base, "catalog.db")
	return &cfg
}

func TestRunIsolatesPerVideoFailures(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		touch(t, filepath.Join(root, name))
	}

	runner := &batch.Runner{
		Config: testConfig(t),
		Process: func(_ context.Context, source string) (*pipeline.Result, error) {
			if filepath.Base(source) == "b.mp4" {
				return nil, errors.New("decode failed")
			}
			return &pipeline.Result{Source: source, FrameCount: 3}, nil
		},
	}

	summary, err := runner.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("got %d succeeded %d failed", summary.Succeeded, summary.Failed)
	}
	if len(summary.Outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(summary.Outcomes))
	}
	if summary.Outcomes[1].Err == nil || filepath.Base(summary.Outcomes[1].Source) != "b.mp4" {
		t.Fatalf("expected b.mp4 to carry the failure, got %+v", summary.Outcomes[1])
	}
}

func TestRunProcessesInDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"part_10.mp4", "part_2.mp4"} {
		touch(t, filepath.Join(root, name))
	}

	var seen []string
	runner := &batch.Runner{
		Config: testConfig(t),
		Process: func(_ context.Context, source string) (*pipeline.Result, error) {
			seen = append(seen, filepath.Base(source))
			return &pipeline.Result{}, nil
		},
	}
	if _, err := runner.Run(context.Background(), root); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != 2 || seen[0] != "part_2.mp4" || seen[1] != "part_10.mp4" {
		t.Fatalf("unexpected processing order: %v", seen)
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.mp4", "b.mp4"} {
		touch(t, filepath.Join(root, name))
	}

	ctx, cancel := context.WithCancel(context.Background())
	runner := &batch.Runner{
		Config: testConfig(t),
		Process: func(_ context.Context, source string) (*pipeline.Result, error) {
			cancel()
			return &pipeline.Result{}, nil
		},
	}
	summary, err := runner.Run(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(summary.Outcomes) != 1 {
		t.Fatalf("expected sweep to stop after first video, got %d outcomes", len(summary.Outcomes))
	}
}

func TestRunRejectsConcurrentSweeps(t *testing.T) {
	cfg := testConfig(t)
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp4"))

	blocked := make(chan struct{})
	proceed := make(chan struct{})
	first := &batch.Runner{
		Config: cfg,
		Process: func(_ context.Context, _ string) (*pipeline.Result, error) {
			close(blocked)
			<-proceed
			return &pipeline.Result{}, nil
		},
	}

	done := make(chan error, 1)
	go func() {
		_, err := first.Run(context.Background(), root)
		done <- err
	}()
	<-blocked

	second := &batch.Runner{
		Config: cfg,
		Process: func(_ context.Context, _ string) (*pipeline.Result, error) {
			return &pipeline.Result{}, nil
		},
	}
	if _, err := second.Run(context.Background(), root); !errors.Is(err, services.ErrPipelineFailed) {
		t.Fatalf("expected ErrPipelineFailed for concurrent sweep, got %v", err)
	}

	close(proceed)
	if err := <-done; err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
}

func TestRunRequiresConfig(t *testing.T) {
	runner := &batch.Runner{}
	if _, err := runner.Run(context.Background(), t.TempDir()); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
