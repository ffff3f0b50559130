package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thumbtrack/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(tempHome, ".local", "share", "thumbtrack", "output")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.Thumbnails.Interval != 5 {
		t.Fatalf("unexpected interval: %d", cfg.Thumbnails.Interval)
	}
	if cfg.Thumbnails.Columns != 10 {
		t.Fatalf("unexpected columns: %d", cfg.Thumbnails.Columns)
	}
	if cfg.Thumbnails.ImageFormat != "webp" {
		t.Fatalf("unexpected image format: %q", cfg.Thumbnails.ImageFormat)
	}
	if cfg.FFmpeg.Workers != 8 {
		t.Fatalf("unexpected workers: %d", cfg.FFmpeg.Workers)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thumbtrack.toml")
	contents := `
[thumbnails]
interval = 10
image_format = "JPEG"
caption_mode = "Tiles"

[ffmpeg]
workers = 2
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected explicit path to resolve, got %q exists=%v", resolved, exists)
	}
	if cfg.Thumbnails.Interval != 10 {
		t.Fatalf("unexpected interval: %d", cfg.Thumbnails.Interval)
	}
	if cfg.Thumbnails.ImageFormat != "jpg" {
		t.Fatalf("expected jpeg normalized to jpg, got %q", cfg.Thumbnails.ImageFormat)
	}
	if cfg.Thumbnails.CaptionMode != "tiles" {
		t.Fatalf("expected caption mode lowercased, got %q", cfg.Thumbnails.CaptionMode)
	}
	if cfg.FFmpeg.Workers != 2 {
		t.Fatalf("unexpected workers: %d", cfg.FFmpeg.Workers)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*config.Config)
		fragment string
	}{
		{"zero interval", func(c *config.Config) { c.Thumbnails.Interval = 0 }, "interval"},
		{"negative rows", func(c *config.Config) { c.Thumbnails.Rows = -1 }, "rows"},
		{"bad format", func(c *config.Config) { c.Thumbnails.ImageFormat = "gif" }, "image_format"},
		{"bad mode", func(c *config.Config) { c.Thumbnails.CaptionMode = "grid" }, "caption_mode"},
		{"decode quality", func(c *config.Config) { c.Thumbnails.DecodeQuality = 40 }, "decode_quality"},
		{"image quality", func(c *config.Config) { c.Thumbnails.ImageQuality = 0 }, "image_quality"},
		{"workers", func(c *config.Config) { c.FFmpeg.Workers = -3 }, "workers"},
		{"log level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.fragment) {
				t.Fatalf("expected %q in error %q", tc.fragment, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	fromSample, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}

	// The sample documents the defaults; loading it must produce them.
	defaults, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if *fromSample != *defaults {
		t.Fatalf("sample config drifted from defaults:\n got %+v\nwant %+v", fromSample, defaults)
	}
}
