package vtt_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"thumbtrack/internal/plan"
	"thumbtrack/internal/services"
	"thumbtrack/internal/sprite"
	"thumbtrack/internal/vtt"
)

func TestFormatTimestamp(t *testing.T) {
	cases := map[float64]string{
		0:        "00:00:00.000",
		0.5:      "00:00:00.500",
		5:        "00:00:05.000",
		65.25:    "00:01:05.250",
		3599.999: "00:59:59.999",
		3600:     "01:00:00.000",
		7325.1:   "02:02:05.100",
	}
	for seconds, want := range cases {
		if got := vtt.FormatTimestamp(seconds); got != want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", seconds, got, want)
		}
	}
}

func TestSpriteCuesMapRowMajorRegions(t *testing.T) {
	layout, err := plan.NewLayout(5, 2, 0, 320, 180)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	timestamps := []float64{0.5, 5, 10, 15, 20}
	cues, err := vtt.SpriteCues(timestamps, layout, "clip_sprite.webp")
	if err != nil {
		t.Fatalf("SpriteCues: %v", err)
	}
	if len(cues) != len(timestamps) {
		t.Fatalf("got %d cues, want %d", len(cues), len(timestamps))
	}

	wantLocators := []string{
		"clip_sprite.webp#xywh=0,0,320,180",
		"clip_sprite.webp#xywh=320,0,320,180",
		"clip_sprite.webp#xywh=0,180,320,180",
		"clip_sprite.webp#xywh=320,180,320,180",
		"clip_sprite.webp#xywh=0,360,320,180",
	}
	for i, cue := range cues {
		if cue.Locator != wantLocators[i] {
			t.Fatalf("cue %d locator %q, want %q", i, cue.Locator, wantLocators[i])
		}
		if cue.Start != timestamps[i] {
			t.Fatalf("cue %d starts at %v, want %v", i, cue.Start, timestamps[i])
		}
	}

	// Interior cues end where the next begins; the last covers one second.
	for i := 0; i < len(cues)-1; i++ {
		if cues[i].End != timestamps[i+1] {
			t.Fatalf("cue %d ends at %v, want %v", i, cues[i].End, timestamps[i+1])
		}
	}
	if last := cues[len(cues)-1]; last.End != last.Start+1.0 {
		t.Fatalf("final cue ends at %v, want %v", last.End, last.Start+1.0)
	}
}

func TestSpriteCuesRejectUndersizedLayout(t *testing.T) {
	layout := plan.Layout{Columns: 2, Rows: 1, TileWidth: 10, TileHeight: 10}
	_, err := vtt.SpriteCues([]float64{0.5, 5, 10}, layout, "s.webp")
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSpriteCuesRejectEmptyPlan(t *testing.T) {
	layout := plan.Layout{Columns: 1, Rows: 1, TileWidth: 10, TileHeight: 10}
	if _, err := vtt.SpriteCues(nil, layout, "s.webp"); !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTileCuesNameEachTile(t *testing.T) {
	timestamps := []float64{0.5, 5, 10}
	names := make([]string, len(timestamps))
	for i := range names {
		names[i] = sprite.TileName(i, sprite.FormatJPEG)
	}
	cues, err := vtt.TileCues(timestamps, "clip_tiles", names)
	if err != nil {
		t.Fatalf("TileCues: %v", err)
	}
	want := []string{
		"clip_tiles/tile_00000.jpg",
		"clip_tiles/tile_00001.jpg",
		"clip_tiles/tile_00002.jpg",
	}
	for i, cue := range cues {
		if cue.Locator != want[i] {
			t.Fatalf("cue %d locator %q, want %q", i, cue.Locator, want[i])
		}
	}
}

func TestTileCuesRejectCountMismatch(t *testing.T) {
	_, err := vtt.TileCues([]float64{0.5, 5}, "dir", []string{"tile_00000.jpg"})
	if !errors.Is(err, services.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWriteProducesValidDocument(t *testing.T) {
	layout, err := plan.NewLayout(2, 10, 0, 320, 180)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	cues, err := vtt.SpriteCues([]float64{0.5, 5}, layout, "clip_sprite.webp")
	if err != nil {
		t.Fatalf("SpriteCues: %v", err)
	}

	var buf bytes.Buffer
	if err := vtt.Write(&buf, cues); err != nil {
		t.Fatalf("Write: %v", err)
	}
	text := buf.String()
	if !strings.HasPrefix(text, "WEBVTT\n\n") {
		t.Fatalf("document does not open with WEBVTT header:\n%s", text)
	}
	if !strings.Contains(text, "00:00:00.500 --> 00:00:05.000\nclip_sprite.webp#xywh=0,0,320,180\n") {
		t.Fatalf("missing expected cue block:\n%s", text)
	}
}

func TestWriteFileParseRoundTrip(t *testing.T) {
	layout, err := plan.NewLayout(4, 2, 0, 160, 90)
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	original, err := vtt.SpriteCues([]float64{0.5, 5, 10, 15}, layout, "clip_sprite.png")
	if err != nil {
		t.Fatalf("SpriteCues: %v", err)
	}

	path := filepath.Join(t.TempDir(), "clip_sprite.vtt")
	if err := vtt.WriteFile(path, original); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	parsed, err := vtt.Parse(file)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parsed) != len(original) {
		t.Fatalf("parsed %d cues, want %d", len(parsed), len(original))
	}
	for i := range original {
		if math.Abs(parsed[i].Start-original[i].Start) > 0.0005 ||
			math.Abs(parsed[i].End-original[i].End) > 0.0005 {
			t.Fatalf("cue %d timing drifted: %+v vs %+v", i, parsed[i], original[i])
		}
		if parsed[i].Locator != original[i].Locator {
			t.Fatalf("cue %d locator %q, want %q", i, parsed[i].Locator, original[i].Locator)
		}
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing header": "NOTVTT\n\n00:00:00.000 --> 00:00:01.000\nx\n",
		"bad timing":     "WEBVTT\n\n00:00:00.000 -> 00:00:01.000\nx\n",
		"bad timestamp":  "WEBVTT\n\nnope --> 00:00:01.000\nx\n",
		"no payload":     "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\n",
	}
	for name, doc := range cases {
		if _, err := vtt.Parse(strings.NewReader(doc)); !errors.Is(err, services.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}
