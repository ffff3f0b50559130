// Package vtt emits WebVTT thumbnail tracks whose cue payloads point a
// player at the image region for each sampled timestamp.
package vtt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"thumbtrack/internal/plan"
	"thumbtrack/internal/services"
)

// Cue is one caption entry: the time window it covers and the locator a
// player resolves to an image (optionally with a media-fragment region).
type Cue struct {
	Start   float64
	End     float64
	Locator string
}

// SpriteCues builds one cue per sampled timestamp, each pointing into the
// shared sprite sheet via a media-fragment region. The i-th cue maps to the
// i-th row-major cell.
func SpriteCues(timestamps []float64, layout plan.Layout, spriteName string) ([]Cue, error) {
	cues, err := windows(timestamps)
	if err != nil {
		return nil, err
	}
	if layout.Cells() < len(timestamps) {
		return nil, services.Wrap(services.ErrInvalidInput, "vtt", "",
			fmt.Sprintf("layout holds %d cells but %d cues required", layout.Cells(), len(timestamps)), nil)
	}
	for i := range cues {
		origin := layout.CellOrigin(i)
		cues[i].Locator = fmt.Sprintf("%s#xywh=%d,%d,%d,%d",
			spriteName, origin.X, origin.Y, layout.TileWidth, layout.TileHeight)
	}
	return cues, nil
}

// TileCues builds one cue per sampled timestamp, each pointing at its own
// tile file under tilesDir. Locators use forward slashes regardless of host
// platform so the track stays portable.
func TileCues(timestamps []float64, tilesDir string, tileNames []string) ([]Cue, error) {
	if len(tileNames) != len(timestamps) {
		return nil, services.Wrap(services.ErrInvalidInput, "vtt", "",
			fmt.Sprintf("%d timestamps but %d tiles", len(timestamps), len(tileNames)), nil)
	}
	cues, err := windows(timestamps)
	if err != nil {
		return nil, err
	}
	for i := range cues {
		cues[i].Locator = tilesDir + "/" + filepath.ToSlash(tileNames[i])
	}
	return cues, nil
}

// windows derives each cue's time span: a cue runs from its timestamp to the
// next one, and the final cue covers a fixed one second.
func windows(timestamps []float64) ([]Cue, error) {
	if len(timestamps) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "vtt", "", "no timestamps to emit", nil)
	}
	cues := make([]Cue, len(timestamps))
	for i, start := range timestamps {
		end := start + 1.0
		if i+1 < len(timestamps) {
			end = timestamps[i+1]
		}
		cues[i] = Cue{Start: start, End: end}
	}
	return cues, nil
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm, the full WebVTT form.
func FormatTimestamp(seconds float64) string {
	millis := int64(math.Round(seconds * 1000))
	if millis < 0 {
		millis = 0
	}
	h := millis / 3_600_000
	m := (millis % 3_600_000) / 60_000
	s := (millis % 60_000) / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// Write renders a complete WEBVTT document to w.
func Write(w io.Writer, cues []Cue) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprint(bw, "WEBVTT\n\n"); err != nil {
		return err
	}
	for _, cue := range cues {
		if _, err := fmt.Fprintf(bw, "%s --> %s\n%s\n\n",
			FormatTimestamp(cue.Start), FormatTimestamp(cue.End), cue.Locator); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes a complete WEBVTT document to path.
func WriteFile(path string, cues []Cue) error {
	file, err := os.Create(path)
	if err != nil {
		return services.Wrap(services.ErrWriteFailed, "vtt", "", fmt.Sprintf("create %q", path), err)
	}
	if err := Write(file, cues); err != nil {
		file.Close()
		os.Remove(path)
		return services.Wrap(services.ErrWriteFailed, "vtt", "", fmt.Sprintf("write %q", path), err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return services.Wrap(services.ErrWriteFailed, "vtt", "", fmt.Sprintf("close %q", path), err)
	}
	return nil
}

// Parse reads a WEBVTT thumbnail track back into cues. Only the subset this
// package writes is understood; it exists for tests and for inspecting
// previously generated tracks.
func Parse(r io.Reader) ([]Cue, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, services.Wrap(services.ErrInvalidInput, "vtt", "", "empty document", nil)
	}
	if header := strings.TrimSpace(scanner.Text()); !strings.HasPrefix(header, "WEBVTT") {
		return nil, services.Wrap(services.ErrInvalidInput, "vtt", "",
			fmt.Sprintf("unexpected header %q", header), nil)
	}

	var cues []Cue
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		startText, endText, found := strings.Cut(line, " --> ")
		if !found {
			return nil, services.Wrap(services.ErrInvalidInput, "vtt", "",
				fmt.Sprintf("malformed timing line %q", line), nil)
		}
		start, err := parseTimestamp(strings.TrimSpace(startText))
		if err != nil {
			return nil, err
		}
		end, err := parseTimestamp(strings.TrimSpace(endText))
		if err != nil {
			return nil, err
		}
		if !scanner.Scan() {
			return nil, services.Wrap(services.ErrInvalidInput, "vtt", "", "timing line without payload", nil)
		}
		cues = append(cues, Cue{Start: start, End: end, Locator: strings.TrimSpace(scanner.Text())})
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "vtt", "", "read document", err)
	}
	return cues, nil
}

func parseTimestamp(text string) (float64, error) {
	var h, m, s, ms int
	if _, err := fmt.Sscanf(text, "%02d:%02d:%02d.%03d", &h, &m, &s, &ms); err != nil {
		return 0, services.Wrap(services.ErrInvalidInput, "vtt", "",
			fmt.Sprintf("malformed timestamp %q", text), err)
	}
	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000, nil
}
