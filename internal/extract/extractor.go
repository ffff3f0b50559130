package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"thumbtrack/internal/logging"
	"thumbtrack/internal/services"
)

// Extractor invokes ffmpeg to decode and rescale a single frame.
type Extractor struct {
	Binary        string
	HWAccel       string
	DecodeQuality int
	Timeout       time.Duration
	Logger        *slog.Logger
}

// Request identifies one frame to materialize.
type Request struct {
	Source    string
	Timestamp float64
	Width     int
	Height    int
	Dest      string
}

// Extract decodes one frame at the requested timestamp into req.Dest. On
// failure no partial file is left behind.
func (e *Extractor) Extract(ctx context.Context, req Request) error {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args := e.buildArgs(req)
	cmd := newCommand(ctx, e.binary(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		removePartial(req.Dest)
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return services.Wrap(services.ErrExtractionFailed, "extract",
			fmt.Sprintf("timestamp %s", formatSeconds(req.Timestamp)), "decode failed", err)
	}

	if e.Logger != nil {
		e.Logger.Debug("frame extracted",
			logging.Float64("timestamp", req.Timestamp),
			logging.String("dest", req.Dest),
		)
	}
	return nil
}

func (e *Extractor) binary() string {
	if strings.TrimSpace(e.Binary) == "" {
		return "ffmpeg"
	}
	return e.Binary
}

func (e *Extractor) buildArgs(req Request) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if e.HWAccel != "" {
		args = append(args, "-hwaccel", e.HWAccel)
	}
	quality := e.DecodeQuality
	if quality <= 0 {
		quality = 1
	}
	args = append(args,
		"-ss", formatSeconds(req.Timestamp),
		"-i", req.Source,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", req.Width, req.Height),
		"-f", "image2",
		"-q:v", strconv.Itoa(quality),
		req.Dest,
	)
	return args
}

// removePartial clears a half-written destination. Removal is retried once;
// a file that survives both attempts is logged by the caller's cleanup of the
// whole workspace, which is discarded regardless.
func removePartial(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err == nil || os.IsNotExist(err) {
		return
	}
	time.Sleep(10 * time.Millisecond)
	_ = os.Remove(path)
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', -1, 64)
}
