package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput marks configuration or argument problems (non-positive
	// interval, bad dimensions) detected before any work starts.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProbeFailed marks sources whose duration could not be determined.
	ErrProbeFailed = errors.New("probe failed")
	// ErrExtractionFailed marks a single frame that could not be decoded.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrPipelineFailed is the aggregate marker surfaced after a fail-fast
	// abort; it wraps the first extraction failure.
	ErrPipelineFailed = errors.New("pipeline failed")
	// ErrWriteFailed marks output filesystem failures.
	ErrWriteFailed = errors.New("write failed")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrPipelineFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Label reduces an error to its taxonomy name for summaries and the catalog.
func Label(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrProbeFailed):
		return "probe_failed"
	case errors.Is(err, ErrExtractionFailed):
		return "extraction_failed"
	case errors.Is(err, ErrWriteFailed):
		return "write_failed"
	default:
		return "pipeline_failed"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
