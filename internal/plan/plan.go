package plan

import (
	"fmt"
	"math"

	"thumbtrack/internal/services"
)

// FloorEpsilon replaces the t=0 sample point. Several decoders render the very
// first frame black or garbled, so the plan never asks for exactly zero.
const FloorEpsilon = 0.5

// Timestamps returns the ordered sample points for a source of the given
// duration, one every interval seconds. The sequence is strictly increasing
// and its first entry is FloorEpsilon rather than zero. A source shorter than
// one interval still yields a single sample.
func Timestamps(duration float64, interval int) ([]float64, error) {
	if duration <= 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "plan", "", fmt.Sprintf("duration must be positive, got %.3f", duration), nil)
	}
	if interval <= 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "plan", "", fmt.Sprintf("interval must be positive, got %d", interval), nil)
	}

	limit := math.Floor(duration)
	var timestamps []float64
	for ts := 0.0; ts < limit; ts += float64(interval) {
		timestamps = append(timestamps, math.Max(FloorEpsilon, ts))
	}
	if len(timestamps) == 0 {
		timestamps = []float64{FloorEpsilon}
	}
	return timestamps, nil
}
