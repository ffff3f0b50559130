// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no thumbtrack-specific dependencies and could be extracted
// as a standalone library.
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// Helper methods on Result expose the container duration and the dimensions
// of the first video stream.
package ffprobe
