// Package services defines shared utilities consumed by the thumbnail
// pipeline stages and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp the source video, pipeline stage, and run
//     identifier for logging.
//   - Structured error markers plus the Wrap helper so every failure carries
//     its stage context and classifies cleanly at the batch level.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across stages.
package services
