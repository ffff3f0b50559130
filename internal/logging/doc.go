// Package logging wires log/slog with the console and JSON handlers used by
// the thumbtrack CLI, plus helpers for context-derived structured fields.
package logging
