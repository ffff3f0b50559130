// Package extract drives the external decoder. Extractor materializes one
// still frame per invocation; Coordinator fans extraction across a bounded
// worker pool while keeping results addressable by plan index, so downstream
// assembly never observes completion order.
package extract
