// Package plan holds the pure sampling and grid arithmetic: which timestamps
// to extract and where each frame lands on the sprite canvas. Both the
// composer and the caption emitter derive positions from the same Layout so
// the cues always point at the right cell.
package plan
