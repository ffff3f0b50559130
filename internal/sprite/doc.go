// Package sprite assembles extracted frames into their on-disk form: either a
// single row-major grid image or a directory of numbered tiles, encoded as
// webp, jpg, or png.
package sprite
