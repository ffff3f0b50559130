package plan

import (
	"fmt"
	"image"

	"thumbtrack/internal/services"
)

// Layout describes the sprite grid: cell geometry plus how many columns and
// rows the canvas holds. Frame i occupies column i mod Columns, row
// i div Columns.
type Layout struct {
	Columns    int
	Rows       int
	TileWidth  int
	TileHeight int
}

// NewLayout computes a layout for frameCount tiles. rows may be zero to derive
// the row count from the frame count; an explicit value must still leave room
// for every frame.
func NewLayout(frameCount, columns, rows, tileWidth, tileHeight int) (Layout, error) {
	if frameCount <= 0 {
		return Layout{}, services.Wrap(services.ErrInvalidInput, "layout", "", fmt.Sprintf("frame count must be positive, got %d", frameCount), nil)
	}
	if columns <= 0 || tileWidth <= 0 || tileHeight <= 0 {
		return Layout{}, services.Wrap(services.ErrInvalidInput, "layout", "",
			fmt.Sprintf("columns and tile dimensions must be positive, got columns=%d tile=%dx%d", columns, tileWidth, tileHeight), nil)
	}
	if rows == 0 {
		rows = (frameCount + columns - 1) / columns
	}
	if columns*rows < frameCount {
		return Layout{}, services.Wrap(services.ErrInvalidInput, "layout", "",
			fmt.Sprintf("%d columns x %d rows cannot hold %d frames", columns, rows, frameCount), nil)
	}
	return Layout{Columns: columns, Rows: rows, TileWidth: tileWidth, TileHeight: tileHeight}, nil
}

// CellOrigin returns the canvas pixel position of frame i.
func (l Layout) CellOrigin(i int) image.Point {
	return image.Pt((i%l.Columns)*l.TileWidth, (i/l.Columns)*l.TileHeight)
}

// CanvasSize returns the full sprite dimensions.
func (l Layout) CanvasSize() (width, height int) {
	return l.Columns * l.TileWidth, l.Rows * l.TileHeight
}

// Cells returns the total cell capacity of the grid.
func (l Layout) Cells() int {
	return l.Columns * l.Rows
}
