package sprite

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"thumbtrack/internal/plan"
	"thumbtrack/internal/services"
)

// Compose pastes the index-ordered frames onto a single canvas in strict
// row-major order. Frames are assumed to be pre-scaled to the layout's tile
// size; cells beyond the frame count stay background-black. The result is a
// pure function of frame order and layout, regardless of how the frames were
// produced.
func Compose(framePaths []string, layout plan.Layout) (*image.NRGBA, error) {
	if len(framePaths) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "compose", "", "no frames to compose", nil)
	}
	if layout.Cells() < len(framePaths) {
		return nil, services.Wrap(services.ErrInvalidInput, "compose", "",
			fmt.Sprintf("layout holds %d cells but %d frames supplied", layout.Cells(), len(framePaths)), nil)
	}

	width, height := layout.CanvasSize()
	canvas := imaging.New(width, height, color.NRGBA{A: 255})
	for i, path := range framePaths {
		frame, err := imaging.Open(path)
		if err != nil {
			return nil, services.Wrap(services.ErrPipelineFailed, "compose",
				fmt.Sprintf("frame %d", i), "open extracted frame", err)
		}
		canvas = imaging.Paste(canvas, frame, layout.CellOrigin(i))
	}
	return canvas, nil
}
