package sprite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"thumbtrack/internal/services"
)

// TileName returns the canonical file name for the tile at plan index i.
func TileName(i int, format Format) string {
	return fmt.Sprintf("tile_%05d.%s", i, format.Ext())
}

// WriteTiles re-encodes each extracted frame as a standalone tile file inside
// dir, preserving plan order as file order. Returns the written paths.
func WriteTiles(framePaths []string, dir string, format Format, quality int) ([]string, error) {
	if len(framePaths) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "tiles", "", "no frames to write", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrWriteFailed, "tiles", "", fmt.Sprintf("create directory %q", dir), err)
	}

	written := make([]string, 0, len(framePaths))
	for i, framePath := range framePaths {
		frame, err := imaging.Open(framePath)
		if err != nil {
			return nil, services.Wrap(services.ErrPipelineFailed, "tiles",
				fmt.Sprintf("frame %d", i), "open extracted frame", err)
		}
		dest := filepath.Join(dir, TileName(i, format))
		if err := Save(dest, frame, format, quality); err != nil {
			return nil, err
		}
		written = append(written, dest)
	}
	return written, nil
}
