package pipeline

import (
	"path/filepath"
	"strings"

	"thumbtrack/internal/sprite"
)

// SourceBase returns the source file name with its extension stripped. Every
// published artifact name derives from it.
func SourceBase(source string) string {
	name := filepath.Base(source)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// SpriteName returns the published sprite sheet file name for a source.
func SpriteName(base string, format sprite.Format) string {
	return base + "_sprite." + format.Ext()
}

// TrackName returns the published WebVTT track file name for a source.
func TrackName(base string) string {
	return base + "_sprite.vtt"
}

// TilesDirName returns the published tile directory name for a source.
func TilesDirName(base string) string {
	return base + "_tiles"
}

// MetadataName returns the published run metadata file name for a source.
func MetadataName(base string) string {
	return base + "_sprite.json"
}
