package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"thumbtrack/internal/services"
)

// LayoutMetadata records the published grid geometry.
type LayoutMetadata struct {
	Columns    int `json:"columns"`
	Rows       int `json:"rows"`
	TileWidth  int `json:"tile_width"`
	TileHeight int `json:"tile_height"`
}

// ArtifactMetadata names the published outputs relative to the output
// directory.
type ArtifactMetadata struct {
	Sprite   string `json:"sprite,omitempty"`
	Track    string `json:"track"`
	TilesDir string `json:"tiles_dir,omitempty"`
}

// RunMetadata is the machine-readable record written alongside every
// successful run.
type RunMetadata struct {
	RunID           string           `json:"run_id"`
	Source          string           `json:"source"`
	GeneratedAt     time.Time        `json:"generated_at"`
	DurationSeconds float64          `json:"duration_seconds"`
	IntervalSeconds int              `json:"interval_seconds"`
	FrameCount      int              `json:"frame_count"`
	Mode            string           `json:"mode"`
	ImageFormat     string           `json:"image_format"`
	Layout          *LayoutMetadata  `json:"layout,omitempty"`
	Timestamps      []float64        `json:"timestamps"`
	Artifacts       ArtifactMetadata `json:"artifacts"`
	ElapsedMS       int64            `json:"elapsed_ms"`
}

// WriteMetadata writes the run record as indented JSON to path.
func WriteMetadata(path string, meta RunMetadata) error {
	payload, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrWriteFailed, "metadata", "", "encode run metadata", err)
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return services.Wrap(services.ErrWriteFailed, "metadata", "", fmt.Sprintf("write %q", path), err)
	}
	return nil
}

// ReadMetadata loads a previously written run record.
func ReadMetadata(path string) (RunMetadata, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return RunMetadata{}, fmt.Errorf("read run metadata: %w", err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(payload, &meta); err != nil {
		return RunMetadata{}, fmt.Errorf("parse run metadata: %w", err)
	}
	return meta, nil
}
