package sprite

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"thumbtrack/internal/services"
)

// Format is one of the supported output image encodings.
type Format string

const (
	FormatWebP Format = "webp"
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
)

// ParseFormat normalizes a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "webp":
		return FormatWebP, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", services.Wrap(services.ErrInvalidInput, "encode", "",
			fmt.Sprintf("image format must be webp, jpg, or png (got %q)", value), nil)
	}
}

// Ext returns the file extension without a leading dot.
func (f Format) Ext() string {
	return string(f)
}

// Encode writes img to w in the given format. quality applies to webp and
// jpeg (1-100); png always uses best compression.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	if quality < 1 || quality > 100 {
		quality = 100
	}
	switch format {
	case FormatWebP:
		opts := &webp.Options{Quality: float32(quality)}
		if quality >= 100 {
			opts.Lossless = true
		}
		return webp.Encode(w, img, opts)
	case FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatPNG:
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	default:
		return services.Wrap(services.ErrInvalidInput, "encode", "", fmt.Sprintf("unsupported format %q", format), nil)
	}
}

// Save encodes img into path, creating parent directories as needed.
func Save(path string, img image.Image, format Format, quality int) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrWriteFailed, "encode", "", fmt.Sprintf("create directory %q", dir), err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return services.Wrap(services.ErrWriteFailed, "encode", "", fmt.Sprintf("create %q", path), err)
	}
	if err := Encode(file, img, format, quality); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return services.Wrap(services.ErrWriteFailed, "encode", "", fmt.Sprintf("encode %q", path), err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return services.Wrap(services.ErrWriteFailed, "encode", "", fmt.Sprintf("close %q", path), err)
	}
	return nil
}
