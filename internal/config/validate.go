package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateThumbnails(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateThumbnails() error {
	if err := ensurePositiveMap(map[string]int{
		"thumbnails.interval":    c.Thumbnails.Interval,
		"thumbnails.tile_width":  c.Thumbnails.TileWidth,
		"thumbnails.tile_height": c.Thumbnails.TileHeight,
		"thumbnails.columns":     c.Thumbnails.Columns,
	}); err != nil {
		return err
	}
	if c.Thumbnails.Rows < 0 {
		return errors.New("thumbnails.rows must not be negative")
	}
	if c.Thumbnails.DecodeQuality < 1 || c.Thumbnails.DecodeQuality > 31 {
		return errors.New("thumbnails.decode_quality must be between 1 and 31")
	}
	if c.Thumbnails.ImageQuality < 1 || c.Thumbnails.ImageQuality > 100 {
		return errors.New("thumbnails.image_quality must be between 1 and 100")
	}
	switch c.Thumbnails.ImageFormat {
	case "webp", "jpg", "png":
	default:
		return fmt.Errorf("thumbnails.image_format must be webp, jpg, or png (got %q)", c.Thumbnails.ImageFormat)
	}
	switch c.Thumbnails.CaptionMode {
	case "sprite", "tiles":
	default:
		return fmt.Errorf("thumbnails.caption_mode must be sprite or tiles (got %q)", c.Thumbnails.CaptionMode)
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	return ensurePositiveMap(map[string]int{
		"ffmpeg.workers":         c.FFmpeg.Workers,
		"ffmpeg.extract_timeout": c.FFmpeg.ExtractTimeout,
	})
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
