package config

const (
	defaultOutputDir     = "~/.local/share/thumbtrack/output"
	defaultLogDir        = "~/.local/share/thumbtrack/logs"
	defaultCatalogPath   = "~/.local/share/thumbtrack/catalog.db"
	defaultInterval      = 5
	defaultTileWidth     = 320
	defaultTileHeight    = 180
	defaultColumns       = 10
	defaultDecodeQuality = 1
	defaultImageFormat   = "webp"
	defaultImageQuality  = 100
	defaultCaptionMode   = "sprite"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultWorkers       = 8
	defaultExtractSecs   = 60
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:   defaultOutputDir,
			LogDir:      defaultLogDir,
			CatalogPath: defaultCatalogPath,
		},
		Thumbnails: Thumbnails{
			Interval:      defaultInterval,
			TileWidth:     defaultTileWidth,
			TileHeight:    defaultTileHeight,
			Columns:       defaultColumns,
			DecodeQuality: defaultDecodeQuality,
			ImageFormat:   defaultImageFormat,
			ImageQuality:  defaultImageQuality,
			CaptionMode:   defaultCaptionMode,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			Workers:        defaultWorkers,
			ExtractTimeout: defaultExtractSecs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
