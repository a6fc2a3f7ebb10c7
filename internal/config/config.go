// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Map      MapConfig      `yaml:"map"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// MapConfig holds the starting camera state and map styling.
type MapConfig struct {
	StartLongitude float64 `yaml:"start_longitude"`
	StartLatitude  float64 `yaml:"start_latitude"`
	StartZoom      float32 `yaml:"start_zoom"`
	Projection     string  `yaml:"projection"`
	PixelScale     float32 `yaml:"pixel_scale"`
	StyleRules     string  `yaml:"style_rules"` // Path to a layer rules yaml, empty for built-ins
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values. The camera
// starts over lower Manhattan.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Map: MapConfig{
			StartLongitude: -74.00796,
			StartLatitude:  40.70361,
			StartZoom:      16,
			Projection:     "mercator",
			PixelScale:     1,
			StyleRules:     "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
