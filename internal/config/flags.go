package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagLon        = flag.Float64("lon", 360, "Starting longitude")
	flagLat        = flag.Float64("lat", 360, "Starting latitude")
	flagZoom       = flag.Float64("zoom", -1, "Starting zoom level")
	flagStyles     = flag.String("styles", "", "Path to a layer style rules file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagLon >= -180 && *flagLon <= 180 {
		cfg.Map.StartLongitude = *flagLon
	}
	if *flagLat >= -90 && *flagLat <= 90 {
		cfg.Map.StartLatitude = *flagLat
	}
	if *flagZoom >= 0 {
		cfg.Map.StartZoom = float32(*flagZoom)
	}
	if *flagStyles != "" {
		cfg.Map.StyleRules = *flagStyles
	}
}
