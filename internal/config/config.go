// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Camera     CameraConfig     `yaml:"camera"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// TerrainConfig selects the heightmap and how it is drawn.
type TerrainConfig struct {
	Heightmap       string  `yaml:"heightmap"`        // Grayscale image used for elevation
	Texture         string  `yaml:"texture"`          // Optional color texture; empty draws a height tint
	HeightScale     float32 `yaml:"height_scale"`     // World units for a sample of 255
	HorizontalScale float32 `yaml:"horizontal_scale"` // World units between adjacent samples
	Wireframe       bool    `yaml:"wireframe"`
	CullBackFaces   bool    `yaml:"cull_back_faces"`
}

// CameraConfig holds projection and control settings.
type CameraConfig struct {
	FovY            float32 `yaml:"fov_y"`
	Near            float32 `yaml:"near"`
	Far             float32 `yaml:"far"`
	DragSensitivity float32 `yaml:"drag_sensitivity"`
	ZoomSensitivity float32 `yaml:"zoom_sensitivity"`
	PanSpeed        float32 `yaml:"pan_speed"`
}

// LightingConfig positions the sun, in degrees.
type LightingConfig struct {
	SunAzimuth   float32 `yaml:"sun_azimuth"`
	SunElevation float32 `yaml:"sun_elevation"`
	Ambient      float32 `yaml:"ambient"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or webp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Heightmap Viewer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Terrain: TerrainConfig{
			Heightmap:       "heightmap.png",
			Texture:         "",
			HeightScale:     64,
			HorizontalScale: 1,
			Wireframe:       false,
			CullBackFaces:   true,
		},
		Camera: CameraConfig{
			FovY:            45,
			Near:            0.1,
			Far:             10000,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			PanSpeed:        0.5,
		},
		Lighting: LightingConfig{
			SunAzimuth:   225,
			SunElevation: 45,
			Ambient:      0.35,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
		},
	}
}
