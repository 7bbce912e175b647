package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Terrain.Heightmap == "":
		return errors.New("terrain.heightmap is required")
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Terrain.HeightScale <= 0 || c.Terrain.HorizontalScale <= 0:
		return fmt.Errorf("terrain scales must be positive (height %g, horizontal %g)",
			c.Terrain.HeightScale, c.Terrain.HorizontalScale)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("invalid camera clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	case c.Lighting.SunElevation < 0 || c.Lighting.SunElevation > 90:
		return fmt.Errorf("sun elevation %g out of range [0,90]", c.Lighting.SunElevation)
	case c.Lighting.Ambient < 0 || c.Lighting.Ambient > 1:
		return fmt.Errorf("ambient %g out of range [0,1]", c.Lighting.Ambient)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "HeightmapViewer")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "HeightmapViewer")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "heightmap-viewer")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "heightmap-viewer")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
