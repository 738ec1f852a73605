package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
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

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		"./config.toml",
		filepath.Join(ConfigDir(), "config.yaml"),
		filepath.Join(ConfigDir(), "config.toml"),
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
		home, _ := homedir.Dir()
		return filepath.Join(home, "Library", "Application Support", "Aquarium")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Aquarium")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "aquarium")
		}
		home, _ := homedir.Dir()
		return filepath.Join(home, ".config", "aquarium")
	}
}

// loadFromFile loads config from a YAML or TOML file, merging with existing
// values. Unknown keys are rejected.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// expandPaths resolves a leading ~ in every path setting.
func (c *Config) expandPaths() error {
	var err error
	if c.Scene.Manifest, err = homedir.Expand(c.Scene.Manifest); err != nil {
		return fmt.Errorf("scene.manifest: %w", err)
	}
	if c.Logging.LogFile, err = homedir.Expand(c.Logging.LogFile); err != nil {
		return fmt.Errorf("logging.log_file: %w", err)
	}
	if c.Graphics.ScreenshotDir, err = homedir.Expand(c.Graphics.ScreenshotDir); err != nil {
		return fmt.Errorf("graphics.screenshot_dir: %w", err)
	}
	for i, dir := range c.Scene.AssetDirs {
		if c.Scene.AssetDirs[i], err = homedir.Expand(dir); err != nil {
			return fmt.Errorf("scene.asset_dirs[%d]: %w", i, err)
		}
	}
	return nil
}

// Validate rejects settings the viewer cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Graphics.Width <= 0 || c.Graphics.Height <= 0:
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	case c.Graphics.FPSLimit < 0:
		return fmt.Errorf("graphics: negative fps_limit %d", c.Graphics.FPSLimit)
	case c.Graphics.MSAA < 0:
		return fmt.Errorf("graphics: negative msaa %d", c.Graphics.MSAA)
	case c.Motion.TimeScale < 0:
		return fmt.Errorf("motion: negative time_scale %v", c.Motion.TimeScale)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("camera: fov %v out of range", c.Camera.FOV)
	case c.Camera.Distance <= 0:
		return fmt.Errorf("camera: distance must be positive")
	case len(c.Scene.AssetDirs) == 0:
		return fmt.Errorf("scene: no asset_dirs")
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio: volume %v out of range", c.Audio.Volume)
	}
	return nil
}
