// Package config provides YAML-based configuration loading for the
// cubestate tools.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/SeamusWaldron/cubestate/internal/playback"
)

// Config contains all configuration for the cubestate CLI.
type Config struct {
	Database DatabaseConfig    `yaml:"database"`
	Log      LogConfig         `yaml:"log"`
	Playback PlaybackConfig    `yaml:"playback"`
	Solver   SolverConfig      `yaml:"solver"`
	Serve    ServeConfig       `yaml:"serve"`
	Palette  map[string]string `yaml:"palette"` // color name -> terminal color
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines logger level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json, logfmt
}

// PlaybackConfig defines solution replay defaults.
type PlaybackConfig struct {
	Speed    string `yaml:"speed"` // slow, medium, fast
	AutoPlay bool   `yaml:"auto_play"`
}

// SolverConfig bounds the search solver.
type SolverConfig struct {
	MaxDepth       int `yaml:"max_depth"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// ServeConfig defines the renderer feed listener.
type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Timeout returns the solver timeout as a duration. Zero means no timeout.
func (s SolverConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// PlaybackSpeed returns the configured replay speed.
func (c *Config) PlaybackSpeed() playback.Speed {
	speed, err := playback.ParseSpeed(c.Playback.Speed)
	if err != nil {
		return playback.Medium
	}
	return speed
}

// DatabasePath returns the database path with a leading ~ expanded.
func (c *Config) DatabasePath() (string, error) {
	return expandHome(c.Database.Path)
}

// Validate checks the configuration for values the tools cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log.format %q: want text, json or logfmt", c.Log.Format)
	}
	if _, err := playback.ParseSpeed(c.Playback.Speed); err != nil {
		return fmt.Errorf("playback.speed: %w", err)
	}
	if c.Solver.MaxDepth < 1 || c.Solver.MaxDepth > 20 {
		return fmt.Errorf("solver.max_depth %d: want 1..20", c.Solver.MaxDepth)
	}
	if c.Solver.TimeoutSeconds < 0 {
		return fmt.Errorf("solver.timeout_seconds must not be negative")
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr must not be empty")
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
