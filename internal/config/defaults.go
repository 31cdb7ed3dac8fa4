package config

import (
	_ "embed"
)

//go:embed defaults/cubestate.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Path: "~/.cubestate/cubestate.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Playback: PlaybackConfig{
			Speed:    "medium",
			AutoPlay: false,
		},
		Solver: SolverConfig{
			MaxDepth:       7,
			TimeoutSeconds: 30,
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:8765",
		},
		Palette: map[string]string{
			"white":  "15",
			"yellow": "226",
			"green":  "34",
			"blue":   "27",
			"orange": "208",
			"red":    "196",
			"empty":  "240",
		},
	}
}
