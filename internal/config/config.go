package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // starting folder for relative file arguments

	// Playback engine settings
	Playback PlaybackConfig `koanf:"playback"`
}

// PlaybackConfig holds playback engine tuning.
type PlaybackConfig struct {
	BlockSize          int `koanf:"block_size"`           // frames per device callback (default: 1024)
	PositionIntervalMS int `koanf:"position_interval_ms"` // position publish cadence (default: 20)
	StopTimeoutMS      int `koanf:"stop_timeout_ms"`      // bounded wait for stream shutdown (default: 3000)
}

func Load() (*Config, error) {
	return loadPaths(configPaths())
}

func loadPaths(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		DefaultFolder: "", // empty means use cwd
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}

	cfg.Playback = cfg.Playback.withDefaults()

	return cfg, nil
}

// withDefaults fills unset or out-of-range values.
func (p PlaybackConfig) withDefaults() PlaybackConfig {
	if p.BlockSize <= 0 {
		p.BlockSize = 1024
	}
	if p.PositionIntervalMS <= 0 {
		p.PositionIntervalMS = 20
	}
	if p.StopTimeoutMS <= 0 {
		p.StopTimeoutMS = 3000
	}
	return p
}

// PositionInterval returns the publisher cadence as a Duration.
func (p PlaybackConfig) PositionInterval() time.Duration {
	return time.Duration(p.PositionIntervalMS) * time.Millisecond
}

// StopTimeout returns the shutdown bound as a Duration.
func (p PlaybackConfig) StopTimeout() time.Duration {
	return time.Duration(p.StopTimeoutMS) * time.Millisecond
}

func configPaths() []string {
	paths := []string{
		// 1. XDG config dir (~/.config/wavedisplay/config.toml)
		filepath.Join(xdg.ConfigHome, "wavedisplay", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
