// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analyze AnalyzeConfig `toml:"analyze"`
	Voice   VoiceConfig   `toml:"voice"`
}

// AnalyzeConfig maps analysis-related settings.
type AnalyzeConfig struct {
	Top  *int  `toml:"top"`
	Save *bool `toml:"save"`
}

// VoiceConfig maps spoken-audio settings.
type VoiceConfig struct {
	Enabled *bool    `toml:"enabled"`
	Lang    *string  `toml:"lang"`
	Rate    *float64 `toml:"rate"`
	Pitch   *float64 `toml:"pitch"`
	Command *string  `toml:"command"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
