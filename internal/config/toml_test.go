package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Analyze.Top != nil || cfg.Voice.Lang != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[analyze]
top = 20
save = true

[voice]
enabled = false
lang = "en-GB"
rate = 1.25
command = "say -v Daniel"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Analyze.Top == nil || *cfg.Analyze.Top != 20 {
		t.Fatalf("unexpected top: %v", cfg.Analyze.Top)
	}
	if cfg.Analyze.Save == nil || !*cfg.Analyze.Save {
		t.Fatalf("expected save=true")
	}
	if cfg.Voice.Enabled == nil || *cfg.Voice.Enabled {
		t.Fatalf("expected voice disabled")
	}
	if cfg.Voice.Lang == nil || *cfg.Voice.Lang != "en-GB" {
		t.Fatalf("unexpected lang: %v", cfg.Voice.Lang)
	}
	if cfg.Voice.Rate == nil || *cfg.Voice.Rate != 1.25 {
		t.Fatalf("unexpected rate: %v", cfg.Voice.Rate)
	}
	if cfg.Voice.Pitch != nil {
		t.Fatalf("expected pitch to stay unset")
	}
	if cfg.Voice.Command == nil || *cfg.Voice.Command != "say -v Daniel" {
		t.Fatalf("unexpected command: %v", cfg.Voice.Command)
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analyze]\ncolour = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	if got := DefaultConfigPath(); got != filepath.Join(dir, "textlens", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join(dir, "textlens", "textlens.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
