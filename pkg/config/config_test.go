package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.ModelToVis.ShowGrid || cfg.ModelToVis.OutputFormat != "vsf" {
		t.Errorf("ModelToVis = %+v", cfg.ModelToVis)
	}
	if cfg.Cache.Driver != CacheNone || cfg.Cache.TTL.Duration != 7*24*time.Hour {
		t.Errorf("Cache = %+v, want no cache by default", cfg.Cache)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[model_to_vis]
color_by = "boundary_condition"
show_grid = false

[comparison]
base_color = "#000000"

[envelope]
exclude_coplanar = "All"
line_width = 1.5

[cache]
driver = "none"
ttl = "2h"

[serve]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ModelToVis.ColorBy != "boundary_condition" || cfg.ModelToVis.ShowGrid {
		t.Errorf("ModelToVis = %+v", cfg.ModelToVis)
	}
	if cfg.ModelToVis.GridDisplayMode != "Default" {
		t.Errorf("unset grid mode = %q, want default", cfg.ModelToVis.GridDisplayMode)
	}
	if cfg.Comparison.BaseColor != "#000000" || cfg.Comparison.IncomingColor != "#ed7474" {
		t.Errorf("Comparison = %+v", cfg.Comparison)
	}
	if cfg.Envelope.ExcludeCoplanar != "All" || cfg.Envelope.LineWidth != 1.5 {
		t.Errorf("Envelope = %+v", cfg.Envelope)
	}
	if cfg.Cache.Driver != CacheNone || cfg.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Serve.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Serve.Addr)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[model_to_vis]\ncolor_by = \"none\"\n")
	t.Setenv("DFDISPLAY_COLOR_BY", "type")
	t.Setenv("DFDISPLAY_SHOW_GRID", "false")
	t.Setenv("DFDISPLAY_LINE_WIDTH", "4")
	t.Setenv("DFDISPLAY_CACHE_TTL", "30m")
	t.Setenv("DFDISPLAY_MAX_UPLOAD_MB", "not-a-number")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModelToVis.ColorBy != "type" || cfg.ModelToVis.ShowGrid {
		t.Errorf("ModelToVis = %+v", cfg.ModelToVis)
	}
	if cfg.Envelope.LineWidth != 4 || cfg.Cache.TTL.Duration != 30*time.Minute {
		t.Errorf("LineWidth = %v, TTL = %v", cfg.Envelope.LineWidth, cfg.Cache.TTL)
	}
	if cfg.Serve.MaxUploadMB != 64 {
		t.Errorf("bad int override changed MaxUploadMB to %d", cfg.Serve.MaxUploadMB)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   errors.Code
	}{
		{"unknown driver", func(c *Config) { c.Cache.Driver = "memcached" }, errors.ErrCodeInvalidInput},
		{"redis without url", func(c *Config) { c.Cache.Driver = CacheRedis }, errors.ErrCodeInvalidInput},
		{"bad color", func(c *Config) { c.Comparison.BaseColor = "blue" }, errors.ErrCodeInvalidColor},
		{"negative width", func(c *Config) { c.Envelope.LineWidth = -1 }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[cache\ndriver = ")
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
