// Package config loads dragonfly-display settings from a TOML file and
// DFDISPLAY_* environment variables.
//
// # Precedence
//
// Command-line flags win over the environment, which wins over the file,
// which wins over built-in defaults. A missing file is not an error.
//
// # Example
//
//	[model_to_vis]
//	color_by = "boundary_condition"
//	show_grid = true
//
//	[cache]
//	driver = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

// AppName names the config and cache directories.
const AppName = "dragonfly-display"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DFDISPLAY_"

// Cache drivers.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full settings tree.
type Config struct {
	ModelToVis ModelToVis `toml:"model_to_vis"`
	Comparison Comparison `toml:"comparison"`
	Envelope   Envelope   `toml:"envelope"`
	Cache      Cache      `toml:"cache"`
	Blob       Blob       `toml:"blob"`
	Serve      Serve      `toml:"serve"`
}

// ModelToVis holds defaults of the model-to-vis command.
type ModelToVis struct {
	ColorBy         string `toml:"color_by"`
	GridDisplayMode string `toml:"grid_display_mode"`
	ShowGrid        bool   `toml:"show_grid"`
	OutputFormat    string `toml:"output_format"`
}

// Comparison holds the comparison colors.
type Comparison struct {
	BaseColor     string `toml:"base_color"`
	IncomingColor string `toml:"incoming_color"`
}

// Envelope holds defaults of the envelope edges command.
type Envelope struct {
	ExcludeCoplanar string  `toml:"exclude_coplanar"`
	LineWidth       float64 `toml:"line_width"`
}

// Cache selects and configures the output cache.
type Cache struct {
	Driver   string   `toml:"driver"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

// Blob configures S3 output targets.
type Blob struct {
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	PathStyle bool   `toml:"path_style"`
}

// Serve configures the HTTP server.
type Serve struct {
	Addr string `toml:"addr"`
	// MaxUploadMB caps the size of a request body.
	MaxUploadMB int `toml:"max_upload_mb"`
}

// Duration decodes TOML strings like "24h".
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ModelToVis: ModelToVis{
			ColorBy:         "type",
			GridDisplayMode: "Default",
			ShowGrid:        true,
			OutputFormat:    "vsf",
		},
		Comparison: Comparison{BaseColor: "#74eded", IncomingColor: "#ed7474"},
		Envelope:   Envelope{ExcludeCoplanar: "FloorPlatesOnly", LineWidth: 3},
		Cache: Cache{
			Driver: CacheNone,
			Dir:    CacheDir(),
			TTL:    Duration{7 * 24 * time.Hour},
		},
		Blob:  Blob{Region: "us-east-1"},
		Serve: Serve{Addr: ":8080", MaxUploadMB: 64},
	}
}

// Path returns the default config file location.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(dir, AppName, "config.toml")
}

// CacheDir returns the default file cache directory.
func CacheDir() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".cache")
		}
	}
	return filepath.Join(dir, AppName)
}

// Load reads path over the defaults and applies environment overrides.
// An empty path uses Path(); a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = Path()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s not found", path)
	default:
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Cache.Driver {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"unrecognized cache driver %q (choose from file, redis, none)", c.Cache.Driver)
	}
	if c.Cache.Driver == CacheRedis && c.Cache.RedisURL == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache driver redis needs redis_url")
	}
	for _, color := range []string{c.Comparison.BaseColor, c.Comparison.IncomingColor} {
		if err := errors.ValidateHexColor(color); err != nil {
			return err
		}
	}
	if c.Envelope.LineWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "line_width must not be negative")
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ModelToVis.ColorBy = getEnv("COLOR_BY", c.ModelToVis.ColorBy)
	c.ModelToVis.GridDisplayMode = getEnv("GRID_DISPLAY_MODE", c.ModelToVis.GridDisplayMode)
	c.ModelToVis.ShowGrid = getEnvAsBool("SHOW_GRID", c.ModelToVis.ShowGrid)
	c.ModelToVis.OutputFormat = getEnv("OUTPUT_FORMAT", c.ModelToVis.OutputFormat)
	c.Comparison.BaseColor = getEnv("BASE_COLOR", c.Comparison.BaseColor)
	c.Comparison.IncomingColor = getEnv("INCOMING_COLOR", c.Comparison.IncomingColor)
	c.Envelope.ExcludeCoplanar = getEnv("EXCLUDE_COPLANAR", c.Envelope.ExcludeCoplanar)
	c.Envelope.LineWidth = getEnvAsFloat("LINE_WIDTH", c.Envelope.LineWidth)
	c.Cache.Driver = getEnv("CACHE_DRIVER", c.Cache.Driver)
	c.Cache.Dir = getEnv("CACHE_DIR", c.Cache.Dir)
	c.Cache.RedisURL = getEnv("REDIS_URL", c.Cache.RedisURL)
	c.Cache.TTL.Duration = getEnvAsDuration("CACHE_TTL", c.Cache.TTL.Duration)
	c.Blob.Region = getEnv("S3_REGION", c.Blob.Region)
	c.Blob.Endpoint = getEnv("S3_ENDPOINT", c.Blob.Endpoint)
	c.Blob.PathStyle = getEnvAsBool("S3_PATH_STYLE", c.Blob.PathStyle)
	c.Serve.Addr = getEnv("ADDR", c.Serve.Addr)
	c.Serve.MaxUploadMB = getEnvAsInt("MAX_UPLOAD_MB", c.Serve.MaxUploadMB)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, ""))); err == nil {
		return v
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return defaultVal
}
