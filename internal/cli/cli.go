package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ladybug-tools/dragonfly-display/pkg/cache"
	"github.com/ladybug-tools/dragonfly-display/pkg/config"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/output"
	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
	"github.com/ladybug-tools/dragonfly-display/pkg/vtk"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// redisPrefix namespaces CLI entries in a shared redis.
	redisPrefix = "dfdisplay:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	// Config is loaded by the root command before any subcommand runs.
	Config config.Config
}

// New creates a new CLI instance with a default logger and built-in settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Driver {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(c.Config.Cache.RedisURL, redisPrefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open redis cache")
		}
		return rc, nil
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Debug("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// newFormatter returns a formatter with the vtk.js backend installed.
func (c *CLI) newFormatter() *output.Formatter {
	return output.New(vtk.New(c.Logger), c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/dragonfly-display/).
func cacheDir() (string, error) {
	if os.Getenv("XDG_CACHE_HOME") == "" {
		if _, err := os.UserHomeDir(); err != nil {
			return "", err
		}
	}
	return config.CacheDir(), nil
}
