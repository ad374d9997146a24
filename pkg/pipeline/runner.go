package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ladybug-tools/dragonfly-display/pkg/cache"
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/observability"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// Runner wraps the builders with caching and observability hooks.
// Both the CLI and the HTTP server use it.
//
// A Runner keeps no state besides its cache and logger, so one value can
// serve concurrent requests with different options.
type Runner struct {
	Cache cache.Cache
	Keyer cache.Keyer
	// TTL bounds cached sets and outputs. Zero uses the cache package
	// defaults.
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// uses cache.DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Request is one visualization run.
type Request struct {
	// Kind is KindModel, KindComparison or KindEnvelope.
	Kind  string
	Model *dragonfly.Model
	// Incoming is the second model of a comparison.
	Incoming *dragonfly.Model
	Options  Options
	// Refresh skips the cache lookup but still stores the result.
	Refresh bool
}

// Result is the outcome of a run.
type Result struct {
	VisSet *visualization.VisualizationSet
	// SetHash identifies the built set for output caching.
	SetHash  string
	CacheHit bool
	Duration time.Duration
}

// Execute builds the visualization set of req, reusing a cached set when
// the same input was built with the same options.
//
// The input is hashed before it is normalized, so a cache hit leaves a
// model with ResetCoordinates untouched.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.Model == nil || (req.Kind == KindComparison && req.Incoming == nil) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s run is missing a model", req.Kind)
	}
	opts := req.Options
	r.applyLogger(&opts)

	inputHash, err := hashModels(req.Model, req.Incoming)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.VisSetKey(inputHash, cache.VisSetKeyOpts{Kind: req.Kind, Options: opts.keyOptions(req.Kind)})

	start := time.Now()
	if !req.Refresh {
		if vs, ok := r.cachedSet(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "visset")
			r.Logger.Debug("visualization set from cache", "kind", req.Kind, "layers", vs.Len())
			return &Result{VisSet: vs, SetHash: cache.Hash([]byte(key)), CacheHit: true, Duration: time.Since(start)}, nil
		}
		observability.Cache().OnCacheMiss(ctx, "visset")
	}

	observability.Pipeline().OnBuildStart(ctx, req.Kind)
	vs, err := build(req, opts)
	layers := 0
	if vs != nil {
		layers = vs.Len()
	}
	observability.Pipeline().OnBuildComplete(ctx, req.Kind, layers, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vs); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLVisSet)); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "visset", len(data))
		}
	}

	res := &Result{VisSet: vs, SetHash: cache.Hash([]byte(key)), Duration: time.Since(start)}
	r.Logger.Info("built visualization set", "kind", req.Kind, "layers", layers, "duration", res.Duration)
	return res, nil
}

func build(req Request, opts Options) (*visualization.VisualizationSet, error) {
	switch req.Kind {
	case KindModel:
		return ModelToVisSet(req.Model, opts)
	case KindComparison:
		return ComparisonToVisSet(req.Model, req.Incoming, opts)
	case KindEnvelope:
		return EnvelopeEdgesToVisSet(req.Model, opts)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown run kind %q", req.Kind)
}

func (r *Runner) cachedSet(ctx context.Context, key string) (*visualization.VisualizationSet, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	vs := &visualization.VisualizationSet{}
	if err := json.Unmarshal(data, vs); err != nil {
		r.Logger.Debug("dropping unreadable cached set", "error", err)
		return nil, false
	}
	return vs, true
}

// Output returns the serialized form of a built set in format, calling
// render only on a cache miss.
func (r *Runner) Output(ctx context.Context, res *Result, format string, render func() ([]byte, error)) ([]byte, error) {
	key := r.Keyer.OutputKey(res.SetHash, format)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "output")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "output")

	observability.Pipeline().OnWriteStart(ctx, format)
	start := time.Now()
	data, err := render()
	observability.Pipeline().OnWriteComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLOutput)); err == nil {
		observability.Cache().OnCacheSet(ctx, "output", len(data))
	}
	return data, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func hashModels(models ...*dragonfly.Model) (string, error) {
	var buf bytes.Buffer
	for _, m := range models {
		if m == nil {
			continue
		}
		if err := m.Write(&buf, dragonfly.EncodingJSON); err != nil {
			return "", errors.Wrap(errors.ErrCodeInternal, err, "hash model %s", m.Identifier)
		}
		buf.WriteByte('\n')
	}
	return cache.Hash(buf.Bytes()), nil
}
