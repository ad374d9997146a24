// Package observability provides hooks for metrics around visualization
// builds, cache use and the HTTP surface.
//
// # Architecture
//
// Hook interfaces have no-op defaults and a process-wide registry. Main
// packages register an implementation at startup ([Metrics] exports
// Prometheus collectors); libraries only call the hooks.
//
// # Usage
//
//	m := observability.NewMetrics(prometheus.NewRegistry())
//	observability.SetPipelineHooks(m)
//	observability.SetCacheHooks(m)
//	observability.SetHTTPHooks(m)
//
// Libraries emit events:
//
//	observability.Pipeline().OnBuildStart(ctx, "model")
//	observability.Pipeline().OnBuildComplete(ctx, "model", layers, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hook interfaces
// =============================================================================

// PipelineHooks receives events from visualization runs.
type PipelineHooks interface {
	// OnBuildStart fires before a visualization set is built. Kind is
	// model, comparison or envelope.
	OnBuildStart(ctx context.Context, kind string)
	OnBuildComplete(ctx context.Context, kind string, layers int, duration time.Duration, err error)

	// OnWriteStart fires before a visualization set is serialized.
	OnWriteStart(ctx context.Context, format string)
	OnWriteComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op implementations
// =============================================================================

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnBuildStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnWriteStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnWriteComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
