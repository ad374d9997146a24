package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnBuildStart(ctx, "model")
	p.OnBuildComplete(ctx, "model", 10, time.Second, nil)
	p.OnWriteStart(ctx, "vsf")
	p.OnWriteComplete(ctx, "vsf", 1024, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "visset")
	c.OnCacheMiss(ctx, "output")
	c.OnCacheSet(ctx, "output", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/model-to-vis")
	h.OnResponse(ctx, "POST", "/model-to-vis", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	m := NewMetrics(prometheus.NewRegistry())
	SetPipelineHooks(m)
	SetCacheHooks(m)
	SetHTTPHooks(m)
	if Pipeline() != PipelineHooks(m) || Cache() != CacheHooks(m) || HTTP() != HTTPHooks(m) {
		t.Error("Set*Hooks should register the metrics")
	}

	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(m) {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics(prometheus.NewRegistry())

	m.OnBuildComplete(ctx, "model", 10, time.Millisecond, nil)
	m.OnBuildComplete(ctx, "model", 0, time.Millisecond, errors.New("boom"))
	m.OnWriteComplete(ctx, "vsf", 300, time.Millisecond, nil)
	m.OnWriteComplete(ctx, "vsf", 200, time.Millisecond, nil)
	m.OnCacheHit(ctx, "output")
	m.OnCacheMiss(ctx, "output")
	m.OnCacheMiss(ctx, "output")
	m.OnResponse(ctx, "POST", "/model-to-vis", 200, time.Millisecond)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"builds ok", m.builds.WithLabelValues("model", "ok"), 1},
		{"builds error", m.builds.WithLabelValues("model", "error"), 1},
		{"write bytes", m.writeBytes.WithLabelValues("vsf"), 500},
		{"cache hits", m.cache.WithLabelValues("output", "hit"), 1},
		{"cache misses", m.cache.WithLabelValues("output", "miss"), 2},
		{"requests", m.requests.WithLabelValues("POST", "/model-to-vis", "200"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.c); got != tt.want {
				t.Errorf("value = %v, want %v", got, tt.want)
			}
		})
	}
}
