package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ladybug-tools/dragonfly-display/pkg/buildinfo"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v; want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		key  string
		ttl  time.Duration
		hit  bool
	}{
		{"no expiry", "a", 0, true},
		{"future expiry", "b", time.Hour, true},
		{"expired", "c", -time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := c.Set(ctx, tt.key, []byte(tt.key), tt.ttl); err != nil {
				t.Fatal(err)
			}
			// a negative ttl is stored without expiry; force one in the past
			if tt.ttl < 0 {
				if err := os.WriteFile(c.path(tt.key), []byte(`{"data":"Yw==","expires_at":"2000-01-01T00:00:00Z"}`), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			data, hit, err := c.Get(ctx, tt.key)
			if err != nil {
				t.Fatal(err)
			}
			if hit != tt.hit {
				t.Fatalf("Get(%q) hit = %v, want %v", tt.key, hit, tt.hit)
			}
			if hit && string(data) != tt.key {
				t.Errorf("Get(%q) = %q", tt.key, data)
			}
		})
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get() hit = %v, err = %v; want clean miss", hit, err)
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("%d entries left in %s", len(entries), c.Dir())
	}
}

func TestHash(t *testing.T) {
	h1, h2, h3 := Hash([]byte("hello")), Hash([]byte("hello")), Hash([]byte("world"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	v1 := k.VisSetKey("abc", VisSetKeyOpts{Kind: "model", Options: map[string]any{"color_by": "type"}})
	v2 := k.VisSetKey("abc", VisSetKeyOpts{Kind: "model", Options: map[string]any{"color_by": "none"}})
	v3 := k.VisSetKey("abc", VisSetKeyOpts{Kind: "envelope", Options: map[string]any{"color_by": "type"}})
	if v1 == v2 || v1 == v3 {
		t.Error("different options should produce different keys")
	}
	if !strings.HasPrefix(v1, "visset:") {
		t.Errorf("VisSetKey = %q", v1)
	}
	if k.OutputKey("abc", "vsf") == k.OutputKey("abc", "pkl") {
		t.Error("different formats should produce different keys")
	}
}

func TestDefaultKeyerVersion(t *testing.T) {
	opts := VisSetKeyOpts{Kind: "model", Options: map[string]any{"color_by": "type"}}
	v1 := DefaultKeyer{Version: "v1.0.0"}
	v2 := DefaultKeyer{Version: "v1.0.1"}

	if v1.VisSetKey("abc", opts) == v2.VisSetKey("abc", opts) {
		t.Error("VisSetKey should change with the build version")
	}
	if v1.OutputKey("abc", "vsf") == v2.OutputKey("abc", "vsf") {
		t.Error("OutputKey should change with the build version")
	}
	if got, want := NewDefaultKeyer().VisSetKey("abc", opts), (DefaultKeyer{Version: buildinfo.Version}).VisSetKey("abc", opts); got != want {
		t.Errorf("NewDefaultKeyer() keys %q, want the running build's %q", got, want)
	}
}

func TestScopedKeyer(t *testing.T) {
	tests := []struct {
		name  string
		inner Keyer
	}{
		{"default inner", NewDefaultKeyer()},
		{"nil inner", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewScopedKeyer(tt.inner, "serve:")
			want := "serve:" + NewDefaultKeyer().OutputKey("h", "json")
			if got := k.OutputKey("h", "json"); got != want {
				t.Errorf("OutputKey = %q, want %q", got, want)
			}
			if got := k.VisSetKey("h", VisSetKeyOpts{}); !strings.HasPrefix(got, "serve:visset:") {
				t.Errorf("VisSetKey = %q", got)
			}
		})
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("wrapped error should unwrap to ErrNetwork")
	}
	if IsRetryable(ErrNetwork) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	retryDelay = time.Millisecond
	defer func() { retryDelay = 100 * time.Millisecond }()
	permanent := errors.New("permanent")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent error", 1, permanent, 1, permanent},
		{"retry then succeed", 1, Retryable(ErrNetwork), 2, nil},
		{"exhausted", 5, Retryable(ErrNetwork), 3, ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil || tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache("not-a-url", "dfdisplay:"); err == nil {
		t.Error("NewRedisCache() accepted an invalid url")
	}
	c, err := NewRedisCache("redis://localhost:6379/0", "dfdisplay:")
	if err != nil {
		t.Fatalf("NewRedisCache() error = %v", err)
	}
	defer c.Close()
	if c.prefix != "dfdisplay:" {
		t.Errorf("prefix = %q", c.prefix)
	}
}
