package blob

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		in          string
		bucket, key string
		wantErr     bool
	}{
		{"s3://viz/models/district.html", "viz", "models/district.html", false},
		{"S3://viz/a.json", "viz", "a.json", false},
		{"s3://viz", "", "", true},
		{"s3:///key", "", "", true},
		{"viz/key", "", "", true},
	}
	for _, tt := range tests {
		bucket, key, err := ParseURL(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if bucket != tt.bucket || key != tt.key {
			t.Errorf("ParseURL(%q) = %q, %q, want %q, %q", tt.in, bucket, key, tt.bucket, tt.key)
		}
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"JSON":  "application/json",
		"vsf":   "application/json",
		"html":  "text/html; charset=utf-8",
		"vtkjs": "text/plain; charset=utf-8",
		"pkl":   "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestFSStore(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := s.Put(ctx, "out/district.json", strings.NewReader(`{"a":1}`), "application/json"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	rc, err := s.Get(ctx, "out/district.json")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != `{"a":1}` {
		t.Errorf("data = %q", data)
	}

	if _, err := s.Get(ctx, "missing.json"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing key error = %v", err)
	}
	for _, key := range []string{"", "/abs", "../escape"} {
		if err := s.Put(ctx, key, strings.NewReader("x"), ""); !errors.Is(err, errors.ErrCodeInvalidPath) {
			t.Errorf("Put(%q) error = %v, want %s", key, err, errors.ErrCodeInvalidPath)
		}
	}
}

// fakeS3 answers path-style PUT and GET object requests from memory.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.TrimPrefix(req.URL.Path, "/")
	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		f.objects[key] = body
		f.types[key] = req.Header.Get("Content-Type")
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{"ETag": {`"etag"`}}}, nil
	case http.MethodGet:
		if body, ok := f.objects[key]; ok {
			return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewReader(body)), Header: http.Header{}}, nil
		}
		body := `<?xml version="1.0"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`
		return &http.Response{StatusCode: 404, Body: io.NopCloser(strings.NewReader(body)), Header: http.Header{"Content-Type": {"application/xml"}}}, nil
	}
	return &http.Response{StatusCode: 501, Body: io.NopCloser(bytes.NewReader(nil)), Header: http.Header{}}, nil
}

func TestS3Store(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIA")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	s, err := NewS3Store(context.Background(),
		S3Config{Bucket: "viz", Endpoint: "https://mock.s3.local", PathStyle: true},
		func(o *s3.Options) {
			o.HTTPClient = &http.Client{Transport: fake}
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		},
	)
	if err != nil {
		t.Fatalf("NewS3Store() error = %v", err)
	}
	if s.Bucket() != "viz" {
		t.Errorf("Bucket() = %q", s.Bucket())
	}
	ctx := context.Background()
	if err := s.Put(ctx, "district.html", strings.NewReader("<html></html>"), ContentType("html")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got := fake.types["viz/district.html"]; got != ContentType("html") {
		t.Errorf("content type = %q", got)
	}

	if _, err := s.Get(ctx, "missing.html"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing key error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestNewS3StoreNeedsBucket(t *testing.T) {
	if _, err := NewS3Store(context.Background(), S3Config{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
