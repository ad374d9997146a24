// Package blob stores serialized outputs in object storage.
//
// [S3Store] writes to an S3-compatible bucket (AWS S3 or MinIO) and
// [FSStore] to a local directory with the same key rules. Output targets
// of the form s3://bucket/key are split with [ParseURL].
package blob

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

// Store is a flat key/value object store.
type Store interface {
	// Put writes the object at key, replacing any existing one.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// Get opens the object at key. A missing key returns ErrCodeNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// Scheme prefixes object storage targets.
const Scheme = "s3://"

// IsURL reports whether s names an object storage target.
func IsURL(s string) bool { return strings.HasPrefix(strings.ToLower(s), Scheme) }

// ParseURL splits s3://bucket/key into its bucket and key.
func ParseURL(s string) (bucket, key string, err error) {
	if !IsURL(s) {
		return "", "", errors.New(errors.ErrCodeInvalidPath, "%q is not an %s url", s, Scheme)
	}
	rest := s[len(Scheme):]
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", errors.New(errors.ErrCodeInvalidPath, "%q needs a bucket and a key", s)
	}
	return bucket, key, nil
}

// cleanKey rejects keys that would escape a store root.
func cleanKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New(errors.ErrCodeInvalidPath, "empty key")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return "", errors.New(errors.ErrCodeInvalidPath, "invalid key %q", key)
	}
	return path.Clean(key), nil
}

// ContentType returns the content type of an output format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "vsf", "json":
		return "application/json"
	case "html":
		return "text/html; charset=utf-8"
	case "vtkjs":
		return "text/plain; charset=utf-8"
	}
	return "application/octet-stream"
}
