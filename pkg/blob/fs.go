package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

// FSStore keeps objects as files under a root directory.
type FSStore struct {
	root string
}

// NewFSStore returns a store rooted at dir, creating it when missing.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}
	return &FSStore{root: dir}, nil
}

// Root returns the store directory.
func (s *FSStore) Root() string { return s.root }

func (s *FSStore) path(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

func (s *FSStore) Put(_ context.Context, key string, r io.Reader, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", filepath.Dir(p))
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".put-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", key)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", key)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", key)
	}
	return nil
}

func (s *FSStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "%s not found", key)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", key)
	}
	return f, nil
}
