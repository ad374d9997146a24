package output

import (
	"io"
	"os"

	"github.com/ladybug-tools/dragonfly-display/pkg/blob"
)

type targetKind int

const (
	toMemory targetKind = iota
	toFile
	toStream
	toBlob
)

// Target is where Write puts its result.
type Target struct {
	kind  targetKind
	path  string
	w     io.Writer
	store blob.Store
	key   string
}

// Memory returns the result from Write as a string.
func Memory() Target { return Target{kind: toMemory} }

// File writes the result to path.
func File(path string) Target { return Target{kind: toFile, path: path} }

// Stream writes the result to w.
func Stream(w io.Writer) Target { return Target{kind: toStream, w: w} }

// Stdout writes the result to standard output.
func Stdout() Target { return Stream(os.Stdout) }

// Blob puts the result into store under key.
func Blob(store blob.Store, key string) Target { return Target{kind: toBlob, store: store, key: key} }

func (t Target) String() string {
	switch t.kind {
	case toFile:
		return t.path
	case toStream:
		return "stream"
	case toBlob:
		return "blob:" + t.key
	}
	return "memory"
}
