package cache

import "github.com/ladybug-tools/dragonfly-display/pkg/buildinfo"

// VisSetKeyOpts are the options that change a built visualization set.
type VisSetKeyOpts struct {
	// Kind is model, comparison or envelope.
	Kind    string `json:"kind"`
	Options any    `json:"options"`
}

// Keyer derives cache keys.
type Keyer interface {
	// VisSetKey keys a visualization set built from the hashed input.
	VisSetKey(inputHash string, opts VisSetKeyOpts) string
	// OutputKey keys a visualization set serialized in a format.
	OutputKey(setHash, format string) string
}

// DefaultKeyer hashes options into keys. Version is mixed into every key so
// a new build never reads entries written by an older one.
type DefaultKeyer struct {
	Version string
}

// NewDefaultKeyer returns a keyer for the running build.
func NewDefaultKeyer() Keyer { return DefaultKeyer{Version: buildinfo.Version} }

func (k DefaultKeyer) VisSetKey(inputHash string, opts VisSetKeyOpts) string {
	return hashKey("visset", k.Version, inputHash, opts)
}

func (k DefaultKeyer) OutputKey(setHash, format string) string {
	return hashKey("output", k.Version, setHash, format)
}
