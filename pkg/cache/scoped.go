package cache

// ScopedKeyer prefixes every key of an inner keyer, keeping the entries of
// one surface (the CLI, the HTTP server) apart in a shared backend.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls
// back to the default one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) VisSetKey(inputHash string, opts VisSetKeyOpts) string {
	return k.prefix + k.inner.VisSetKey(inputHash, opts)
}

func (k *ScopedKeyer) OutputKey(setHash, format string) string {
	return k.prefix + k.inner.OutputKey(setHash, format)
}
