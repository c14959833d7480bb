package cache

// ScopedKeyer wraps a Keyer with a prefix. Item IDs are only unique within
// a portal, so the CLI scopes keys by portal host:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "www.arcgis.com:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// GraphKey generates a prefixed key for item graph caching.
func (k *ScopedKeyer) GraphKey(itemIDs []string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(itemIDs, opts)
}
