package cache

import "github.com/matzehuels/songtiles/pkg/layout"

// ArtifactKeyOpts holds everything besides the track list that changes a
// generated document.
type ArtifactKeyOpts struct {
	Format string         `json:"format"`
	Layout layout.Options `json:"layout"`
	Footer string         `json:"footer"`
}

// Keyer builds cache keys.
type Keyer interface {
	// PlaylistKey addresses the track list of a playlist.
	PlaylistKey(id string) string
	// ArtifactKey addresses a document rendered from the track list
	// whose content hash is tracksHash.
	ArtifactKey(tracksHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlaylistKey returns "playlist:<id>".
func (DefaultKeyer) PlaylistKey(id string) string {
	return "playlist:" + id
}

// ArtifactKey hashes the options together with tracksHash.
func (DefaultKeyer) ArtifactKey(tracksHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", tracksHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer. The server uses it to
// keep its entries apart from other tenants of a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PlaylistKey returns the prefixed playlist key.
func (k *ScopedKeyer) PlaylistKey(id string) string {
	return k.prefix + k.inner.PlaylistKey(id)
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(tracksHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(tracksHash, opts)
}
