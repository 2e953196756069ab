package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion invalidates entries written by older renderers.
const keyVersion = "v1"

// Keyer generates cache keys.
type Keyer interface {
	ArtifactKey(text string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render inputs that identify an artifact.
// Options must already be resolved so that equivalent inputs share a key.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Scale   float64 `json:"scale,omitempty"`
	Options any     `json:"options"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>" over the text and options.
func (DefaultKeyer) ArtifactKey(text string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", keyVersion, text, opts)
}

// ScopedKeyer namespaces the keys of another Keyer, so that the server and
// the CLI can share one Redis database.
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer prefixes every key produced by inner (the default keyer
// when nil).
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

// ArtifactKey implements Keyer.
func (k ScopedKeyer) ArtifactKey(text string, opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(text, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey hashes the JSON encoding of parts under prefix.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	// Key parts are plain values; encoding cannot fail.
	_ = json.NewEncoder(h).Encode(parts)
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
