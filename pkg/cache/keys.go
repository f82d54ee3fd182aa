package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Style      string  `json:"style,omitempty"`
	Precision  int     `json:"precision"`
	Scale      float64 `json:"scale,omitempty"`
	Decorated  bool    `json:"decorated"`
	Canvas     string  `json:"canvas,omitempty"`
	Label      string  `json:"label,omitempty"`
	Version    string  `json:"version,omitempty"`
	ExtraParts []any   `json:"extra,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ConfigKey identifies a disk configuration (any JSON-serializable value).
	ConfigKey(config any) string
	// ArtifactKey identifies one rendered output of a configuration.
	ArtifactKey(configKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes its inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) ConfigKey(config any) string {
	return hashKey("config", config)
}

func (DefaultKeyer) ArtifactKey(configKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configKey, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, e.g. to share one Redis
// database between deployments.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (DefaultKeyer if nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ConfigKey(config any) string {
	return k.prefix + k.inner.ConfigKey(config)
}

func (k *ScopedKeyer) ArtifactKey(configKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(configKey, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data as 64 hex characters.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
