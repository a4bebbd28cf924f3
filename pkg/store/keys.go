package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// DefaultNamespace prefixes keys when no namespace is configured.
const DefaultNamespace = "layercanvas"

// Keyer derives backend keys from canvas IDs.
//
// Example usage:
//
//	// Separate namespaces for staging and production
//	staging := NewKeyer("layercanvas:staging")
//	staging.CanvasKey("f3c1...") // "layercanvas:staging:canvas:f3c1..."
type Keyer struct {
	namespace string
}

// NewKeyer creates a keyer for the given namespace. An empty namespace
// selects DefaultNamespace.
func NewKeyer(namespace string) Keyer {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return Keyer{namespace: namespace}
}

// CanvasKey returns the key holding the snapshot of one canvas.
func (k Keyer) CanvasKey(id string) string {
	return k.namespace + ":canvas:" + id
}

// IndexKey returns the key of the set listing all canvas keys.
func (k Keyer) IndexKey() string {
	return k.namespace + ":canvases"
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
