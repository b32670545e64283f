// Package cache provides content-addressed caching of rendered artifacts.
//
// Rendering DOT to SVG goes through a WebAssembly Graphviz build, which is
// slow for large trees. Since the output is a pure function of the DOT
// source, artifacts are cached under the hash of their input and never need
// invalidation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a cached artifact. The second return reports whether
	// the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores an artifact. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes an artifact. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Hash computes a SHA-256 content hash of data as a 64-character hex string.
// Artifact keys are derived from the rendering input with this function.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DefaultDir returns the default cache directory, ~/.cache/objscope.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "objscope"), nil
}
