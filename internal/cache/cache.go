package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching loaded artifacts.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a namespaced cache key for a file of the given kind
// (template, snippets, report) at the given path.
func Key(kind, path string) string {
	hash := sha256.Sum256([]byte(path))
	return "dcasgen:v1:" + kind + ":" + hex.EncodeToString(hash[:])
}
