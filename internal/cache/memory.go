package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory caches loaded artifact bytes (templates, reports, snippet
// libraries) in process memory with per-entry TTLs. Entries are copied
// on both Set and Get so a cached artifact cannot change underneath a
// parser holding the slice.
type Memory struct {
	entries *gocache.Cache
}

// NewMemory builds an in-memory artifact cache. Entries written with a
// zero TTL fall back to defaultTTL; sweepEvery controls how often
// expired entries are evicted.
func NewMemory(defaultTTL, sweepEvery time.Duration) *Memory {
	return &Memory{entries: gocache.New(defaultTTL, sweepEvery)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	val, found := m.entries.Get(key)
	if !found {
		return nil, false
	}
	return clone(val.([]byte)), true
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	// gocache treats a zero expiration as "use the default", which is
	// exactly the fallback NewMemory promises.
	m.entries.Set(key, clone(value), ttl)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.entries.Delete(key)
	return nil
}

// Clear drops every cached artifact, forcing the next load of each
// path to go back to disk.
func (m *Memory) Clear() error {
	m.entries.Flush()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
