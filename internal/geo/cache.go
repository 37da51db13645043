package geo

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultCachePath returns the standard geocode cache location in the
// user's home directory.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".photo_sorter_geocache.json"
	}
	return filepath.Join(home, ".photo_sorter_geocache.json")
}

// Cache is a persistent place-label cache keyed by "lat,lon" strings.
//
// The cache is a flat JSON object on disk and is loaded lazily on first
// access. Writes are flushed immediately; a failed flush is logged and the
// in-memory entry kept, so a read-only home directory degrades to a
// per-process cache.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]string
	loaded  bool
}

// NewCache creates a cache backed by the JSON file at path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

func (c *Cache) load() {
	if c.loaded {
		return
	}
	c.loaded = true
	c.entries = make(map[string]string)

	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		slog.Warn("geocode cache unreadable, starting empty", "path", c.path, "error", err)
		c.entries = make(map[string]string)
	}
}

// Get returns the cached label for key.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores the label for key and flushes the cache to disk.
func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	c.entries[key] = value

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		slog.Warn("geocode cache dir create failed", "path", c.path, "error", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		slog.Warn("geocode cache write failed", "path", c.path, "error", err)
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	return len(c.entries)
}
