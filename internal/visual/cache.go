package visual

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// DefaultCachePath returns the standard hash cache location in the user's
// home directory.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".photo_sorter_phash.json"
	}
	return filepath.Join(home, ".photo_sorter_phash.json")
}

type cacheEntry struct {
	Phash string `json:"phash"`
	Mtime int64  `json:"mtime"`
}

// Cache is a persistent image-hash cache keyed by file path.
//
// Each entry records the file's modification time at hashing; an entry
// whose mtime no longer matches the file is treated as absent, so edited
// files are rehashed. The cache is a flat JSON object on disk, loaded
// lazily and flushed on every store. A failed flush is logged and the
// in-memory entry kept.
type Cache struct {
	path string

	mu      sync.Mutex
	entries map[string]cacheEntry
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
	c.entries = make(map[string]cacheEntry)

	data, err := os.ReadFile(c.path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		slog.Warn("hash cache unreadable, starting empty", "path", c.path, "error", err)
		c.entries = make(map[string]cacheEntry)
	}
}

// Get returns the cached hash for path if one exists for the given mtime.
func (c *Cache) Get(path string, mtime int64) (Hash, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()

	entry, ok := c.entries[path]
	if !ok || entry.Mtime != mtime {
		return 0, false
	}
	h, err := ParseHash(entry.Phash)
	if err != nil {
		return 0, false
	}
	return h, true
}

// Put stores the hash for path at mtime and flushes the cache to disk.
func (c *Cache) Put(path string, mtime int64, h Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load()
	c.entries[path] = cacheEntry{Phash: h.String(), Mtime: mtime}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		slog.Warn("hash cache dir create failed", "path", c.path, "error", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		slog.Warn("hash cache write failed", "path", c.path, "error", err)
	}
}
