package visual

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the parallelism of a batch hashing pass.
const DefaultWorkers = 4

// Hasher computes image hashes through a persistent cache.
type Hasher struct {
	cache   *Cache
	workers int
}

// NewHasher creates a hasher backed by cache. workers bounds batch
// parallelism; values below 1 fall back to DefaultWorkers.
func NewHasher(cache *Cache, workers int) *Hasher {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Hasher{cache: cache, workers: workers}
}

// HashPath returns the hash for the image at path, consulting the cache
// first and storing a freshly computed hash back into it.
func (h *Hasher) HashPath(path string) (Hash, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	mtime := info.ModTime().UnixNano()

	if cached, ok := h.cache.Get(path, mtime); ok {
		return cached, nil
	}

	hash, err := HashFile(path)
	if err != nil {
		return 0, err
	}
	h.cache.Put(path, mtime, hash)
	return hash, nil
}

// HashAll hashes the given files with bounded parallelism and returns the
// hashes keyed by path. Files that cannot be decoded (videos, corrupt
// images) are logged and skipped rather than failing the batch; only
// context cancellation aborts it.
func (h *Hasher) HashAll(ctx context.Context, paths []string) (map[string]Hash, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)

	var mu sync.Mutex
	hashes := make(map[string]Hash)

	for _, path := range paths {
		path := path // capture
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hash, err := h.HashPath(path)
			if err != nil {
				slog.Debug("skipping unhashable file", "path", path, "error", err)
				return nil
			}
			mu.Lock()
			hashes[path] = hash
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

// Pair is one near-duplicate candidate: two files whose hashes are within
// the search threshold.
type Pair struct {
	A, B     string
	Distance int
}

// FindNearDuplicates compares every hash against every other and returns
// the pairs within threshold, ordered by distance then path. Paths are
// sorted before comparison so the output is deterministic.
func FindNearDuplicates(hashes map[string]Hash, threshold int) []Pair {
	paths := make([]string, 0, len(hashes))
	for p := range hashes {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var pairs []Pair
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			d := Distance(hashes[paths[i]], hashes[paths[j]])
			if d <= threshold {
				pairs = append(pairs, Pair{A: paths[i], B: paths[j], Distance: d})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Distance != pairs[j].Distance {
			return pairs[i].Distance < pairs[j].Distance
		}
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}
