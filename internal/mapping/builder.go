// Package mapping orchestrates scanning, metadata extraction and grouping
// into a group-key -> file-list structure, with per-source caching.
package mapping

import (
	"log/slog"
	"sync"
	"time"

	"github.com/zoidzter/photo-sorter/internal/exif"
	"github.com/zoidzter/photo-sorter/internal/group"
	"github.com/zoidzter/photo-sorter/internal/model"
	"github.com/zoidzter/photo-sorter/internal/pathutil"
	"github.com/zoidzter/photo-sorter/internal/scan"
)

// DefaultTTL is how long a built mapping stays valid for a source path.
const DefaultTTL = 300 * time.Second

// ProgressFunc receives build progress after each processed file. The
// total is exact: the scan is materialized before extraction starts.
type ProgressFunc func(done, total int, currentFile string)

// Result is an immutable snapshot of one mapping build.
type Result struct {
	// Source is the normalized source path the mapping was built from.
	Source string

	// BuiltAt is when the build completed, used for TTL expiry.
	BuiltAt time.Time

	// Mapping holds the grouped and flat file lists.
	Mapping *model.Mapping
}

// Builder runs the scan -> extract -> group pipeline and caches results
// per normalized source path.
//
// The cache holds immutable Result snapshots behind its own mutex. Two
// callers racing to build the same source both do the work and the last
// write wins; that wastes effort but cannot corrupt state.
type Builder struct {
	extractor *exif.Extractor
	namer     *group.Namer
	ttl       time.Duration

	mu    sync.Mutex
	cache map[string]*Result

	// scanFn is replaceable in tests.
	scanFn func(root string, extensions []string, recursive bool) ([]model.MediaFile, error)
}

// NewBuilder creates a Builder. A zero ttl selects DefaultTTL.
func NewBuilder(extractor *exif.Extractor, namer *group.Namer, ttl time.Duration) *Builder {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Builder{
		extractor: extractor,
		namer:     namer,
		ttl:       ttl,
		cache:     make(map[string]*Result),
		scanFn:    scan.Scan,
	}
}

// Build returns the mapping for source.
//
// The source path is normalized first and used as the cache key. With
// useCache set, a cached result younger than the TTL is returned as-is
// without rescanning. Otherwise the pipeline runs: the scan is
// materialized (so progress totals are exact), each file is extracted and
// grouped in scan order, and progress is reported after every file. A
// panicking progress callback is recovered and does not abort the build.
//
// The fresh result replaces any prior cache entry for the path before
// returning. Build fails only when the scan itself fails (notably
// *scan.NotFoundError for a missing root).
func (b *Builder) Build(source string, progress ProgressFunc, useCache bool) (*Result, error) {
	normalized := pathutil.NormalizeUserPath(source)

	if useCache {
		if cached := b.lookup(normalized); cached != nil {
			return cached, nil
		}
	}

	files, err := b.scanFn(normalized, nil, true)
	if err != nil {
		return nil, err
	}

	total := len(files)
	report(progress, 0, total, normalized)

	m := model.NewMapping()
	for i, file := range files {
		meta := b.extractor.Extract(file)
		m.Add(b.namer.GroupName(meta), file)
		report(progress, i+1, total, file.Path)
	}

	result := &Result{
		Source:  normalized,
		BuiltAt: time.Now(),
		Mapping: m,
	}

	b.mu.Lock()
	b.cache[normalized] = result
	b.mu.Unlock()

	slog.Debug("mapping built", "source", normalized, "files", total, "groups", len(m.Keys))
	return result, nil
}

// Invalidate drops any cached result for source.
func (b *Builder) Invalidate(source string) {
	normalized := pathutil.NormalizeUserPath(source)
	b.mu.Lock()
	delete(b.cache, normalized)
	b.mu.Unlock()
}

func (b *Builder) lookup(normalized string) *Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, ok := b.cache[normalized]
	if !ok {
		return nil
	}
	if time.Since(entry.BuiltAt) > b.ttl {
		delete(b.cache, normalized)
		return nil
	}
	return entry
}

// report invokes the progress callback, swallowing panics so a broken
// callback cannot abort the build.
func report(progress ProgressFunc, done, total int, current string) {
	if progress == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("progress callback panicked", "panic", r)
		}
	}()
	progress(done, total, current)
}
