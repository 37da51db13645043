package job

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/zoidzter/photo-sorter/internal/copier"
	"github.com/zoidzter/photo-sorter/internal/fsutil"
	"github.com/zoidzter/photo-sorter/internal/mapping"
	"github.com/zoidzter/photo-sorter/internal/pathutil"
)

// GroupSummary is one group entry in a preview payload.
type GroupSummary struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	Samples []string `json:"samples"`
}

// PreviewPayload is the summarized mapping stored on a finished preview
// job: group names, per-group counts, and up to maxSamples sample file
// paths per group.
type PreviewPayload struct {
	Total  int            `json:"total"`
	Groups []GroupSummary `json:"groups"`
}

const maxSamples = 3

// PreviewRunner launches background mapping builds that publish progress
// and a summarized result into a job store.
type PreviewRunner struct {
	builder *mapping.Builder
	store   *Store
}

// NewPreviewRunner creates a preview runner publishing into store.
func NewPreviewRunner(builder *mapping.Builder, store *Store) *PreviewRunner {
	return &PreviewRunner{builder: builder, store: store}
}

// Store returns the job store the runner publishes into.
func (r *PreviewRunner) Store() *Store {
	return r.store
}

// Start submits a preview job for source and returns its id immediately.
//
// One goroutine runs the job to completion; there is no cancellation.
// Callers poll the store until the job reaches a terminal state.
func (r *PreviewRunner) Start(source string) string {
	id := newJobID()
	r.store.Create(id, Record{
		FieldState:     StatePending,
		FieldProcessed: 0,
		FieldTotal:     0,
		FieldErrors:    []string{},
	})
	go r.run(id, source)
	return id
}

func (r *PreviewRunner) run(id, source string) {
	defer r.recoverToError(id)

	r.store.Update(id, Record{
		FieldState:     StateRunning,
		FieldStartTime: nowUnix(),
	})

	progress := func(done, total int, current string) {
		r.store.Update(id, Record{
			FieldTotal:       total,
			FieldProcessed:   done,
			FieldCurrentFile: current,
			FieldLastUpdate:  nowUnix(),
		})
	}

	result, err := r.builder.Build(source, progress, true)
	if err != nil {
		r.store.Update(id, Record{
			FieldState:        StateError,
			FieldError:        err.Error(),
			FieldFinishedTime: nowUnix(),
		})
		return
	}

	m := result.Mapping
	payload := PreviewPayload{Total: len(m.Files)}
	for _, key := range m.Keys {
		files := m.Groups[key]
		summary := GroupSummary{Name: key, Count: len(files)}
		for _, f := range files {
			if len(summary.Samples) == maxSamples {
				break
			}
			summary.Samples = append(summary.Samples, pathutil.DisplayPath(f.Path))
		}
		payload.Groups = append(payload.Groups, summary)
	}

	r.store.Update(id, Record{
		FieldState:        StateDone,
		FieldResult:       payload,
		FieldFinishedTime: nowUnix(),
	})
}

// CopyRunner launches background copy jobs driving the Copier per file.
type CopyRunner struct {
	builder *mapping.Builder
	store   *Store
}

// NewCopyRunner creates a copy runner publishing into store.
func NewCopyRunner(builder *mapping.Builder, store *Store) *CopyRunner {
	return &CopyRunner{builder: builder, store: store}
}

// Store returns the job store the runner publishes into.
func (r *CopyRunner) Store() *Store {
	return r.store
}

// Start submits a copy job from source into dest and returns its id
// immediately. When group is non-empty only that group is copied. A dry
// run walks the full mapping and reports per-file outcomes without
// copying any file contents.
//
// Like previews, copy jobs are fire-and-forget with no cancellation: once
// started a job runs to a terminal state or process exit.
func (r *CopyRunner) Start(source, dest, group string, dryRun bool) string {
	id := newJobID()
	r.store.Create(id, Record{
		FieldState:  StatePending,
		FieldErrors: []string{},
	})
	go r.run(id, source, dest, group, dryRun)
	return id
}

func (r *CopyRunner) run(id, source, dest, onlyGroup string, dryRun bool) {
	defer r.recoverToError(id)

	result, err := r.builder.Build(source, nil, true)
	if err != nil {
		r.store.Update(id, Record{
			FieldState:        StateError,
			FieldError:        err.Error(),
			FieldFinishedTime: nowUnix(),
		})
		return
	}
	m := result.Mapping

	r.store.Update(id, Record{
		FieldState:      StateRunning,
		FieldTotal:      len(m.Files),
		FieldProcessed:  0,
		FieldCopied:     0,
		FieldFailed:     0,
		FieldDuplicates: 0,
		FieldStartTime:  nowUnix(),
		FieldLastUpdate: nowUnix(),
	})

	destRoot := pathutil.NormalizeUserPath(dest)
	if err := fsutil.EnsureDir(destRoot); err != nil {
		r.store.Update(id, Record{
			FieldState:        StateError,
			FieldError:        err.Error(),
			FieldFinishedTime: nowUnix(),
		})
		return
	}
	r.store.Update(id, Record{
		FieldDest:        destRoot,
		FieldDestDisplay: pathutil.DisplayPath(destRoot),
	})

	groups := m.Keys
	if onlyGroup != "" {
		groups = []string{onlyGroup}
	}

	// Lazily created on the first duplicate, named by the wall-clock
	// year at job start.
	var dupRoot string

	var processed, copied, failed, duplicates int
	for _, groupKey := range groups {
		for _, file := range m.Groups[groupKey] {
			processed++
			r.store.Update(id, Record{
				FieldProcessed:    processed,
				FieldCurrentGroup: groupKey,
				FieldCurrentFile:  file.Path,
				FieldLastUpdate:   nowUnix(),
			})

			_, status, err := copier.Copy(file.Path, filepath.Join(destRoot, groupKey), dryRun)
			if err != nil {
				failed++
				r.store.appendError(id, fmt.Sprintf("Copy failed for %s: %v", file.Path, err))
				r.store.Update(id, Record{FieldFailed: failed})
				continue
			}

			if status == copier.StatusSkippedIdentical {
				duplicates++
				r.store.Update(id, Record{FieldDuplicates: duplicates})
				if dupRoot == "" {
					dupRoot = filepath.Join(destRoot, fmt.Sprintf("%d_duplicates", time.Now().Year()))
					r.store.Update(id, Record{
						FieldDupDir:        dupRoot,
						FieldDupDirDisplay: pathutil.DisplayPath(dupRoot),
					})
				}
				if !dryRun {
					r.copyDuplicate(id, file.Path, dupRoot, groupKey)
				}
				continue
			}

			copied++
			r.store.Update(id, Record{FieldCopied: copied})
		}
	}

	r.store.Update(id, Record{
		FieldState:        StateDone,
		FieldCurrentFile:  "",
		FieldCurrentGroup: "",
		FieldFinishedTime: nowUnix(),
	})
	slog.Info("copy job finished", "job_id", id,
		"copied", copied, "duplicates", duplicates, "failed", failed)
}

// copyDuplicate places a detected duplicate into the holding area under a
// sanitized group label. Failures are recorded on the job and the run
// continues.
func (r *CopyRunner) copyDuplicate(id, src, dupRoot, groupKey string) {
	label := fsutil.SanitizeFileName(groupKey)
	if label == "" {
		label = "Ungrouped"
	}
	if _, _, err := copier.Copy(src, filepath.Join(dupRoot, label), false); err != nil {
		r.store.appendError(id, fmt.Sprintf("Duplicate copy failed: %v", err))
	}
}

// recoverToError converts a panic inside a job goroutine into a terminal
// error state so pollers are never left waiting and the process survives.
func (r *PreviewRunner) recoverToError(id string) {
	if rec := recover(); rec != nil {
		slog.Error("preview job panicked", "job_id", id, "panic", rec)
		r.store.Update(id, Record{
			FieldState:        StateError,
			FieldError:        fmt.Sprintf("internal panic: %v", rec),
			FieldFinishedTime: nowUnix(),
		})
	}
}

func (r *CopyRunner) recoverToError(id string) {
	if rec := recover(); rec != nil {
		slog.Error("copy job panicked", "job_id", id, "panic", rec)
		r.store.Update(id, Record{
			FieldState:        StateError,
			FieldError:        fmt.Sprintf("internal panic: %v", rec),
			FieldFinishedTime: nowUnix(),
		})
	}
}

func newJobID() string {
	return uuid.NewString()
}
