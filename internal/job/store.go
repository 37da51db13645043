package job

import (
	"sync"
	"time"
)

// Well-known record field keys. Runners write these; pollers read them.
const (
	FieldState         = "state"
	FieldTotal         = "total"
	FieldProcessed     = "processed"
	FieldCopied        = "copied"
	FieldFailed        = "failed"
	FieldDuplicates    = "duplicates"
	FieldCurrentFile   = "current_file"
	FieldCurrentGroup  = "current_group"
	FieldDest          = "dest"
	FieldDestDisplay   = "dest_display"
	FieldDupDir        = "duplicates_dir"
	FieldDupDirDisplay = "duplicates_dir_display"
	FieldErrors        = "errors"
	FieldError         = "error"
	FieldResult        = "result"
	FieldStartTime     = "start_time"
	FieldLastUpdate    = "last_update"
	FieldFinishedTime  = "finished_time"
)

// Job states. A job starts pending, moves to running, and ends in one of
// the terminal states done or error. Jobs are never reused or restarted.
const (
	StatePending = "pending"
	StateRunning = "running"
	StateDone    = "done"
	StateError   = "error"
)

// Record is a mutable bag of job progress fields.
type Record map[string]any

// clone returns a snapshot of the record. The errors slice is copied so
// callers cannot observe later mutations.
func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		if errs, ok := v.([]string); ok {
			out[k] = append([]string(nil), errs...)
			continue
		}
		out[k] = v
	}
	return out
}

// Store is a thread-safe in-memory map of job id to progress record.
//
// A single mutex guards the whole store and is held only for the duration
// of a map read or write, never across I/O, so operations are effectively
// atomic but serialized. Records are never evicted: they persist for the
// process lifetime and callers poll until a terminal state.
type Store struct {
	mu   sync.Mutex
	jobs map[string]Record
}

// NewStore returns an empty job store.
func NewStore() *Store {
	return &Store{jobs: make(map[string]Record)}
}

// Create inserts a new record for id, replacing any previous one.
func (s *Store) Create(id string, initial Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[id] = initial.clone()
}

// Update merges fields into the record for id. Updating an unknown id is
// a no-op, never an error.
func (s *Store) Update(id string, fields Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.jobs[id]
	if !ok {
		return
	}
	for k, v := range fields {
		record[k] = v
	}
}

// Get returns an immutable snapshot of the record for id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.jobs[id]
	if !ok {
		return nil, false
	}
	return record.clone(), true
}

// appendError appends a message to the job's error list.
func (s *Store) appendError(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.jobs[id]
	if !ok {
		return
	}
	errs, _ := record[FieldErrors].([]string)
	record[FieldErrors] = append(errs, message)
}

func nowUnix() int64 {
	return time.Now().Unix()
}
