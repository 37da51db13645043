package job

import "time"

// Status is a point-in-time view of a job for pollers. The derived fields
// are computed from the stored counters at poll time and are never stored
// back into the record.
type Status struct {
	Record Record

	// Percent is processed/total in [0,100], 0 when total is unknown.
	Percent float64

	// Elapsed is the time since the job started running.
	Elapsed time.Duration

	// Throughput is processed files per second of elapsed time.
	Throughput float64

	// ETA estimates the remaining runtime from the current throughput;
	// zero when no estimate is possible.
	ETA time.Duration
}

// State returns the job state string from the record.
func (st Status) State() string {
	s, _ := st.Record[FieldState].(string)
	return s
}

// Terminal reports whether the job has reached done or error.
func (st Status) Terminal() bool {
	s := st.State()
	return s == StateDone || s == StateError
}

// Poll returns the current status for id, or ok=false for an unknown id.
func (s *Store) Poll(id string) (Status, bool) {
	record, ok := s.Get(id)
	if !ok {
		return Status{}, false
	}

	st := Status{Record: record}
	total := intField(record, FieldTotal)
	processed := intField(record, FieldProcessed)

	if total > 0 {
		st.Percent = float64(processed) / float64(total) * 100
	}

	start := int64Field(record, FieldStartTime)
	if start > 0 {
		end := int64Field(record, FieldFinishedTime)
		if end == 0 {
			end = time.Now().Unix()
		}
		if end > start {
			st.Elapsed = time.Duration(end-start) * time.Second
		}
	}

	if st.Elapsed > 0 && processed > 0 {
		st.Throughput = float64(processed) / st.Elapsed.Seconds()
		if remaining := total - processed; remaining > 0 {
			st.ETA = time.Duration(float64(remaining)/st.Throughput) * time.Second
		}
	}

	return st, true
}

func intField(r Record, key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func int64Field(r Record, key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
