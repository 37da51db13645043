// Package job provides the asynchronous job machinery for previews and
// copy runs.
//
// # Store
//
// Store is a thread-safe in-memory map of job id to a mutable progress
// record. It is the only shared mutable state between job goroutines and
// pollers, guarded by a single coarse mutex held only for map access,
// never across I/O. Records are retained for the process lifetime.
//
// # Runners
//
// PreviewRunner and CopyRunner each generate a fresh unique job id, seed
// a pending record, and launch one independent goroutine per job. The
// caller receives the id immediately and polls the store for progress.
//
// There is deliberately no cancellation: once started, a job runs to a
// terminal state (done or error) or process exit. The polling protocol
// depends on jobs always terminating on their own; callers that lose
// interest simply stop polling. Panics inside a job goroutine are
// converted into a terminal error state rather than crashing the process.
//
// # Polling
//
// Poll returns a snapshot plus derived display fields (percent complete,
// elapsed time, throughput, ETA) computed on demand from the stored
// counters; derived values are never written back into the record.
package job
