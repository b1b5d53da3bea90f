package treehash

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Stats counts what a run did. Counters are updated concurrently by the
// producer and the workers.
type Stats struct {
	RunID   string
	Started time.Time
	Elapsed time.Duration

	Enqueued       atomic.Int64 // regular files handed to the queue
	Files          atomic.Int64 // results emitted
	Bytes          atomic.Int64 // bytes hashed for emitted results
	SkippedEntries atomic.Int64 // stat or readdir failures during the walk
	SkippedFiles   atomic.Int64 // open or read failures in workers
	EmitErrors     atomic.Int64 // sink writes that failed
}

// NewStats returns zeroed counters tagged with a fresh run ID.
func NewStats() *Stats {
	return &Stats{RunID: uuid.NewString(), Started: time.Now()}
}

// Summary is a point-in-time copy of Stats.
type Summary struct {
	RunID          string        `json:"run_id" toml:"run_id"`
	Elapsed        time.Duration `json:"elapsed" toml:"elapsed"`
	Enqueued       int64         `json:"enqueued" toml:"enqueued"`
	Files          int64         `json:"files" toml:"files"`
	Bytes          int64         `json:"bytes" toml:"bytes"`
	SkippedEntries int64         `json:"skipped_entries" toml:"skipped_entries"`
	SkippedFiles   int64         `json:"skipped_files" toml:"skipped_files"`
	EmitErrors     int64         `json:"emit_errors" toml:"emit_errors"`
}

// Summary snapshots the counters.
func (s *Stats) Summary() Summary {
	return Summary{
		RunID:          s.RunID,
		Elapsed:        s.Elapsed,
		Enqueued:       s.Enqueued.Load(),
		Files:          s.Files.Load(),
		Bytes:          s.Bytes.Load(),
		SkippedEntries: s.SkippedEntries.Load(),
		SkippedFiles:   s.SkippedFiles.Load(),
		EmitErrors:     s.EmitErrors.Load(),
	}
}

// Skipped returns the total number of entries and files that produced no result.
func (s Summary) Skipped() int64 {
	return s.SkippedEntries + s.SkippedFiles
}
