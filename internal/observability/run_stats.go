// Package observability provides run statistics tracking for sync batches.
package observability

import (
	"fmt"
	"sync"
	"time"
)

// RunStats accumulates per-pair outcomes over one sync run.
// All methods are thread-safe.
type RunStats struct {
	mu        sync.Mutex
	startedAt time.Time
	outcomes  map[string]int
	rows      int
	pairTime  time.Duration
}

// NewRunStats creates a tracker with the clock started.
func NewRunStats() *RunStats {
	return &RunStats{
		startedAt: time.Now(),
		outcomes:  make(map[string]int),
	}
}

// RecordPair records one pair's outcome, the rows written to its target,
// and how long the pair took.
func (s *RunStats) RecordPair(outcome string, rows int, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.outcomes[outcome]++
	s.rows += rows
	s.pairTime += elapsed
}

// Snapshot is a point-in-time view of the run.
type Snapshot struct {
	Pairs       int
	Outcomes    map[string]int
	RowsWritten int
	Elapsed     time.Duration
}

// Snapshot returns the current totals.
func (s *RunStats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcomes := make(map[string]int, len(s.outcomes))
	pairs := 0
	for k, v := range s.outcomes {
		outcomes[k] = v
		pairs += v
	}
	return Snapshot{
		Pairs:       pairs,
		Outcomes:    outcomes,
		RowsWritten: s.rows,
		Elapsed:     time.Since(s.startedAt),
	}
}

// Summary returns a one-line human-readable report.
func (s Snapshot) Summary() string {
	return fmt.Sprintf("pairs=%d created=%d synced=%d skipped=%d failed=%d rows_written=%d elapsed=%s",
		s.Pairs,
		s.Outcomes["created"],
		s.Outcomes["synced"],
		s.Outcomes["skipped_schema_mismatch"],
		s.Outcomes["failed"],
		s.RowsWritten,
		s.Elapsed.Round(time.Millisecond),
	)
}
