package observability

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRunStats_RecordAndSnapshot(t *testing.T) {
	s := NewRunStats()
	s.RecordPair("created", 10, 50*time.Millisecond)
	s.RecordPair("synced", 7, 30*time.Millisecond)
	s.RecordPair("synced", 3, 20*time.Millisecond)
	s.RecordPair("skipped_schema_mismatch", 0, time.Millisecond)
	s.RecordPair("failed", 0, time.Millisecond)

	snap := s.Snapshot()
	if snap.Pairs != 5 {
		t.Errorf("pairs = %d, want 5", snap.Pairs)
	}
	if snap.Outcomes["synced"] != 2 {
		t.Errorf("synced = %d, want 2", snap.Outcomes["synced"])
	}
	if snap.RowsWritten != 20 {
		t.Errorf("rows = %d, want 20", snap.RowsWritten)
	}
}

func TestRunStats_Summary(t *testing.T) {
	s := NewRunStats()
	s.RecordPair("created", 4, time.Millisecond)
	s.RecordPair("failed", 0, time.Millisecond)

	got := s.Snapshot().Summary()
	for _, want := range []string{"pairs=2", "created=1", "failed=1", "rows_written=4"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
}

func TestRunStats_ConcurrentRecording(t *testing.T) {
	s := NewRunStats()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordPair("synced", 1, time.Millisecond)
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	if snap.Pairs != 50 || snap.RowsWritten != 50 {
		t.Errorf("pairs=%d rows=%d, want 50/50", snap.Pairs, snap.RowsWritten)
	}
}
