package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"

	"github.com/geosync/geosync/internal/sync"
)

// RunReport is the machine-readable record of one sync run.
type RunReport struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Pairs      []PairReport `json:"pairs"`
}

// PairReport records one pair's outcome.
type PairReport struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Outcome string `json:"outcome"`
	Rows    int    `json:"rows,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewRunReport builds a report from the per-pair results of one run.
func NewRunReport(runID string, startedAt time.Time, results []sync.PairResult) *RunReport {
	report := &RunReport{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Pairs:      make([]PairReport, 0, len(results)),
	}
	for _, res := range results {
		pr := PairReport{
			Source:  res.Source,
			Target:  res.TargetPath,
			Outcome: string(res.Outcome),
			Rows:    res.Rows,
		}
		if res.Verdict != nil {
			pr.Detail = res.Verdict.Match.String()
		}
		if res.Err != nil {
			pr.Error = res.Err.Error()
		}
		report.Pairs = append(report.Pairs, pr)
	}
	return report
}

// Writer archives snappy-compressed JSON run reports under a prefix.
type Writer struct {
	store  ObjectStore
	prefix string
}

// NewWriter creates a report writer over the given backend.
func NewWriter(store ObjectStore, prefix string) *Writer {
	if prefix == "" {
		prefix = "reports"
	}
	return &Writer{store: store, prefix: prefix}
}

// Write archives the report and returns its object path.
func (w *Writer) Write(ctx context.Context, report *RunReport) (string, error) {
	data, err := EncodeReport(report)
	if err != nil {
		return "", err
	}
	objectPath := fmt.Sprintf("%s/%s.json.sz", w.prefix, report.RunID)
	if err := w.store.Put(ctx, objectPath, data); err != nil {
		return "", fmt.Errorf("archive: failed to write report %s: %w", objectPath, err)
	}
	return objectPath, nil
}

// EncodeReport serializes a report as snappy-compressed JSON.
func EncodeReport(report *RunReport) ([]byte, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("archive: failed to marshal report: %w", err)
	}
	return snappy.Encode(nil, raw), nil
}

// DecodeReport deserializes a snappy-compressed JSON report.
func DecodeReport(data []byte) (*RunReport, error) {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("archive: failed to decompress report: %w", err)
	}
	var report RunReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("archive: failed to unmarshal report: %w", err)
	}
	return &report, nil
}
