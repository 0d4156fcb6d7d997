package sync

import (
	"context"
	"log"
	"time"

	"github.com/geosync/geosync/internal/observability"
	"github.com/geosync/geosync/pkg/types"
)

// Pair is one configured source/target mapping.
type Pair struct {
	Source string
	Target string
}

// SourceFactory resolves a source locator into a queryable layer.
type SourceFactory func(locator string) LayerSource

// Runner processes configured pairs sequentially, in mapping order, and
// reports every outcome. One pair's failure never aborts the batch.
type Runner struct {
	orch    *Orchestrator
	sources SourceFactory
	stats   *observability.RunStats
}

// NewRunner creates a runner over the given orchestrator and source
// factory.
func NewRunner(orch *Orchestrator, sources SourceFactory) *Runner {
	return &Runner{
		orch:    orch,
		sources: sources,
		stats:   observability.NewRunStats(),
	}
}

// Stats returns the run statistics tracker.
func (r *Runner) Stats() *observability.RunStats {
	return r.stats
}

// Run processes all pairs and returns their results in input order.
func (r *Runner) Run(ctx context.Context, pairs []Pair) []PairResult {
	results := make([]PairResult, 0, len(pairs))
	for i, p := range pairs {
		log.Printf("sync: ======== pair %d/%d ========", i+1, len(pairs))
		log.Printf("sync: source: %s", p.Source)
		_, _, targetPath := SplitTarget(p.Target)
		log.Printf("sync: target: %s", targetPath)

		start := time.Now()
		res := r.orch.ProcessPair(ctx, r.sources(p.Source), p.Source, p.Target)
		r.stats.RecordPair(string(res.Outcome), res.Rows, time.Since(start))
		r.report(res)
		results = append(results, res)
	}
	return results
}

// report prints the human-readable outcome of one pair.
func (r *Runner) report(res PairResult) {
	switch res.Outcome {
	case OutcomeCreated:
		log.Printf("sync: created %s with %d rows (stored as %s, SRID %d)",
			res.TargetPath, res.Rows, GeographyKeyword, types.WKIDWGS84)
	case OutcomeSynced:
		log.Printf("sync: sync complete, %d rows in %s", res.Rows, res.TargetPath)
	case OutcomeSkipped:
		v := res.Verdict
		log.Printf("sync: schema is different, syncing cannot be continued")
		log.Printf("sync: sr_ok=%v (target wkid %d) geom_ok=%v (%s vs %s) fields_ok=%v src_fp=%016x tgt_fp=%016x",
			v.SROK, v.TargetWKID, v.GeomOK, v.SourceGeometryType, v.TargetGeometryType,
			v.FieldsOK, v.SourceFingerprint, v.TargetFingerprint)
		log.Printf("sync: details: %s", v.Match)
	case OutcomeFailed:
		log.Printf("sync: pair failed: %v", res.Err)
	}
}
