package sync

import (
	"context"
	"fmt"
	"strings"

	geoerrors "github.com/geosync/geosync/internal/errors"
	"github.com/geosync/geosync/internal/geostore"
	"github.com/geosync/geosync/internal/schema"
	"github.com/geosync/geosync/pkg/types"
)

// schemaOnlyFilter never matches a row; querying with it materializes a
// structure-only snapshot of the source.
const schemaOnlyFilter = "1=2"

// GeographyKeyword is the storage keyword applied to created targets so
// their geometry is stored in a geographic WGS84 reference.
const GeographyKeyword = "GEOGRAPHY"

// LayerSource is the read-only view of a remote map-service layer
// consumed by the orchestrator.
type LayerSource interface {
	// Describe returns the layer's structural snapshot.
	Describe(ctx context.Context) (*types.SchemaDescription, error)

	// Query returns the features matching the attribute filter; an empty
	// filter returns all rows.
	Query(ctx context.Context, where string) (*types.FeatureSet, error)
}

// Outcome is the terminal state of one pair.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeSynced  Outcome = "synced"
	OutcomeSkipped Outcome = "skipped_schema_mismatch"
	OutcomeFailed  Outcome = "failed"
)

// PairResult is the tagged per-pair result: exactly one of the outcome
// variants applies, with Rows set for created/synced, Verdict for skipped,
// and Err for failed.
type PairResult struct {
	Source     string
	Target     string
	TargetPath string
	Outcome    Outcome

	// Rows is the target row count after a create or sync.
	Rows int

	// Verdict carries the full guard detail when the pair was skipped.
	Verdict *schema.Verdict

	// Err is the contained failure when the pair failed.
	Err error
}

// SplitTarget parses a target identifier into its optional container and
// base name, split on the first dot, and the resolved layer path under
// the working root.
func SplitTarget(target string) (container, name, path string) {
	target = strings.TrimSpace(target)
	if i := strings.Index(target, "."); i >= 0 {
		container, name = target[:i], target[i+1:]
		return container, name, container + "/" + name
	}
	return "", target, target
}

// Orchestrator drives the per-pair state machine against one feature
// store. It holds no state across pairs.
type Orchestrator struct {
	store         geostore.Store
	allow         schema.AllowList
	filter        string
	configKeyword string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithFilter applies an attribute filter to every row export.
func WithFilter(where string) Option {
	return func(o *Orchestrator) { o.filter = where }
}

// WithConfigKeyword overrides the storage keyword for created targets.
func WithConfigKeyword(keyword string) Option {
	return func(o *Orchestrator) { o.configKeyword = keyword }
}

// NewOrchestrator creates an orchestrator over the given store and
// allow-list.
func NewOrchestrator(store geostore.Store, allow schema.AllowList, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:         store,
		allow:         allow,
		configKeyword: GeographyKeyword,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessPair runs one source/target pair to a terminal outcome. Any
// failure is contained in the result; scratch layers are cleaned up
// best-effort regardless of the branch taken.
func (o *Orchestrator) ProcessPair(ctx context.Context, src LayerSource, locator, target string) PairResult {
	_, _, targetPath := SplitTarget(target)
	res := PairResult{Source: locator, Target: target, TargetPath: targetPath}

	scratch := NewScratchContext()
	defer o.cleanup(ctx, scratch)

	srcDesc, err := o.makeSchemaSnapshot(ctx, src, scratch)
	if err != nil {
		return failed(res, err)
	}

	exists, err := o.store.Exists(ctx, targetPath)
	if err != nil {
		return failed(res, err)
	}

	// Target missing: create it in WGS84 with GEOGRAPHY storage and load
	// all rows. No guard check runs here; the new target inherits the
	// source schema by construction.
	if !exists {
		rows, err := o.createTarget(ctx, src, scratch, targetPath)
		if err != nil {
			return failed(res, err)
		}
		res.Outcome = OutcomeCreated
		res.Rows = rows
		return res
	}

	// Target exists: re-extract the schema snapshot (extraction is
	// idempotent and side-effect-free) and evaluate the guard.
	srcDesc, err = o.makeSchemaSnapshot(ctx, src, scratch)
	if err != nil {
		return failed(res, err)
	}
	tgtDesc, err := o.store.Describe(ctx, targetPath)
	if err != nil {
		return failed(res, err)
	}

	verdict := schema.Evaluate(srcDesc, tgtDesc, o.allow)
	if !verdict.OK() {
		res.Outcome = OutcomeSkipped
		res.Verdict = verdict
		return res
	}

	rows, err := o.syncTarget(ctx, src, scratch, targetPath)
	if err != nil {
		return failed(res, err)
	}
	res.Outcome = OutcomeSynced
	res.Rows = rows
	return res
}

func failed(res PairResult, err error) PairResult {
	res.Outcome = OutcomeFailed
	res.Err = geoerrors.NewPairError(fmt.Sprintf("%s -> %s", res.Source, res.TargetPath), err)
	return res
}

// makeSchemaSnapshot materializes a zero-row structural copy of the
// source via the always-false filter and returns its schema.
func (o *Orchestrator) makeSchemaSnapshot(ctx context.Context, src LayerSource, scratch ScratchContext) (*types.SchemaDescription, error) {
	fs, err := src.Query(ctx, schemaOnlyFilter)
	if err != nil {
		return nil, err
	}
	if err := o.store.DeleteIfExists(ctx, scratch.SchemaSnapshot); err != nil {
		return nil, err
	}
	desc := fs.Schema()
	if err := o.store.CreateLayer(ctx, scratch.SchemaSnapshot, desc, ""); err != nil {
		return nil, err
	}
	return desc, nil
}

// exportProjected exports the source rows into scratch and returns the
// path holding WGS84 rows. The projection step is skipped when the source
// is already geographic.
func (o *Orchestrator) exportProjected(ctx context.Context, src LayerSource, scratch ScratchContext) (string, error) {
	fs, err := src.Query(ctx, o.filter)
	if err != nil {
		return "", err
	}

	if err := o.store.DeleteIfExists(ctx, scratch.NativeRows); err != nil {
		return "", err
	}
	if err := o.store.CreateLayer(ctx, scratch.NativeRows, fs.Schema(), ""); err != nil {
		return "", err
	}
	if err := o.store.Append(ctx, scratch.NativeRows, fs.Features); err != nil {
		return "", err
	}

	if fs.WKID == types.WKIDWGS84 {
		return scratch.NativeRows, nil
	}

	if err := o.store.DeleteIfExists(ctx, scratch.ProjectedRows); err != nil {
		return "", err
	}
	if err := o.store.Project(ctx, scratch.NativeRows, scratch.ProjectedRows, types.WKIDWGS84); err != nil {
		return "", err
	}
	return scratch.ProjectedRows, nil
}

// createTarget materializes a new target from the projected rows and
// returns its row count.
func (o *Orchestrator) createTarget(ctx context.Context, src LayerSource, scratch ScratchContext, targetPath string) (int, error) {
	rowsPath, err := o.exportProjected(ctx, src, scratch)
	if err != nil {
		return 0, err
	}
	fs, err := o.store.ReadFeatures(ctx, rowsPath)
	if err != nil {
		return 0, err
	}

	if err := o.store.DeleteIfExists(ctx, targetPath); err != nil {
		return 0, err
	}
	if err := o.store.CreateLayer(ctx, targetPath, fs.Schema(), o.configKeyword); err != nil {
		return 0, err
	}
	if err := o.store.Append(ctx, targetPath, fs.Features); err != nil {
		return 0, err
	}
	return o.store.Count(ctx, targetPath)
}

// syncTarget refreshes an existing, guard-approved target via
// truncate-then-append and returns its row count.
func (o *Orchestrator) syncTarget(ctx context.Context, src LayerSource, scratch ScratchContext, targetPath string) (int, error) {
	rowsPath, err := o.exportProjected(ctx, src, scratch)
	if err != nil {
		return 0, err
	}
	fs, err := o.store.ReadFeatures(ctx, rowsPath)
	if err != nil {
		return 0, err
	}
	if err := o.truncateThenAppend(ctx, targetPath, fs.Features); err != nil {
		return 0, err
	}
	return o.store.Count(ctx, targetPath)
}

// truncateThenAppend clears the target and loads the projected rows. The
// guard already proved structural compatibility, so the append performs
// no schema validation. A blocked bulk truncate falls back to deleting
// rows one at a time; callers cannot tell which strategy ran.
func (o *Orchestrator) truncateThenAppend(ctx context.Context, targetPath string, features []types.Feature) error {
	if err := o.store.Truncate(ctx, targetPath); err != nil {
		ids, idsErr := o.store.RowIDs(ctx, targetPath)
		if idsErr != nil {
			return fmt.Errorf("sync: truncate fallback: %w", idsErr)
		}
		for _, id := range ids {
			if delErr := o.store.DeleteRow(ctx, targetPath, id); delErr != nil {
				return fmt.Errorf("sync: truncate fallback: %w", delErr)
			}
		}
	}
	return o.store.Append(ctx, targetPath, features)
}

// cleanup deletes the pair's scratch layers. Failures are swallowed and
// never mask the pair's primary outcome.
func (o *Orchestrator) cleanup(ctx context.Context, scratch ScratchContext) {
	for _, p := range scratch.Paths() {
		_ = o.store.DeleteIfExists(ctx, p)
	}
}
