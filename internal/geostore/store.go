// Package geostore provides feature-layer storage for the enterprise
// geodatabase and the scratch workspace used during sync runs.
package geostore

import (
	"context"
	"errors"

	"github.com/geosync/geosync/pkg/types"
)

// Common errors for store operations.
var (
	// ErrLayerNotFound is returned when a layer path does not resolve.
	ErrLayerNotFound = errors.New("layer not found")

	// ErrTruncateBlocked is returned when a bulk truncate is rejected,
	// e.g. by referential locks or rules. Callers fall back to deleting
	// rows one at a time.
	ErrTruncateBlocked = errors.New("truncate blocked")
)

// Store abstracts the feature storage engine consumed by the sync
// orchestrator. Layers are identified by slash-separated paths under the
// working root ("Container/Name" or bare "Name"); scratch layers live
// under the "scratch/" prefix.
type Store interface {
	// Exists reports whether a layer exists at the path.
	Exists(ctx context.Context, path string) (bool, error)

	// Describe returns the structural snapshot of a layer.
	Describe(ctx context.Context, path string) (*types.SchemaDescription, error)

	// CreateLayer creates an empty layer with the given schema. The
	// configKeyword selects the storage mode for created geometries
	// ("GEOGRAPHY" stores them in a geographic WGS84 reference).
	CreateLayer(ctx context.Context, path string, desc *types.SchemaDescription, configKeyword string) error

	// DeleteIfExists removes a layer and its rows; no-op when absent.
	DeleteIfExists(ctx context.Context, path string) error

	// Truncate removes all rows of a layer in bulk.
	Truncate(ctx context.Context, path string) error

	// Append inserts features into a layer without schema validation.
	Append(ctx context.Context, path string, features []types.Feature) error

	// Count returns the number of rows in a layer.
	Count(ctx context.Context, path string) (int, error)

	// ReadFeatures returns all rows of a layer with its schema.
	ReadFeatures(ctx context.Context, path string) (*types.FeatureSet, error)

	// RowIDs returns the row identifiers of a layer, in insertion order.
	// Used by the row-level delete fallback when Truncate is blocked.
	RowIDs(ctx context.Context, path string) ([]int64, error)

	// DeleteRow removes a single row by identifier.
	DeleteRow(ctx context.Context, path string, id int64) error

	// Project copies a layer into a new layer at dstPath with all
	// geometries reprojected to the given spatial reference.
	Project(ctx context.Context, srcPath, dstPath string, wkid int) error
}
