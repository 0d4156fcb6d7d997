// Package sync drives the per-pair sync state machine: schema snapshot,
// guard evaluation, create / skip / truncate-and-append, and scratch
// cleanup.
package sync

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// scratchPrefix is the layer-path prefix of all scratch objects.
const scratchPrefix = "scratch/"

// ScratchContext names the scratch layers used while processing one pair.
// Names embed a per-invocation identifier so repeated or overlapping runs
// against the same working root cannot collide on well-known names.
type ScratchContext struct {
	// SchemaSnapshot is the zero-row structural copy of the source.
	SchemaSnapshot string

	// NativeRows holds the exported source rows in their native spatial
	// reference.
	NativeRows string

	// ProjectedRows holds the exported rows reprojected to WGS84.
	ProjectedRows string
}

// NewScratchContext generates a scratch context with a fresh identifier.
func NewScratchContext() ScratchContext {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return ScratchContext{
		SchemaSnapshot: fmt.Sprintf("%ssrc_schema_%s", scratchPrefix, id),
		NativeRows:     fmt.Sprintf("%ssrc_rows_%s", scratchPrefix, id),
		ProjectedRows:  fmt.Sprintf("%ssrc_rows_wgs84_%s", scratchPrefix, id),
	}
}

// Paths returns all scratch layer paths for cleanup.
func (s ScratchContext) Paths() []string {
	return []string{s.SchemaSnapshot, s.NativeRows, s.ProjectedRows}
}
