package schema

import (
	"strings"

	"github.com/geosync/geosync/pkg/types"
)

// Verdict aggregates the spatial-reference check, the geometry-type check,
// and the field match result into a single compatibility verdict.
type Verdict struct {
	// SROK is true when the target spatial reference is WGS84 (4326).
	SROK bool `json:"sr_ok"`

	// TargetWKID is the spatial reference the target reported; zero when
	// it reported none.
	TargetWKID int `json:"target_wkid"`

	// GeomOK is true when source and target geometry types are equal,
	// compared case-insensitively.
	GeomOK bool `json:"geom_ok"`

	SourceGeometryType string `json:"source_geometry_type"`
	TargetGeometryType string `json:"target_geometry_type"`

	// FieldsOK is true when the field match found no missing fields, no
	// disallowed extras, and no type/length mismatches.
	FieldsOK bool `json:"fields_ok"`

	// Match carries the full match detail for diagnosis.
	Match *MatchResult `json:"match"`

	// SourceFingerprint and TargetFingerprint are stable hashes of the
	// two user-field catalogs, logged to make repeated mismatches easy
	// to spot across runs.
	SourceFingerprint uint64 `json:"source_fingerprint"`
	TargetFingerprint uint64 `json:"target_fingerprint"`
}

// OK reports overall compatibility: all three checks must pass.
func (v *Verdict) OK() bool {
	return v.SROK && v.GeomOK && v.FieldsOK
}

// Evaluate compares a source schema snapshot against an existing target
// schema under the given allow-list. It is a pure function of its inputs:
// no mutation, no side effects.
func Evaluate(source, target *types.SchemaDescription, allow AllowList) *Verdict {
	srcCatalog := BuildCatalog(source)
	tgtCatalog := BuildCatalog(target)
	match := Match(srcCatalog, tgtCatalog, allow)

	return &Verdict{
		SROK:               target.WKID == types.WKIDWGS84,
		TargetWKID:         target.WKID,
		GeomOK:             strings.EqualFold(source.GeometryType, target.GeometryType),
		SourceGeometryType: source.GeometryType,
		TargetGeometryType: target.GeometryType,
		FieldsOK:           match.OK(),
		Match:              match,
		SourceFingerprint:  srcCatalog.Fingerprint(),
		TargetFingerprint:  tgtCatalog.Fingerprint(),
	}
}
