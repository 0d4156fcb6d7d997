package schema

import (
	"testing"

	"github.com/geosync/geosync/pkg/types"
)

func TestVerdict_Composition(t *testing.T) {
	// ok = sr_ok AND geom_ok AND fields_ok over all 8 combinations.
	for _, sr := range []bool{false, true} {
		for _, geom := range []bool{false, true} {
			for _, fields := range []bool{false, true} {
				v := &Verdict{SROK: sr, GeomOK: geom, FieldsOK: fields}
				want := sr && geom && fields
				if got := v.OK(); got != want {
					t.Errorf("OK() with sr=%v geom=%v fields=%v = %v, want %v",
						sr, geom, fields, got, want)
				}
			}
		}
	}
}

func TestEvaluate_Compatible(t *testing.T) {
	src := desc(types.GeometryPolygon, types.WKIDWebMercator,
		field("Status", "", types.FieldTypeString, 20),
	)
	tgt := desc("POLYGON", types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 20),
	)

	v := Evaluate(src, tgt, nil)
	if !v.SROK {
		t.Errorf("target at 4326 must pass the SR check, wkid=%d", v.TargetWKID)
	}
	if !v.GeomOK {
		t.Errorf("geometry type comparison must be case-insensitive (%s vs %s)",
			v.SourceGeometryType, v.TargetGeometryType)
	}
	if !v.FieldsOK || !v.OK() {
		t.Errorf("expected compatible verdict, got %s", v.Match)
	}
}

func TestEvaluate_TargetNotWGS84(t *testing.T) {
	src := desc(types.GeometryPoint, types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 20),
	)
	tgt := desc(types.GeometryPoint, types.WKIDWebMercator,
		field("Status", "", types.FieldTypeString, 20),
	)

	v := Evaluate(src, tgt, nil)
	if v.SROK || v.OK() {
		t.Errorf("target at %d must fail the SR check", v.TargetWKID)
	}
	if !v.GeomOK || !v.FieldsOK {
		t.Errorf("only the SR check should fail, got geom=%v fields=%v", v.GeomOK, v.FieldsOK)
	}
}

func TestEvaluate_GeometryTypeMismatch(t *testing.T) {
	src := desc(types.GeometryPolygon, types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 20),
	)
	tgt := desc(types.GeometryPolyline, types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 20),
	)

	v := Evaluate(src, tgt, nil)
	if v.GeomOK || v.OK() {
		t.Errorf("expected geometry mismatch (%s vs %s)", v.SourceGeometryType, v.TargetGeometryType)
	}
}

func TestEvaluate_FieldDetailSurfaced(t *testing.T) {
	src := desc(types.GeometryPolygon, types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 20),
		field("Zone", "", types.FieldTypeString, 10),
	)
	tgt := desc(types.GeometryPolygon, types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 20),
	)

	v := Evaluate(src, tgt, nil)
	if v.FieldsOK || v.OK() {
		t.Fatalf("expected field failure")
	}
	if len(v.Match.MissingInTarget) != 1 || v.Match.MissingInTarget[0] != "Zone" {
		t.Errorf("detail payload must carry the full match result, got %s", v.Match)
	}
}

func TestEvaluate_Pure(t *testing.T) {
	src := desc(types.GeometryPolygon, types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 20),
	)
	tgt := desc(types.GeometryPolygon, types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 20),
	)

	v1 := Evaluate(src, tgt, nil)
	v2 := Evaluate(src, tgt, nil)
	if v1.OK() != v2.OK() || v1.SourceFingerprint != v2.SourceFingerprint {
		t.Errorf("evaluation must be a pure function of its inputs")
	}
}
