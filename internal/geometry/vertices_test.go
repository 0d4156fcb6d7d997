package geometry

import (
	"reflect"
	"testing"

	"github.com/geosync/geosync/pkg/types"
)

func TestVerticesByPart_Point(t *testing.T) {
	g := &types.Geometry{
		Type:  types.GeometryPoint,
		Parts: [][]types.Point{{{X: 1, Y: 2}}},
	}

	parts := VerticesByPart(g, false)
	want := [][]types.Point{{{X: 1, Y: 2}}}
	if !reflect.DeepEqual(parts, want) {
		t.Errorf("parts = %v, want %v", parts, want)
	}
}

func TestVerticesByPart_DropsClosingDuplicate(t *testing.T) {
	ring := []types.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}
	g := &types.Geometry{Type: types.GeometryPolygon, Parts: [][]types.Point{ring}}

	parts := VerticesByPart(g, true)
	if len(parts) != 1 || len(parts[0]) != 3 {
		t.Fatalf("expected 3 vertices after dropping the closing duplicate, got %v", parts)
	}

	// Without the flag the ring is returned verbatim.
	parts = VerticesByPart(g, false)
	if len(parts[0]) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(parts[0]))
	}
}

func TestVerticesByPart_SkipsEmptyParts(t *testing.T) {
	g := &types.Geometry{
		Type: types.GeometryPolyline,
		Parts: [][]types.Point{
			{},
			{{X: 0, Y: 0}, {X: 1, Y: 1}},
		},
	}

	parts := VerticesByPart(g, false)
	if len(parts) != 1 {
		t.Errorf("expected empty parts to be skipped, got %v", parts)
	}
}

func TestVerticesByPart_Nil(t *testing.T) {
	if got := VerticesByPart(nil, true); got != nil {
		t.Errorf("expected nil for nil geometry, got %v", got)
	}
}

func TestVerticesByPart_DoesNotAliasInput(t *testing.T) {
	g := &types.Geometry{
		Type:  types.GeometryPolyline,
		Parts: [][]types.Point{{{X: 0, Y: 0}, {X: 1, Y: 1}}},
	}

	parts := VerticesByPart(g, false)
	parts[0][0].X = 99
	if g.Parts[0][0].X != 0 {
		t.Errorf("returned slices must not alias the geometry's backing arrays")
	}
}
