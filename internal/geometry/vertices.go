package geometry

import "github.com/geosync/geosync/pkg/types"

// VerticesByPart returns the vertices of a geometry grouped by part. For
// points the result is a single part with a single vertex; for polygons
// each part is one ring. When dropClosingDuplicate is set, a part whose
// last vertex repeats its first is returned without the closing vertex,
// which is the common self-closing ring encoding.
func VerticesByPart(g *types.Geometry, dropClosingDuplicate bool) [][]types.Point {
	if g == nil {
		return nil
	}

	parts := make([][]types.Point, 0, len(g.Parts))
	for _, part := range g.Parts {
		if len(part) == 0 {
			continue
		}
		ring := append([]types.Point(nil), part...)
		if dropClosingDuplicate && len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		parts = append(parts, ring)
	}
	return parts
}
