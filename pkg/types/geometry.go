package types

// Point is a single 2D vertex.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Geometry holds a feature's shape as one or more parts of vertices.
// Points carry a single part with a single vertex; polygons carry one part
// per ring. Coordinates are expressed in the spatial reference of the
// enclosing FeatureSet.
type Geometry struct {
	// Type is the geometry type (Point, Polyline, Polygon, Multipoint).
	Type string `json:"type"`

	// Parts holds the vertex sequences. For polygons each part is a ring;
	// rings may or may not repeat the first vertex at the end.
	Parts [][]Point `json:"parts"`
}

// Clone returns a deep copy of the geometry.
func (g *Geometry) Clone() *Geometry {
	if g == nil {
		return nil
	}
	cp := &Geometry{Type: g.Type, Parts: make([][]Point, len(g.Parts))}
	for i, part := range g.Parts {
		cp.Parts[i] = append([]Point(nil), part...)
	}
	return cp
}

// VertexCount returns the total number of vertices across all parts.
func (g *Geometry) VertexCount() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, part := range g.Parts {
		n += len(part)
	}
	return n
}
