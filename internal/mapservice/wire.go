package mapservice

import (
	"strings"

	"github.com/geosync/geosync/pkg/types"
)

// Wire representations of the layer REST responses. Only the consumed
// subset is modeled.

type serviceErrorJSON struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type spatialReferenceJSON struct {
	WKID       int `json:"wkid"`
	LatestWKID int `json:"latestWkid"`
}

// wkid prefers the modern identifier when the service reports both.
func (s spatialReferenceJSON) wkid() int {
	if s.LatestWKID != 0 {
		return s.LatestWKID
	}
	return s.WKID
}

type fieldJSON struct {
	Name   string `json:"name"`
	Alias  string `json:"alias"`
	Type   string `json:"type"`
	Length int    `json:"length"`
}

type layerInfoJSON struct {
	Error        *serviceErrorJSON `json:"error"`
	GeometryType string            `json:"geometryType"`
	Fields       []fieldJSON       `json:"fields"`
	Extent       struct {
		SpatialReference spatialReferenceJSON `json:"spatialReference"`
	} `json:"extent"`
	SourceSpatialReference *spatialReferenceJSON `json:"sourceSpatialReference"`
}

// wkid prefers the layer's source spatial reference over the extent's.
func (l layerInfoJSON) wkid() int {
	if l.SourceSpatialReference != nil {
		return l.SourceSpatialReference.wkid()
	}
	return l.Extent.SpatialReference.wkid()
}

type queryJSON struct {
	Error                 *serviceErrorJSON    `json:"error"`
	GeometryType          string               `json:"geometryType"`
	SpatialReference      spatialReferenceJSON `json:"spatialReference"`
	Fields                []fieldJSON          `json:"fields"`
	Features              []featureJSON        `json:"features"`
	ExceededTransferLimit bool                 `json:"exceededTransferLimit"`
}

type featureJSON struct {
	Attributes map[string]interface{} `json:"attributes"`
	Geometry   *geometryJSON          `json:"geometry"`
}

type geometryJSON struct {
	X      *float64      `json:"x"`
	Y      *float64      `json:"y"`
	Points [][]float64   `json:"points"`
	Paths  [][][]float64 `json:"paths"`
	Rings  [][][]float64 `json:"rings"`
}

// toGeometry converts the wire geometry into the internal representation.
func (g *geometryJSON) toGeometry(geometryType string) *types.Geometry {
	if g == nil {
		return nil
	}

	switch {
	case g.X != nil && g.Y != nil:
		return &types.Geometry{
			Type:  types.GeometryPoint,
			Parts: [][]types.Point{{{X: *g.X, Y: *g.Y}}},
		}
	case len(g.Points) > 0:
		part := make([]types.Point, 0, len(g.Points))
		for _, p := range g.Points {
			if len(p) >= 2 {
				part = append(part, types.Point{X: p[0], Y: p[1]})
			}
		}
		return &types.Geometry{Type: types.GeometryMultipoint, Parts: [][]types.Point{part}}
	case len(g.Paths) > 0:
		return &types.Geometry{Type: types.GeometryPolyline, Parts: coordsToParts(g.Paths)}
	case len(g.Rings) > 0:
		return &types.Geometry{Type: types.GeometryPolygon, Parts: coordsToParts(g.Rings)}
	default:
		// Empty geometry; keep the declared layer type.
		return &types.Geometry{Type: geometryType}
	}
}

func coordsToParts(coords [][][]float64) [][]types.Point {
	parts := make([][]types.Point, 0, len(coords))
	for _, c := range coords {
		part := make([]types.Point, 0, len(c))
		for _, p := range c {
			if len(p) >= 2 {
				part = append(part, types.Point{X: p[0], Y: p[1]})
			}
		}
		parts = append(parts, part)
	}
	return parts
}

// geometryTypeFromService strips the service prefix from a geometry type
// name: "esriGeometryPolygon" becomes "Polygon".
func geometryTypeFromService(t string) string {
	return strings.TrimPrefix(t, "esriGeometry")
}

// fieldTypeFromService strips the service prefix from a field type name:
// "esriFieldTypeString" becomes "String".
func fieldTypeFromService(t string) types.FieldType {
	return types.FieldType(strings.TrimPrefix(t, "esriFieldType"))
}

func fieldsFromService(fields []fieldJSON) []types.FieldDescriptor {
	out := make([]types.FieldDescriptor, 0, len(fields))
	for _, f := range fields {
		fd := types.FieldDescriptor{
			Name:  f.Name,
			Alias: f.Alias,
			Type:  fieldTypeFromService(f.Type),
		}
		if fd.Type == types.FieldTypeString {
			fd.Length = f.Length
		}
		out = append(out, fd)
	}
	return out
}
