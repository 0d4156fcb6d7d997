// Package geometry provides coordinate reprojection to WGS84 and vertex
// extraction helpers for feature geometries.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/geosync/geosync/pkg/types"
)

// earthRadius is the spherical radius used by the Web Mercator projection.
const earthRadius = 6378137.0

// ErrUnsupportedWKID is returned when a geometry cannot be reprojected
// because its spatial reference has no analytic inverse here.
var ErrUnsupportedWKID = errors.New("unsupported spatial reference")

// ToWGS84 reprojects a geometry from the given spatial reference into
// WGS84. Geometries already in WGS84 are returned as-is; Web Mercator is
// inverted analytically. Any other WKID is an error.
func ToWGS84(g *types.Geometry, wkid int) (*types.Geometry, error) {
	switch wkid {
	case types.WKIDWGS84:
		return g, nil
	case types.WKIDWebMercator:
		if g == nil {
			return nil, nil
		}
		out := g.Clone()
		for i := range out.Parts {
			for j := range out.Parts[i] {
				out.Parts[i][j] = mercatorToWGS84(out.Parts[i][j])
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("geometry: %w: WKID %d", ErrUnsupportedWKID, wkid)
	}
}

// ProjectFeatureSet reprojects every feature geometry in the set to WGS84.
// The input set is returned unchanged when it is already in WGS84.
func ProjectFeatureSet(fs *types.FeatureSet) (*types.FeatureSet, error) {
	if fs.WKID == types.WKIDWGS84 {
		return fs, nil
	}

	out := &types.FeatureSet{
		GeometryType: fs.GeometryType,
		WKID:         types.WKIDWGS84,
		Fields:       append([]types.FieldDescriptor(nil), fs.Fields...),
		Features:     make([]types.Feature, len(fs.Features)),
	}
	for i, f := range fs.Features {
		geom, err := ToWGS84(f.Geometry, fs.WKID)
		if err != nil {
			return nil, err
		}
		out.Features[i] = types.Feature{Attributes: f.Attributes, Geometry: geom}
	}
	return out, nil
}

// mercatorToWGS84 inverts the spherical Web Mercator projection.
func mercatorToWGS84(p types.Point) types.Point {
	lon := p.X / earthRadius * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(p.Y/earthRadius)) - math.Pi/2) * 180 / math.Pi
	return types.Point{X: lon, Y: lat}
}
