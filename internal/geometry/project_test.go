package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/geosync/geosync/pkg/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestToWGS84_Passthrough(t *testing.T) {
	g := &types.Geometry{
		Type:  types.GeometryPoint,
		Parts: [][]types.Point{{{X: -122.4, Y: 37.8}}},
	}

	out, err := ToWGS84(g, types.WKIDWGS84)
	if err != nil {
		t.Fatalf("ToWGS84: %v", err)
	}
	if out != g {
		t.Errorf("geometry already in WGS84 must be returned unchanged")
	}
}

func TestToWGS84_WebMercatorOrigin(t *testing.T) {
	g := &types.Geometry{
		Type:  types.GeometryPoint,
		Parts: [][]types.Point{{{X: 0, Y: 0}}},
	}

	out, err := ToWGS84(g, types.WKIDWebMercator)
	if err != nil {
		t.Fatalf("ToWGS84: %v", err)
	}
	p := out.Parts[0][0]
	if !almostEqual(p.X, 0) || !almostEqual(p.Y, 0) {
		t.Errorf("origin must map to (0, 0), got (%v, %v)", p.X, p.Y)
	}
}

// forwardMercator is the spherical Web Mercator forward projection, used
// to verify the analytic inverse against known lon/lat pairs.
func forwardMercator(lon, lat float64) types.Point {
	x := lon * math.Pi / 180 * earthRadius
	y := math.Log(math.Tan(math.Pi/4+lat*math.Pi/360)) * earthRadius
	return types.Point{X: x, Y: y}
}

func TestToWGS84_WebMercatorRoundTrip(t *testing.T) {
	coords := []struct{ lon, lat float64 }{
		{-74.0060, 40.7128},
		{151.2093, -33.8688},
		{0, 51.5074},
		{-180, 85},
	}
	for _, c := range coords {
		g := &types.Geometry{
			Type:  types.GeometryPoint,
			Parts: [][]types.Point{{forwardMercator(c.lon, c.lat)}},
		}
		out, err := ToWGS84(g, types.WKIDWebMercator)
		if err != nil {
			t.Fatalf("ToWGS84(%v, %v): %v", c.lon, c.lat, err)
		}
		p := out.Parts[0][0]
		if !almostEqual(p.X, c.lon) || !almostEqual(p.Y, c.lat) {
			t.Errorf("expected (%v, %v), got (%v, %v)", c.lon, c.lat, p.X, p.Y)
		}
	}
}

func TestToWGS84_InputNotMutated(t *testing.T) {
	g := &types.Geometry{
		Type:  types.GeometryPolyline,
		Parts: [][]types.Point{{{X: 1000, Y: 2000}, {X: 3000, Y: 4000}}},
	}

	if _, err := ToWGS84(g, types.WKIDWebMercator); err != nil {
		t.Fatalf("ToWGS84: %v", err)
	}
	if g.Parts[0][0].X != 1000 || g.Parts[0][1].Y != 4000 {
		t.Errorf("reprojection must not mutate its input: %+v", g.Parts)
	}
}

func TestToWGS84_UnsupportedWKID(t *testing.T) {
	g := &types.Geometry{Type: types.GeometryPoint, Parts: [][]types.Point{{{X: 0, Y: 0}}}}

	_, err := ToWGS84(g, 27700)
	if !errors.Is(err, ErrUnsupportedWKID) {
		t.Errorf("expected ErrUnsupportedWKID, got %v", err)
	}
}

func TestProjectFeatureSet(t *testing.T) {
	fs := &types.FeatureSet{
		GeometryType: types.GeometryPoint,
		WKID:         types.WKIDWebMercator,
		Fields:       []types.FieldDescriptor{{Name: "Name", Type: types.FieldTypeString, Length: 50}},
		Features: []types.Feature{
			{
				Attributes: map[string]interface{}{"Name": "origin"},
				Geometry:   &types.Geometry{Type: types.GeometryPoint, Parts: [][]types.Point{{{X: 0, Y: 0}}}},
			},
		},
	}

	out, err := ProjectFeatureSet(fs)
	if err != nil {
		t.Fatalf("ProjectFeatureSet: %v", err)
	}
	if out.WKID != types.WKIDWGS84 {
		t.Errorf("output WKID = %d, want %d", out.WKID, types.WKIDWGS84)
	}
	if got := out.Features[0].Attributes["Name"]; got != "origin" {
		t.Errorf("attributes must be carried through, got %v", got)
	}
	p := out.Features[0].Geometry.Parts[0][0]
	if !almostEqual(p.X, 0) || !almostEqual(p.Y, 0) {
		t.Errorf("unexpected projected point (%v, %v)", p.X, p.Y)
	}
}

func TestProjectFeatureSet_AlreadyWGS84(t *testing.T) {
	fs := &types.FeatureSet{GeometryType: types.GeometryPoint, WKID: types.WKIDWGS84}

	out, err := ProjectFeatureSet(fs)
	if err != nil {
		t.Fatalf("ProjectFeatureSet: %v", err)
	}
	if out != fs {
		t.Errorf("set already in WGS84 must be returned unchanged")
	}
}
