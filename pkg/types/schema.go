package types

// Well-known spatial reference identifiers (WKIDs).
const (
	// WKIDWGS84 is the geographic WGS84 spatial reference. Targets must
	// use it; sources are reprojected to it before loading.
	WKIDWGS84 = 4326

	// WKIDWebMercator is the Web Mercator projection commonly used by
	// public map services.
	WKIDWebMercator = 3857
)

// Geometry type names as reported by layer descriptions. Comparison of
// geometry types is always case-insensitive.
const (
	GeometryPoint      = "Point"
	GeometryMultipoint = "Multipoint"
	GeometryPolyline   = "Polyline"
	GeometryPolygon    = "Polygon"
)

// SchemaDescription is a structural snapshot of a feature layer: its
// geometry type, spatial reference, and ordered field list. It carries no
// row data and is the sole input to schema reconciliation.
type SchemaDescription struct {
	// GeometryType is the layer's geometry type (Point, Polyline, ...).
	GeometryType string `json:"geometry_type"`

	// WKID is the spatial reference identifier, or zero when the layer
	// reports none.
	WKID int `json:"wkid"`

	// Fields lists all fields in declaration order, including system and
	// geometry fields.
	Fields []FieldDescriptor `json:"fields"`
}
