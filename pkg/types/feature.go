package types

// Feature is a single row: attribute values keyed by field name plus an
// optional shape.
type Feature struct {
	Attributes map[string]interface{} `json:"attributes"`
	Geometry   *Geometry              `json:"geometry,omitempty"`
}

// FeatureSet is a materialized set of rows sharing one schema and one
// spatial reference.
type FeatureSet struct {
	// GeometryType is the geometry type of all features in the set.
	GeometryType string `json:"geometry_type"`

	// WKID is the spatial reference of all geometries in the set.
	WKID int `json:"wkid"`

	// Fields lists the fields present in Attributes.
	Fields []FieldDescriptor `json:"fields"`

	// Features holds the rows. May be empty for a schema-only set.
	Features []Feature `json:"features"`
}

// Schema returns the structural snapshot of the set.
func (fs *FeatureSet) Schema() *SchemaDescription {
	return &SchemaDescription{
		GeometryType: fs.GeometryType,
		WKID:         fs.WKID,
		Fields:       append([]FieldDescriptor(nil), fs.Fields...),
	}
}
