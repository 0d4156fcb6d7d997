package types

// FieldType enumerates geodatabase field types as reported by a layer
// description. The values mirror the type names used by map-service layer
// metadata, with the "esriFieldType" prefix stripped.
type FieldType string

const (
	FieldTypeString       FieldType = "String"
	FieldTypeInteger      FieldType = "Integer"
	FieldTypeSmallInteger FieldType = "SmallInteger"
	FieldTypeDouble       FieldType = "Double"
	FieldTypeSingle       FieldType = "Single"
	FieldTypeDate         FieldType = "Date"
	FieldTypeOID          FieldType = "OID"
	FieldTypeGeometry     FieldType = "Geometry"
	FieldTypeGlobalID     FieldType = "GlobalID"
	FieldTypeGUID         FieldType = "GUID"
	FieldTypeBlob         FieldType = "Blob"
	FieldTypeRaster       FieldType = "Raster"
	FieldTypeXML          FieldType = "XML"
)

// FieldDescriptor is an immutable snapshot of a single field read from a
// layer description. It is never mutated after construction.
type FieldDescriptor struct {
	// Name is the physical field name.
	Name string `json:"name"`

	// Alias is the display alias, possibly empty.
	Alias string `json:"alias"`

	// Type is the field type.
	Type FieldType `json:"type"`

	// Length is the maximum length in characters. Meaningful only when
	// Type is String; zero for all other types.
	Length int `json:"length,omitempty"`
}
