package schema

import (
	"sort"
	"strings"

	"github.com/geosync/geosync/pkg/types"
)

// systemFieldNames are maintained by the geodatabase itself and excluded
// from comparison. Matched case-insensitively against the raw field name.
var systemFieldNames = map[string]struct{}{
	"objectid":     {},
	"shape":        {},
	"globalid":     {},
	"shape_area":   {},
	"shape_length": {},
}

// excludedFieldTypes are engine-managed types that never participate in
// user-field comparison.
var excludedFieldTypes = map[types.FieldType]struct{}{
	types.FieldTypeOID:      {},
	types.FieldTypeGeometry: {},
	types.FieldTypeGlobalID: {},
	types.FieldTypeBlob:     {},
	types.FieldTypeRaster:   {},
	types.FieldTypeXML:      {},
}

// Entry is one user field in a catalog, carrying both the raw descriptor
// values and the normalized comparison keys.
type Entry struct {
	// Name is the raw field name as declared.
	Name string

	// Alias is the raw display alias, possibly empty.
	Alias string

	// Type is the field type.
	Type types.FieldType

	// Length is the string length; zero for non-String types.
	Length int

	// Key is the normalized name.
	Key string

	// AliasKey is the normalized alias; empty when no alias is set.
	AliasKey string
}

// Catalog maps normalized field name to its entry. Keys are unique within
// one catalog; if two raw fields normalize identically the last one wins.
type Catalog map[string]Entry

// BuildCatalog extracts the user fields of a schema description into a
// normalized lookup, skipping system fields and engine-managed types.
func BuildCatalog(desc *types.SchemaDescription) Catalog {
	out := make(Catalog, len(desc.Fields))
	for _, fld := range desc.Fields {
		name := strings.TrimSpace(fld.Name)
		if _, ok := systemFieldNames[strings.ToLower(name)]; ok {
			continue
		}
		if _, ok := excludedFieldTypes[fld.Type]; ok {
			continue
		}
		length := 0
		if fld.Type == types.FieldTypeString {
			length = fld.Length
		}
		key := Normalize(name)
		out[key] = Entry{
			Name:     name,
			Alias:    fld.Alias,
			Type:     fld.Type,
			Length:   length,
			Key:      key,
			AliasKey: Normalize(fld.Alias),
		}
	}
	return out
}

// SortedKeys returns the catalog keys in lexicographic order. Catalogs are
// unordered maps; every scan over a catalog goes through sorted keys so
// matching is deterministic regardless of map iteration order.
func (c Catalog) SortedKeys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldInfo is raw field information for diagnostics.
type FieldInfo struct {
	Name   string          `json:"name"`
	Alias  string          `json:"alias"`
	Type   types.FieldType `json:"type"`
	Length int             `json:"length,omitempty"`
}

// DumpFields returns the raw field list of a schema description, with
// length reported only for String fields. Used in mismatch diagnostics.
func DumpFields(desc *types.SchemaDescription) []FieldInfo {
	out := make([]FieldInfo, 0, len(desc.Fields))
	for _, fld := range desc.Fields {
		length := 0
		if fld.Type == types.FieldTypeString {
			length = fld.Length
		}
		out = append(out, FieldInfo{
			Name:   fld.Name,
			Alias:  fld.Alias,
			Type:   fld.Type,
			Length: length,
		})
	}
	return out
}
