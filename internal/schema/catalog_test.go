package schema

import (
	"testing"

	"github.com/geosync/geosync/pkg/types"
)

func field(name, alias string, ftype types.FieldType, length int) types.FieldDescriptor {
	return types.FieldDescriptor{Name: name, Alias: alias, Type: ftype, Length: length}
}

func desc(geometryType string, wkid int, fields ...types.FieldDescriptor) *types.SchemaDescription {
	return &types.SchemaDescription{GeometryType: geometryType, WKID: wkid, Fields: fields}
}

func TestBuildCatalog_SystemFieldExclusion(t *testing.T) {
	d := desc(types.GeometryPolygon, types.WKIDWGS84,
		field("OBJECTID", "", types.FieldTypeOID, 0),
		field("Shape", "", types.FieldTypeGeometry, 0),
		field("GlobalID", "", types.FieldTypeGlobalID, 0),
		field("SHAPE_Area", "", types.FieldTypeDouble, 0),
		field("SHAPE_Length", "", types.FieldTypeDouble, 0),
		field("Notes", "Notes", types.FieldTypeString, 255),
	)

	c := BuildCatalog(d)
	if len(c) != 1 {
		t.Fatalf("expected 1 user field, got %d: %v", len(c), c.SortedKeys())
	}
	if _, ok := c["notes"]; !ok {
		t.Errorf("expected key %q, got %v", "notes", c.SortedKeys())
	}
}

func TestBuildCatalog_ExcludedTypes(t *testing.T) {
	d := desc(types.GeometryPoint, types.WKIDWGS84,
		field("Photo", "", types.FieldTypeBlob, 0),
		field("Scan", "", types.FieldTypeRaster, 0),
		field("Meta", "", types.FieldTypeXML, 0),
		field("Status", "", types.FieldTypeString, 20),
	)

	c := BuildCatalog(d)
	if len(c) != 1 {
		t.Fatalf("expected 1 user field, got %d: %v", len(c), c.SortedKeys())
	}
	if _, ok := c["status"]; !ok {
		t.Errorf("expected key %q, got %v", "status", c.SortedKeys())
	}
}

func TestBuildCatalog_Entry(t *testing.T) {
	d := desc(types.GeometryPoint, types.WKIDWGS84,
		field("Created_User_", "Creator Name", types.FieldTypeString, 50),
		field("Qty", "Quantity", types.FieldTypeInteger, 4),
	)

	c := BuildCatalog(d)

	e, ok := c["created_user"]
	if !ok {
		t.Fatalf("expected normalized key %q, got %v", "created_user", c.SortedKeys())
	}
	if e.Name != "Created_User_" {
		t.Errorf("raw name not preserved: %q", e.Name)
	}
	if e.AliasKey != "creator name" {
		t.Errorf("alias key = %q, want %q", e.AliasKey, "creator name")
	}
	if e.Length != 50 {
		t.Errorf("string length = %d, want 50", e.Length)
	}

	// Length is meaningful only for String fields.
	if got := c["qty"].Length; got != 0 {
		t.Errorf("non-string length = %d, want 0", got)
	}
}

func TestBuildCatalog_LastWriteWinsOnKeyCollision(t *testing.T) {
	// Two raw fields normalizing identically is a caller mistake the
	// builder does not reject; the later declaration wins.
	d := desc(types.GeometryPoint, types.WKIDWGS84,
		field("Status", "", types.FieldTypeString, 10),
		field("Status_", "", types.FieldTypeString, 99),
	)

	c := BuildCatalog(d)
	if len(c) != 1 {
		t.Fatalf("expected 1 key, got %d", len(c))
	}
	if got := c["status"].Name; got != "Status_" {
		t.Errorf("expected later field to win, got %q", got)
	}
}

func TestDumpFields(t *testing.T) {
	d := desc(types.GeometryPoint, types.WKIDWGS84,
		field("OBJECTID", "", types.FieldTypeOID, 0),
		field("Name", "Name", types.FieldTypeString, 80),
	)

	dump := DumpFields(d)
	if len(dump) != 2 {
		t.Fatalf("expected dump of all raw fields, got %d", len(dump))
	}
	if dump[0].Name != "OBJECTID" || dump[1].Length != 80 {
		t.Errorf("unexpected dump content: %+v", dump)
	}
}
