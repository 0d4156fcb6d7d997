package schema

import (
	"testing"

	"github.com/geosync/geosync/pkg/types"
)

func TestFingerprint_StableAcrossRawCasing(t *testing.T) {
	a := catalogOf(t,
		field("Created_User_", "Creator", types.FieldTypeString, 50),
		field("Qty", "Quantity", types.FieldTypeInteger, 0),
	)
	b := catalogOf(t,
		field("created_user", "CREATOR", types.FieldTypeString, 50),
		field("QTY", "quantity", types.FieldTypeInteger, 0),
	)

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("catalogs that compare equal must share a fingerprint")
	}
}

func TestFingerprint_SensitiveToStructure(t *testing.T) {
	base := catalogOf(t, field("Name", "", types.FieldTypeString, 50))

	widened := catalogOf(t, field("Name", "", types.FieldTypeString, 100))
	if base.Fingerprint() == widened.Fingerprint() {
		t.Errorf("length change must alter the fingerprint")
	}

	extra := catalogOf(t,
		field("Name", "", types.FieldTypeString, 50),
		field("Zone", "", types.FieldTypeString, 10),
	)
	if base.Fingerprint() == extra.Fingerprint() {
		t.Errorf("added field must alter the fingerprint")
	}
}
