package schema

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"lowercases", "Status", "status"},
		{"trims surrounding space", "  Zone Name  ", "zone name"},
		{"strips one trailing underscore", "Created_User_", "created_user"},
		{"strips only one trailing underscore", "foo__", "foo_"},
		{"keeps internal underscores", "shape_area", "shape_area"},
		{"keeps internal whitespace", "a  b", "a  b"},
		{"underscore only", "_", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_TrackedFieldQuirk(t *testing.T) {
	// Tracked fields acquire a single trailing underscore upstream; the
	// normalized keys must collide so they match by name.
	if Normalize("Created_User_") != Normalize("created_user") {
		t.Errorf("expected tracked-field variants to normalize identically")
	}
}
