// Package schema implements the schema reconciliation engine: field name
// normalization, user-field catalogs, name/alias matching, and the
// compatibility guard that gates destructive sync writes.
package schema

import "strings"

// Normalize canonicalizes a field name or alias into a comparison key.
// It trims surrounding whitespace, lowercases, and removes exactly one
// trailing underscore if present. Editor-tracked fields acquire a single
// trailing underscore upstream; stripping more than one would conflate
// genuinely distinct names. Empty input normalizes to the empty string,
// which never matches anything.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.TrimSuffix(s, "_")
}
