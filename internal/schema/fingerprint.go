package schema

import (
	"fmt"

	"github.com/spaolacci/murmur3"
)

// Fingerprint returns a stable 64-bit hash of the catalog's normalized
// structure (keys, alias keys, types, lengths). Two catalogs that compare
// equal field-for-field produce the same fingerprint regardless of the
// raw casing or trailing-underscore quirks of their field names.
func (c Catalog) Fingerprint() uint64 {
	h := murmur3.New64()
	for _, k := range c.SortedKeys() {
		e := c[k]
		fmt.Fprintf(h, "%s|%s|%s|%d\n", e.Key, e.AliasKey, e.Type, e.Length)
	}
	return h.Sum64()
}
