package schema

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_NormalizeIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Field names as they occur in layer schemas: alphanumeric with at
	// most the single tracked-field trailing underscore.
	fieldNames := gen.RegexMatch(`[A-Za-z][A-Za-z0-9]{0,30}_?`)

	properties.Property("normalize(normalize(x)) == normalize(x)", prop.ForAll(
		func(s string) bool {
			once := Normalize(s)
			return Normalize(once) == once
		},
		fieldNames,
	))

	properties.Property("surrounding whitespace never survives", prop.ForAll(
		func(s string) bool {
			key := Normalize("  " + s + "  ")
			return key == Normalize(s)
		},
		fieldNames,
	))

	properties.Property("normalized keys are lowercase", prop.ForAll(
		func(s string) bool {
			key := Normalize(s)
			return key == strings.ToLower(key)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
