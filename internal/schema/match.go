package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/geosync/geosync/pkg/types"
)

// AllowList is a case-insensitive set of target-only field names that may
// exist in the target without failing the guard. Membership is tested
// against the raw target field name, not the normalized key: an extra that
// differs from its allow-list entry only by the trailing-underscore quirk
// is NOT recognized as allowed.
type AllowList map[string]struct{}

// NewAllowList builds an allow-list from configured field names.
func NewAllowList(names []string) AllowList {
	a := make(AllowList, len(names))
	for _, n := range names {
		a[strings.ToLower(n)] = struct{}{}
	}
	return a
}

// Contains reports whether the raw field name is allow-listed.
func (a AllowList) Contains(name string) bool {
	_, ok := a[strings.ToLower(name)]
	return ok
}

// Mismatch records a type or length difference between a matched pair.
type Mismatch struct {
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
	Reason     string `json:"reason"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s <-> %s: %s", m.SourceName, m.TargetName, m.Reason)
}

// MatchResult is the outcome of pairing source fields to target fields.
// Produced fresh per comparison and never persisted.
type MatchResult struct {
	// MissingInTarget lists source field names with no counterpart in the
	// target. Any entry is a hard failure.
	MissingInTarget []string `json:"missing_in_target"`

	// ExtrasNotAllowed lists target-only field names absent from the
	// allow-list. Any entry is a hard failure.
	ExtrasNotAllowed []string `json:"extras_not_allowed"`

	// TypeLengthMismatches lists matched pairs whose types differ, or
	// whose lengths differ for String fields. Any entry is a hard failure.
	TypeLengthMismatches []Mismatch `json:"type_length_mismatches"`

	// ExtrasAllowedIgnored lists target-only field names tolerated via
	// the allow-list.
	ExtrasAllowedIgnored []string `json:"extras_allowed_ignored"`
}

// OK reports whether the match found no missing fields, no disallowed
// extras, and no type/length mismatches.
func (r *MatchResult) OK() bool {
	return len(r.MissingInTarget) == 0 &&
		len(r.ExtrasNotAllowed) == 0 &&
		len(r.TypeLengthMismatches) == 0
}

func (r *MatchResult) String() string {
	mismatches := make([]string, len(r.TypeLengthMismatches))
	for i, m := range r.TypeLengthMismatches {
		mismatches[i] = m.String()
	}
	return fmt.Sprintf(
		"missing_in_target=%v extras_not_allowed=%v type_length_mismatches=%v extras_allowed_ignored=%v",
		r.MissingInTarget, r.ExtrasNotAllowed, mismatches, r.ExtrasAllowedIgnored,
	)
}

// Match pairs source fields to target fields: normalized names first, then
// alias fallback for source fields whose literal name has no counterpart.
// Unmatched source fields are missing; unmatched target fields are extras,
// tolerated only when allow-listed. Matched pairs are then checked for
// type and String-length equality.
//
// Alias fallback exists because physical names drift across systems while
// display aliases tend to be preserved. A source field matches at most one
// target field; when several targets share an alias key the smallest
// normalized name wins, keeping the scan deterministic.
func Match(source, target Catalog, allow AllowList) *MatchResult {
	result := &MatchResult{
		MissingInTarget:      []string{},
		ExtrasNotAllowed:     []string{},
		TypeLengthMismatches: []Mismatch{},
		ExtrasAllowedIgnored: []string{},
	}

	srcKeys := source.SortedKeys()
	tgtKeys := target.SortedKeys()

	matchedSrc := make(map[string]bool, len(source))
	matchedTgt := make(map[string]bool, len(target))
	pairs := make(map[string]string, len(source)) // source key -> target key

	// Name pass.
	for _, sk := range srcKeys {
		if _, ok := target[sk]; ok {
			matchedSrc[sk] = true
			matchedTgt[sk] = true
			pairs[sk] = sk
		}
	}

	// Alias pass. Reverse index of target entries by alias key; first
	// (smallest) target key wins for a shared alias.
	tgtByAlias := make(map[string]string, len(target))
	for _, tk := range tgtKeys {
		ak := target[tk].AliasKey
		if ak == "" {
			continue
		}
		if _, seen := tgtByAlias[ak]; !seen {
			tgtByAlias[ak] = tk
		}
	}
	for _, sk := range srcKeys {
		if matchedSrc[sk] {
			continue
		}
		ak := source[sk].AliasKey
		if ak == "" {
			continue
		}
		tk, ok := tgtByAlias[ak]
		if !ok || matchedTgt[tk] {
			continue
		}
		matchedSrc[sk] = true
		matchedTgt[tk] = true
		pairs[sk] = tk
	}

	// Source fields never matched are missing in the target.
	for _, sk := range srcKeys {
		if !matchedSrc[sk] {
			result.MissingInTarget = append(result.MissingInTarget, source[sk].Name)
		}
	}

	// Target fields never matched are extras; the allow-list is consulted
	// by raw target name, case-insensitively.
	for _, tk := range tgtKeys {
		if matchedTgt[tk] {
			continue
		}
		name := target[tk].Name
		if allow.Contains(name) {
			result.ExtrasAllowedIgnored = append(result.ExtrasAllowedIgnored, name)
		} else {
			result.ExtrasNotAllowed = append(result.ExtrasNotAllowed, name)
		}
	}

	// Type/length check over matched pairs.
	pairKeys := make([]string, 0, len(pairs))
	for sk := range pairs {
		pairKeys = append(pairKeys, sk)
	}
	sort.Strings(pairKeys)
	for _, sk := range pairKeys {
		s := source[sk]
		t := target[pairs[sk]]
		if s.Type != t.Type {
			result.TypeLengthMismatches = append(result.TypeLengthMismatches, Mismatch{
				SourceName: s.Name,
				TargetName: t.Name,
				Reason:     fmt.Sprintf("type %s != %s", s.Type, t.Type),
			})
			continue
		}
		if s.Type == types.FieldTypeString && s.Length != t.Length {
			result.TypeLengthMismatches = append(result.TypeLengthMismatches, Mismatch{
				SourceName: s.Name,
				TargetName: t.Name,
				Reason:     fmt.Sprintf("length %d != %d", s.Length, t.Length),
			})
		}
	}

	return result
}
