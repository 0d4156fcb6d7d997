package sync

import (
	"strings"
	"testing"
)

func TestNewScratchContext_UniqueNames(t *testing.T) {
	a := NewScratchContext()
	b := NewScratchContext()

	if a.SchemaSnapshot == b.SchemaSnapshot {
		t.Errorf("scratch names must be unique per invocation: %s", a.SchemaSnapshot)
	}
}

func TestScratchContext_Paths(t *testing.T) {
	s := NewScratchContext()

	paths := s.Paths()
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	seen := map[string]bool{}
	for _, p := range paths {
		if !strings.HasPrefix(p, "scratch/") {
			t.Errorf("scratch path %q lacks the scratch/ prefix", p)
		}
		if seen[p] {
			t.Errorf("duplicate scratch path %q", p)
		}
		seen[p] = true
	}
}
