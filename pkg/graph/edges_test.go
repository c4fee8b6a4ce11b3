package graph

import (
	"fmt"
	"testing"

	"textgraph/pkg/store"
)

func refs(publicIDs ...string) []store.EntityRef {
	out := make([]store.EntityRef, len(publicIDs))
	for i, id := range publicIDs {
		out[i] = store.EntityRef{ID: int64(i + 1), PublicID: id}
	}
	return out
}

func TestBuildCoOccurrenceEdges_PairCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entities []store.EntityRef
		want     int
	}{
		{name: "empty", entities: nil, want: 0},
		{name: "single_entity", entities: refs("a"), want: 0},
		{name: "two_entities", entities: refs("a", "b"), want: 1},
		{name: "three_entities", entities: refs("a", "b", "c"), want: 3},
		{name: "five_entities", entities: refs("a", "b", "c", "d", "e"), want: 10},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := BuildCoOccurrenceEdges(tc.entities)
			if len(got) != tc.want {
				t.Fatalf("expected %d pairs, got %d", tc.want, len(got))
			}
		})
	}
}

func TestBuildCoOccurrenceEdges_QuadraticFormula(t *testing.T) {
	t.Parallel()

	for n := 2; n <= 12; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = fmt.Sprintf("entity-%03d", i)
		}
		got := BuildCoOccurrenceEdges(refs(ids...))
		want := n * (n - 1) / 2
		if len(got) != want {
			t.Fatalf("n=%d: expected %d pairs, got %d", n, want, len(got))
		}
	}
}

func TestBuildCoOccurrenceEdges_CanonicalOrdering(t *testing.T) {
	t.Parallel()

	// Input order deliberately does not match public ID order.
	entities := []store.EntityRef{
		{ID: 10, PublicID: "zzz"},
		{ID: 20, PublicID: "aaa"},
		{ID: 30, PublicID: "mmm"},
	}
	byID := map[int64]string{10: "zzz", 20: "aaa", 30: "mmm"}

	pairs := BuildCoOccurrenceEdges(entities)
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs, got %d", len(pairs))
	}
	for _, p := range pairs {
		if byID[p.SourceID] >= byID[p.TargetID] {
			t.Fatalf("pair (%d,%d): source public ID %q not less than target %q",
				p.SourceID, p.TargetID, byID[p.SourceID], byID[p.TargetID])
		}
	}
}

func TestBuildCoOccurrenceEdges_NoDuplicatePairs(t *testing.T) {
	t.Parallel()

	// Duplicate refs in the input must still collapse to one pair each.
	entities := []store.EntityRef{
		{ID: 1, PublicID: "a"},
		{ID: 2, PublicID: "b"},
		{ID: 1, PublicID: "a"},
	}

	pairs := BuildCoOccurrenceEdges(entities)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 deduplicated pair, got %d", len(pairs))
	}
	if pairs[0].SourceID != 1 || pairs[0].TargetID != 2 {
		t.Fatalf("expected pair (1,2), got (%d,%d)", pairs[0].SourceID, pairs[0].TargetID)
	}
}
