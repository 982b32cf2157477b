package draft

import (
	"math"
	"testing"
)

type orderedItem struct {
	id    string
	order float64
}

func (i orderedItem) SortOrder() float64 { return i.order }

func TestSortByOrderStable(t *testing.T) {
	items := []orderedItem{
		{id: "c", order: 3},
		{id: "a1", order: 1},
		{id: "a2", order: 1},
		{id: "b", order: 2},
	}

	sorted := SortByOrder(items)

	want := []string{"a1", "a2", "b", "c"}
	for i, w := range want {
		if sorted[i].id != w {
			t.Errorf("position %d: want %s, got %s", i, w, sorted[i].id)
		}
	}

	// Input must be untouched
	if items[0].id != "c" {
		t.Errorf("SortByOrder mutated its input")
	}
}

func TestSortByOrderNonFinite(t *testing.T) {
	items := []orderedItem{
		{id: "nan", order: math.NaN()},
		{id: "neg", order: -1},
		{id: "inf", order: math.Inf(1)},
	}

	sorted := SortByOrder(items)

	// NaN and Inf both sort as 0: after "neg", keeping their relative order
	want := []string{"neg", "nan", "inf"}
	for i, w := range want {
		if sorted[i].id != w {
			t.Errorf("position %d: want %s, got %s", i, w, sorted[i].id)
		}
	}
}

func TestIsSameIDOrder(t *testing.T) {
	if !IsSameIDOrder([]string{"a", "b"}, []string{"a", "b"}) {
		t.Errorf("identical sequences reported different")
	}
	if IsSameIDOrder([]string{"a", "b"}, []string{"b", "a"}) {
		t.Errorf("reordered sequences reported same")
	}
	if IsSameIDOrder([]string{"a"}, []string{"a", "b"}) {
		t.Errorf("different lengths reported same")
	}
	if !IsSameIDOrder(nil, []string{}) {
		t.Errorf("nil and empty should compare equal positionally")
	}
}

func TestReconcileOrderNilDraft(t *testing.T) {
	if got := ReconcileOrder(nil, []string{"a", "b"}); got != nil {
		t.Errorf("nil draft must stay nil, got %v", got)
	}
}

func TestReconcileOrderDropsStaleAndAppendsNew(t *testing.T) {
	// Draft reordered [a b c] into [c a b]; meanwhile the server deleted b
	// and created d
	got := ReconcileOrder([]string{"c", "a", "b"}, []string{"a", "c", "d"})

	want := []string{"c", "a", "d"}
	if !IsSameIDOrder(got, want) {
		t.Errorf("reconcile mismatch.\nWant: %v\nGot:  %v", want, got)
	}
}

func TestReconcileOrderPermutationInvariant(t *testing.T) {
	canonical := []string{"a", "b", "c", "d"}
	drafts := [][]string{
		{},
		{"zz"},
		{"d", "b"},
		{"d", "c", "b", "a"},
		{"a", "a", "b"},
		{"x", "d", "y", "a", "d"},
	}

	for _, draftIDs := range drafts {
		got := ReconcileOrder(draftIDs, canonical)
		if len(got) != len(canonical) {
			t.Errorf("draft %v: want %d ids, got %v", draftIDs, len(canonical), got)
			continue
		}
		seen := make(map[string]bool)
		for _, id := range got {
			seen[id] = true
		}
		for _, id := range canonical {
			if !seen[id] {
				t.Errorf("draft %v: canonical id %s missing from %v", draftIDs, id, got)
			}
		}
	}
}

func TestReconcileOrderIdempotent(t *testing.T) {
	canonical := []string{"a", "b", "c"}
	drafts := [][]string{
		{"c", "b", "a"},
		{"b"},
		{"x", "c", "a"},
		nil,
	}

	for _, draftIDs := range drafts {
		once := ReconcileOrder(draftIDs, canonical)
		twice := ReconcileOrder(once, canonical)
		if (once == nil) != (twice == nil) || !IsSameIDOrder(once, twice) {
			t.Errorf("draft %v: reconcile not idempotent.\nOnce:  %v\nTwice: %v", draftIDs, once, twice)
		}
	}
}

func TestReconcileOrderNoOp(t *testing.T) {
	canonical := []string{"a", "b", "c"}
	got := ReconcileOrder([]string{"a", "b", "c"}, canonical)
	if !IsSameIDOrder(got, canonical) {
		t.Errorf("same-order draft must reconcile to canonical, got %v", got)
	}
}

func TestNextOrder(t *testing.T) {
	if got := NextOrder([]orderedItem{}); got != 1 {
		t.Errorf("empty collection: want 1, got %d", got)
	}
	if got := NextOrder([]orderedItem{{order: 5}, {order: 2}}); got != 6 {
		t.Errorf("want 6, got %d", got)
	}
	// Non-finite values count as 0 for the max
	if got := NextOrder([]orderedItem{{order: math.NaN()}, {order: math.Inf(1)}}); got != 1 {
		t.Errorf("non-finite orders: want 1, got %d", got)
	}
	if got := NextOrder([]orderedItem{{order: math.NaN()}, {order: 3}}); got != 4 {
		t.Errorf("mixed orders: want 4, got %d", got)
	}
}
