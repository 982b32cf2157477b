// Package draft implements the admin dashboard's staging layer: per-collection
// draft state for reordering and batched row editing, reconciliation of that
// state against canonical server data, and the commit pipeline that turns a
// draft into a minimal remote write.
package draft

import (
	"math"
	"sort"
)

// Orderable is the capability the ordering utilities need from an entity.
// Implementations return their display sort key; callers with integer order
// columns widen to float64.
type Orderable interface {
	SortOrder() float64
}

// orderKey normalizes a sort key for comparison. Missing or non-finite
// values sort as 0.
func orderKey(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SortByOrder returns a new slice sorted ascending by sort key. The sort is
// stable so entries with colliding keys keep their relative input order.
func SortByOrder[T Orderable](items []T) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return orderKey(sorted[i].SortOrder()) < orderKey(sorted[j].SortOrder())
	})
	return sorted
}

// IsSameIDOrder reports whether two id sequences are identical in length and
// position. Used to detect no-op drafts.
func IsSameIDOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ReconcileOrder keeps a draft id sequence valid against the current
// canonical id sequence: draft ids whose entities no longer exist are
// dropped, canonical ids missing from the draft are appended at the end,
// and the relative draft ordering of retained ids is preserved. A nil
// draft stays nil ("no pending reorder"). When the draft is non-nil the
// result is always a permutation of the canonical ids.
func ReconcileOrder(draftIDs, canonicalIDs []string) []string {
	if draftIDs == nil {
		return nil
	}

	canonical := make(map[string]bool, len(canonicalIDs))
	for _, id := range canonicalIDs {
		canonical[id] = true
	}

	result := make([]string, 0, len(canonicalIDs))
	seen := make(map[string]bool, len(canonicalIDs))
	for _, id := range draftIDs {
		if canonical[id] && !seen[id] {
			result = append(result, id)
			seen[id] = true
		}
	}

	// Newly created entities the draft has never heard of go at the end
	for _, id := range canonicalIDs {
		if !seen[id] {
			result = append(result, id)
			seen[id] = true
		}
	}

	return result
}

// NextOrder returns the sort key a newly created entity should be seeded
// with: 1 for an empty collection, otherwise one past the current maximum.
func NextOrder[T Orderable](items []T) int {
	if len(items) == 0 {
		return 1
	}
	max := math.Inf(-1)
	for _, item := range items {
		if k := orderKey(item.SortOrder()); k > max {
			max = k
		}
	}
	return int(max) + 1
}
