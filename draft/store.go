package draft

import (
	"fmt"
)

// OrderStore holds the pending reorder and current-flag edits for one
// collection. It performs no I/O; canonical data is pushed in through
// SetCanonical and the store keeps the draft valid against it.
//
// Sentinels follow the source semantics: a nil draft order means "no pending
// reorder — use canonical order"; an unset current flag means "no pending
// change — use canonical value". The flag value itself distinguishes "some
// entity is current" (an id) from "no entity is current" (empty string).
type OrderStore struct {
	canonicalIDs     []string
	canonicalCurrent string
	trackCurrent     bool

	draftOrder   []string
	draftCurrent string
	currentSet   bool
}

// NewOrderStore creates an empty store. trackCurrent enables the
// distinguished current-entity flag (experiences); collections without one
// (projects) ignore the flag operations.
func NewOrderStore(trackCurrent bool) *OrderStore {
	return &OrderStore{trackCurrent: trackCurrent}
}

// SetCanonical replaces the canonical snapshot and reconciles the draft
// against it. Safe to call repeatedly with identical data.
func (s *OrderStore) SetCanonical(ids []string, currentID string) {
	s.canonicalIDs = append([]string(nil), ids...)
	s.canonicalCurrent = currentID

	s.draftOrder = ReconcileOrder(s.draftOrder, s.canonicalIDs)
	// Collapse a draft that reconciled into a no-op so the store reads Clean.
	// Positional comparison, not reference comparison: reconciliation always
	// allocates a fresh slice.
	if s.draftOrder != nil && IsSameIDOrder(s.draftOrder, s.canonicalIDs) {
		s.draftOrder = nil
	}

	if s.currentSet {
		if s.draftCurrent != "" && !s.canonicalHas(s.draftCurrent) {
			// The selected entity vanished from canonical (deleted by another
			// session). Drop the pending selection.
			s.currentSet = false
			s.draftCurrent = ""
		} else if s.draftCurrent == s.canonicalCurrent {
			s.currentSet = false
			s.draftCurrent = ""
		}
	}
}

func (s *OrderStore) canonicalHas(id string) bool {
	for _, c := range s.canonicalIDs {
		if c == id {
			return true
		}
	}
	return false
}

// SetOrder replaces the draft order. The caller must pass a permutation of
// the effective id set; anything else is a caller bug and is rejected.
func (s *OrderStore) SetOrder(ids []string) error {
	effective := s.EffectiveOrder()
	if len(ids) != len(effective) {
		return fmt.Errorf("draft order has %d ids, collection has %d", len(ids), len(effective))
	}
	have := make(map[string]bool, len(effective))
	for _, id := range effective {
		have[id] = true
	}
	for _, id := range ids {
		if !have[id] {
			return fmt.Errorf("draft order references unknown id %q", id)
		}
		delete(have, id)
	}

	next := append([]string(nil), ids...)
	if IsSameIDOrder(next, s.canonicalIDs) {
		s.draftOrder = nil
		return nil
	}
	s.draftOrder = next
	return nil
}

// SetCurrent stages a new distinguished entity (empty string clears it).
// Staging the value canonical already holds normalizes back to the unset
// sentinel so no spurious "unsaved changes" indicator appears.
func (s *OrderStore) SetCurrent(id string) error {
	if !s.trackCurrent {
		return fmt.Errorf("collection does not track a current entity")
	}
	if id != "" && !s.canonicalHas(id) {
		return fmt.Errorf("current id %q not in collection", id)
	}
	if id == s.canonicalCurrent {
		s.currentSet = false
		s.draftCurrent = ""
		return nil
	}
	s.currentSet = true
	s.draftCurrent = id
	return nil
}

// Reset discards the draft order and current flag.
func (s *OrderStore) Reset() {
	s.draftOrder = nil
	s.currentSet = false
	s.draftCurrent = ""
}

// HasChanges reports whether the store holds anything worth committing.
func (s *OrderStore) HasChanges() bool {
	if s.draftOrder != nil && !IsSameIDOrder(s.draftOrder, s.canonicalIDs) {
		return true
	}
	if s.currentSet && s.draftCurrent != s.canonicalCurrent {
		return true
	}
	return false
}

// EffectiveOrder returns the id sequence the dashboard should render:
// the draft order when present, else canonical.
func (s *OrderStore) EffectiveOrder() []string {
	if s.draftOrder != nil {
		return append([]string(nil), s.draftOrder...)
	}
	return append([]string(nil), s.canonicalIDs...)
}

// EffectiveCurrent returns the distinguished entity id the dashboard should
// render ("" when none).
func (s *OrderStore) EffectiveCurrent() string {
	if s.currentSet {
		return s.draftCurrent
	}
	return s.canonicalCurrent
}

// CurrentPending reports whether a current-flag change is staged, and the
// staged value if so.
func (s *OrderStore) CurrentPending() (string, bool) {
	return s.draftCurrent, s.currentSet
}

// OrderPending reports whether a reorder is staged.
func (s *OrderStore) OrderPending() bool {
	return s.draftOrder != nil
}
