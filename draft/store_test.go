package draft

import (
	"testing"
)

func TestOrderStoreCleanByDefault(t *testing.T) {
	s := NewOrderStore(true)
	s.SetCanonical([]string{"a", "b"}, "a")

	if s.HasChanges() {
		t.Errorf("fresh store must report no changes")
	}
	if !IsSameIDOrder(s.EffectiveOrder(), []string{"a", "b"}) {
		t.Errorf("effective order should mirror canonical, got %v", s.EffectiveOrder())
	}
	if s.EffectiveCurrent() != "a" {
		t.Errorf("effective current should mirror canonical, got %q", s.EffectiveCurrent())
	}
}

func TestOrderStoreSetOrder(t *testing.T) {
	s := NewOrderStore(false)
	s.SetCanonical([]string{"a", "b", "c"}, "")

	if err := s.SetOrder([]string{"c", "a", "b"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}
	if !s.HasChanges() {
		t.Errorf("reordered store must report changes")
	}
	if !IsSameIDOrder(s.EffectiveOrder(), []string{"c", "a", "b"}) {
		t.Errorf("effective order mismatch: %v", s.EffectiveOrder())
	}
}

func TestOrderStoreSetOrderRejectsBadPermutation(t *testing.T) {
	s := NewOrderStore(false)
	s.SetCanonical([]string{"a", "b"}, "")

	if err := s.SetOrder([]string{"a"}); err == nil {
		t.Errorf("short sequence must be rejected")
	}
	if err := s.SetOrder([]string{"a", "x"}); err == nil {
		t.Errorf("unknown id must be rejected")
	}
	if err := s.SetOrder([]string{"a", "a"}); err == nil {
		t.Errorf("duplicate id must be rejected")
	}
	if s.HasChanges() {
		t.Errorf("rejected input must not dirty the store")
	}
}

func TestOrderStoreNoOpOrderCollapses(t *testing.T) {
	s := NewOrderStore(false)
	s.SetCanonical([]string{"a", "b"}, "")

	// Staging the canonical order is not a change
	if err := s.SetOrder([]string{"a", "b"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}
	if s.HasChanges() {
		t.Errorf("canonical-order draft must read clean")
	}
	if s.OrderPending() {
		t.Errorf("no-op draft must collapse to the nil sentinel")
	}
}

func TestOrderStoreReconcileCollapsesNoOp(t *testing.T) {
	s := NewOrderStore(false)
	s.SetCanonical([]string{"a", "b", "c"}, "")
	if err := s.SetOrder([]string{"a", "c", "b"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}

	// The server catches up: canonical now matches the draft exactly
	s.SetCanonical([]string{"a", "c", "b"}, "")

	if s.HasChanges() {
		t.Errorf("draft equal to new canonical must read clean")
	}
	if s.OrderPending() {
		t.Errorf("reconciled no-op draft must collapse to nil")
	}
}

func TestOrderStoreReconcileKeepsLiveEdits(t *testing.T) {
	s := NewOrderStore(false)
	s.SetCanonical([]string{"a", "b", "c"}, "")
	if err := s.SetOrder([]string{"c", "b", "a"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}

	// Another session deletes b and creates d
	s.SetCanonical([]string{"a", "c", "d"}, "")

	want := []string{"c", "a", "d"}
	if !IsSameIDOrder(s.EffectiveOrder(), want) {
		t.Errorf("reconciled order mismatch.\nWant: %v\nGot:  %v", want, s.EffectiveOrder())
	}
	if !s.HasChanges() {
		t.Errorf("still-meaningful draft must stay dirty")
	}

	// Reconciliation is idempotent: the same snapshot again changes nothing
	s.SetCanonical([]string{"a", "c", "d"}, "")
	if !IsSameIDOrder(s.EffectiveOrder(), want) {
		t.Errorf("repeat reconcile changed the draft: %v", s.EffectiveOrder())
	}
}

func TestOrderStoreCurrentNormalizesToCanonical(t *testing.T) {
	s := NewOrderStore(true)
	s.SetCanonical([]string{"a", "b"}, "a")

	// Staging the value canonical already holds is not a change
	if err := s.SetCurrent("a"); err != nil {
		t.Fatalf("SetCurrent failed: %v", err)
	}
	if s.HasChanges() {
		t.Errorf("staging the canonical current must read clean")
	}
	if _, set := s.CurrentPending(); set {
		t.Errorf("normalized flag must return to the unset sentinel")
	}
}

func TestOrderStoreCurrentChange(t *testing.T) {
	s := NewOrderStore(true)
	s.SetCanonical([]string{"a", "b"}, "a")

	if err := s.SetCurrent("b"); err != nil {
		t.Fatalf("SetCurrent failed: %v", err)
	}
	if !s.HasChanges() {
		t.Errorf("changed flag must report changes")
	}
	if s.EffectiveCurrent() != "b" {
		t.Errorf("effective current: want b, got %q", s.EffectiveCurrent())
	}

	// Clearing stages "" which differs from canonical "a"
	if err := s.SetCurrent(""); err != nil {
		t.Fatalf("SetCurrent clear failed: %v", err)
	}
	if !s.HasChanges() || s.EffectiveCurrent() != "" {
		t.Errorf("cleared flag should be a pending change with empty effective current")
	}
}

func TestOrderStoreCurrentRejectsUnknownID(t *testing.T) {
	s := NewOrderStore(true)
	s.SetCanonical([]string{"a"}, "")

	if err := s.SetCurrent("ghost"); err == nil {
		t.Errorf("unknown id must be rejected")
	}
}

func TestOrderStoreReconcileDropsStaleCurrent(t *testing.T) {
	s := NewOrderStore(true)
	s.SetCanonical([]string{"a", "b"}, "a")
	if err := s.SetCurrent("b"); err != nil {
		t.Fatalf("SetCurrent failed: %v", err)
	}

	// b deleted server-side mid-edit: the pending selection is dropped
	s.SetCanonical([]string{"a"}, "a")

	if _, set := s.CurrentPending(); set {
		t.Errorf("stale pending selection must be dropped")
	}
	if s.EffectiveCurrent() != "a" {
		t.Errorf("effective current should fall back to canonical, got %q", s.EffectiveCurrent())
	}
	if s.HasChanges() {
		t.Errorf("store must read clean after the drop")
	}
}

func TestOrderStoreReconcileUnsetsMatchedCurrent(t *testing.T) {
	s := NewOrderStore(true)
	s.SetCanonical([]string{"a", "b"}, "a")
	if err := s.SetCurrent("b"); err != nil {
		t.Fatalf("SetCurrent failed: %v", err)
	}

	// Canonical converges on the staged value (our own save, or another
	// session making the same change)
	s.SetCanonical([]string{"a", "b"}, "b")

	if s.HasChanges() {
		t.Errorf("flag equal to canonical must read clean")
	}
	if _, set := s.CurrentPending(); set {
		t.Errorf("matched flag must return to the unset sentinel")
	}
}

func TestOrderStoreReset(t *testing.T) {
	s := NewOrderStore(true)
	s.SetCanonical([]string{"a", "b"}, "a")
	if err := s.SetOrder([]string{"b", "a"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}
	if err := s.SetCurrent("b"); err != nil {
		t.Fatalf("SetCurrent failed: %v", err)
	}

	s.Reset()

	if s.HasChanges() {
		t.Errorf("reset store must read clean")
	}
	if !IsSameIDOrder(s.EffectiveOrder(), []string{"a", "b"}) {
		t.Errorf("reset must fall back to canonical order, got %v", s.EffectiveOrder())
	}
	if s.EffectiveCurrent() != "a" {
		t.Errorf("reset must fall back to canonical current, got %q", s.EffectiveCurrent())
	}
}
