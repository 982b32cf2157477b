package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/appadook/appadook-portfolio-next/models"
)

// fakeReorderCommitter records requests and can fail or block on demand
type fakeReorderCommitter struct {
	mu       sync.Mutex
	requests []*models.ReorderRequest
	err      error
	entered  chan struct{}
	release  chan struct{}
}

func (f *fakeReorderCommitter) CommitReorder(ctx context.Context, req *models.ReorderRequest) (*models.ReorderResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReorderResponse{UpdatedCount: len(req.Items)}, nil
}

func (f *fakeReorderCommitter) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestController(t *testing.T, trackCurrent bool, committer ReorderCommitter) *ReorderController {
	t.Helper()
	c := NewReorderController("test", trackCurrent, committer)
	t.Cleanup(c.Close)
	return c
}

// waitForOrder polls until the controller's effective order matches want.
// Canonical updates travel through an asynchronous channel, so tests must
// wait for the loop to absorb them before staging edits on top.
func waitForOrder(t *testing.T, c *ReorderController, want []string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		snap, err := c.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if IsSameIDOrder(snap.Order, want) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("effective order never reached %v, last %v", want, snap.Order)
		}
		time.Sleep(time.Millisecond)
	}
}

// waitForRows polls until the batch controller exposes wantLen rows.
func waitForRows(t *testing.T, c *BatchController, wantLen int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		snap, err := c.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if len(snap.Rows) == wantLen {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("row count never reached %d, last %d", wantLen, len(snap.Rows))
		}
		time.Sleep(time.Millisecond)
	}
}

func TestReorderControllerSaveSuccess(t *testing.T) {
	ctx := context.Background()
	committer := &fakeReorderCommitter{}
	c := newTestController(t, true, committer)

	c.UpdateCanonical([]string{"a", "b", "c"}, "a")
	waitForOrder(t, c, []string{"a", "b", "c"})
	if err := c.SetOrder(ctx, []string{"b", "a", "c"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}

	resp, err := c.Save(ctx)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if resp.UpdatedCount != 3 {
		t.Errorf("want 3 updates, got %d", resp.UpdatedCount)
	}

	// The committed request renumbers densely and resolves the flag
	req := committer.requests[0]
	want := []models.OrderUpdate{{ID: "b", Order: 1}, {ID: "a", Order: 2}, {ID: "c", Order: 3}}
	for i, w := range want {
		if req.Items[i] != w {
			t.Errorf("item %d: want %+v, got %+v", i, w, req.Items[i])
		}
	}
	if req.CurrentID == nil || *req.CurrentID != "a" {
		t.Errorf("request must resolve the current id, got %v", req.CurrentID)
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.HasChanges || snap.State != "clean" {
		t.Errorf("successful save must leave the store clean, got %+v", snap)
	}
	if !IsSameIDOrder(snap.Order, []string{"b", "a", "c"}) {
		t.Errorf("committed order must be echoed, got %v", snap.Order)
	}
}

func TestReorderControllerSaveFailurePreservesDraft(t *testing.T) {
	ctx := context.Background()
	committer := &fakeReorderCommitter{err: errors.New("backend rejected the write")}
	c := newTestController(t, false, committer)

	c.UpdateCanonical([]string{"a", "b"}, "")
	waitForOrder(t, c, []string{"a", "b"})
	if err := c.SetOrder(ctx, []string{"b", "a"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}

	if _, err := c.Save(ctx); err == nil {
		t.Fatalf("Save should surface the commit failure")
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !snap.HasChanges || snap.State != "dirty" {
		t.Errorf("failed save must leave the draft intact, got %+v", snap)
	}
	if !IsSameIDOrder(snap.Order, []string{"b", "a"}) {
		t.Errorf("draft order lost after failed save: %v", snap.Order)
	}
}

func TestReorderControllerSaveWithoutChanges(t *testing.T) {
	ctx := context.Background()
	committer := &fakeReorderCommitter{}
	c := newTestController(t, false, committer)

	c.UpdateCanonical([]string{"a", "b"}, "")
	waitForOrder(t, c, []string{"a", "b"})

	resp, err := c.Save(ctx)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if resp.UpdatedCount != 0 {
		t.Errorf("clean save must report zero updates, got %d", resp.UpdatedCount)
	}
	if committer.requestCount() != 0 {
		t.Errorf("clean save must not touch the network")
	}
}

func TestReorderControllerRejectsConcurrentSave(t *testing.T) {
	ctx := context.Background()
	committer := &fakeReorderCommitter{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := newTestController(t, false, committer)

	c.UpdateCanonical([]string{"a", "b"}, "")
	waitForOrder(t, c, []string{"a", "b"})
	if err := c.SetOrder(ctx, []string{"b", "a"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := c.Save(ctx)
		firstDone <- err
	}()

	// Wait until the first commit is genuinely in flight
	select {
	case <-committer.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("first commit never started")
	}

	if _, err := c.Save(ctx); !errors.Is(err, ErrCommitInFlight) {
		t.Errorf("second save must be rejected, got %v", err)
	}

	close(committer.release)
	if err := <-firstDone; err != nil {
		t.Errorf("first save failed: %v", err)
	}
}

func TestReorderControllerParksCanonicalDuringSave(t *testing.T) {
	ctx := context.Background()
	committer := &fakeReorderCommitter{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	c := newTestController(t, false, committer)

	c.UpdateCanonical([]string{"a", "b"}, "")
	waitForOrder(t, c, []string{"a", "b"})
	if err := c.SetOrder(ctx, []string{"b", "a"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := c.Save(ctx)
		firstDone <- err
	}()
	select {
	case <-committer.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("commit never started")
	}

	// Another session creates c while our commit is resolving; the snapshot
	// is parked until the commit settles
	c.UpdateCanonical([]string{"a", "b", "c"}, "")

	close(committer.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("save failed: %v", err)
	}

	waitForOrder(t, c, []string{"a", "b", "c"})
	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.HasChanges {
		t.Errorf("no draft should survive a successful save, got %+v", snap)
	}
}

func TestReorderControllerReconcileCollapsesDirty(t *testing.T) {
	ctx := context.Background()
	committer := &fakeReorderCommitter{}
	c := newTestController(t, false, committer)

	c.UpdateCanonical([]string{"a", "b"}, "")
	waitForOrder(t, c, []string{"a", "b"})
	if err := c.SetOrder(ctx, []string{"b", "a"}); err != nil {
		t.Fatalf("SetOrder failed: %v", err)
	}

	// Canonical converges on the draft (e.g. the same edit made elsewhere)
	c.UpdateCanonical([]string{"b", "a"}, "")

	// The update channel is asynchronous; poll until the loop absorbs it
	deadline := time.Now().Add(2 * time.Second)
	for {
		snap, err := c.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if !snap.HasChanges && snap.State == "clean" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("draft never collapsed to clean, last snapshot %+v", snap)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// fakeBatchCommitter mirrors fakeReorderCommitter for the batch flavor
type fakeBatchCommitter struct {
	mu       sync.Mutex
	requests []*models.BatchRequest
	err      error
}

func (f *fakeBatchCommitter) CommitBatch(ctx context.Context, req *models.BatchRequest) (*models.BatchResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &models.BatchResponse{
		CreatedCount: len(req.Creates),
		UpdatedCount: len(req.Updates),
		DeletedCount: len(req.Deletes),
	}, nil
}

func TestBatchControllerSave(t *testing.T) {
	ctx := context.Background()
	committer := &fakeBatchCommitter{}
	c := NewBatchController("test", committer)
	t.Cleanup(c.Close)

	c.UpdateCanonical(canonicalTechs())
	waitForRows(t, c, 2)

	row, err := c.AddItem(ctx)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := c.UpdateField(ctx, row.ID, FieldName, "Redis"); err != nil {
		t.Fatalf("UpdateField failed: %v", err)
	}
	if err := c.UpdateField(ctx, row.ID, FieldCategory, "database"); err != nil {
		t.Fatalf("UpdateField failed: %v", err)
	}
	if err := c.DeleteItem(ctx, "t2"); err != nil {
		t.Fatalf("DeleteItem failed: %v", err)
	}

	resp, err := c.Save(ctx)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if resp.CreatedCount != 1 || resp.UpdatedCount != 0 || resp.DeletedCount != 1 {
		t.Errorf("counts mismatch: %+v", resp)
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.HasChanges || snap.State != "clean" {
		t.Errorf("successful save must clear the batch draft, got %+v", snap)
	}
}

func TestBatchControllerValidationAbortsWithoutNetwork(t *testing.T) {
	ctx := context.Background()
	committer := &fakeBatchCommitter{}
	c := NewBatchController("test", committer)
	t.Cleanup(c.Close)

	c.UpdateCanonical(canonicalTechs())
	waitForRows(t, c, 2)
	if _, err := c.AddItem(ctx); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// The new row has no name or category
	_, err := c.Save(ctx)
	if !IsValidation(err) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(committer.requests) != 0 {
		t.Errorf("validation failure must not reach the network")
	}

	// The invalid draft is preserved for the user to fix
	snap, snapErr := c.Snapshot(ctx)
	if snapErr != nil {
		t.Fatalf("Snapshot failed: %v", snapErr)
	}
	if !snap.HasChanges {
		t.Errorf("draft must survive a validation failure")
	}
}

func TestBatchControllerSaveFailurePreservesDraft(t *testing.T) {
	ctx := context.Background()
	committer := &fakeBatchCommitter{err: errors.New("backend unavailable")}
	c := NewBatchController("test", committer)
	t.Cleanup(c.Close)

	c.UpdateCanonical(canonicalTechs())
	waitForRows(t, c, 2)
	if err := c.UpdateField(ctx, "t1", FieldName, "Golang"); err != nil {
		t.Fatalf("UpdateField failed: %v", err)
	}

	if _, err := c.Save(ctx); err == nil {
		t.Fatalf("Save should surface the commit failure")
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if !snap.HasChanges {
		t.Errorf("failed save must leave the draft batch intact")
	}
	found := false
	for _, row := range snap.Rows {
		if row.ID == "t1" && row.Name == "Golang" {
			found = true
		}
	}
	if !found {
		t.Errorf("edited row lost after failed save: %+v", snap.Rows)
	}
}
