package draft

import (
	"context"
	"errors"
	"log"

	"github.com/appadook/appadook-portfolio-next/models"
)

// State describes where a collection's draft sits in its commit lifecycle.
type State int

const (
	// StateClean means no draft is staged.
	StateClean State = iota
	// StateDirty means staged edits differ from canonical.
	StateDirty
	// StateSaving means a commit is in flight.
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	}
	return "unknown"
}

// ErrCommitInFlight is returned when a save is requested while another
// commit for the same collection is still resolving.
var ErrCommitInFlight = errors.New("a save for this collection is already in flight")

// ReorderCommitter issues the remote reorder write.
type ReorderCommitter interface {
	CommitReorder(ctx context.Context, req *models.ReorderRequest) (*models.ReorderResponse, error)
}

// BatchCommitter issues the remote batch write.
type BatchCommitter interface {
	CommitBatch(ctx context.Context, req *models.BatchRequest) (*models.BatchResponse, error)
}

// canonicalOrder is one canonical snapshot pushed into a reorder controller.
type canonicalOrder struct {
	ids     []string
	current string
}

// orderCommand envelopes the work the controller goroutine must perform on
// behalf of one caller. run receives the caller's reply channel so a save
// can defer its reply until the commit resolves.
type orderCommand struct {
	run   func(reply chan orderResult) orderResult
	reply chan orderResult
}

type orderResult struct {
	snap     OrderSnapshot
	resp     *models.ReorderResponse
	err      error
	deferred bool
}

// OrderSnapshot is a caller-facing view of a reorder controller's state.
type OrderSnapshot struct {
	Order      []string `json:"order"`
	Current    string   `json:"current,omitempty"`
	HasChanges bool     `json:"hasChanges"`
	State      string   `json:"state"`
}

// ReorderController owns the draft order and current-flag state for one
// collection. A single goroutine owns the store and merges two inputs: the
// canonical-update stream and caller commands. Commits run through the same
// goroutine's state machine, so reconciliation never interleaves with a
// commit that is still resolving — canonical snapshots arriving while a
// commit is in flight are parked and applied after it resolves.
type ReorderController struct {
	name      string
	store     *OrderStore
	committer ReorderCommitter

	commands chan orderCommand
	updates  chan canonicalOrder
	done     chan struct{}

	// loop-owned
	state      State
	saveReply  chan orderResult
	commitDone chan commitOutcome
	pending    *canonicalOrder
}

type commitOutcome struct {
	ids     []string
	current string
	resp    *models.ReorderResponse
	err     error
}

// NewReorderController launches the controller goroutine immediately.
// trackCurrent enables the distinguished current-entity flag.
func NewReorderController(name string, trackCurrent bool, committer ReorderCommitter) *ReorderController {
	c := &ReorderController{
		name:       name,
		store:      NewOrderStore(trackCurrent),
		committer:  committer,
		commands:   make(chan orderCommand),
		updates:    make(chan canonicalOrder, 1),
		done:       make(chan struct{}),
		commitDone: make(chan commitOutcome),
	}
	go c.loop()
	return c
}

// Close stops the controller goroutine.
func (c *ReorderController) Close() {
	close(c.done)
}

// UpdateCanonical pushes a fresh canonical snapshot. The channel conflates:
// if an older snapshot is still queued it is replaced, since the newest
// snapshot supersedes it.
func (c *ReorderController) UpdateCanonical(ids []string, currentID string) {
	u := canonicalOrder{ids: append([]string(nil), ids...), current: currentID}
	for {
		select {
		case c.updates <- u:
			return
		case <-c.updates:
			// Drop the superseded snapshot and retry
		case <-c.done:
			return
		}
	}
}

func (c *ReorderController) loop() {
	for {
		select {
		case <-c.done:
			return
		case u := <-c.updates:
			if c.state == StateSaving {
				// Park it; reconciliation must not race the in-flight commit
				c.pending = &u
				continue
			}
			c.applyCanonical(u)
		case out := <-c.commitDone:
			c.finishCommit(out)
		case cmd := <-c.commands:
			res := cmd.run(cmd.reply)
			if !res.deferred {
				cmd.reply <- res
			}
		}
	}
}

func (c *ReorderController) applyCanonical(u canonicalOrder) {
	stagedCurrent, staged := c.store.CurrentPending()
	c.store.SetCanonical(u.ids, u.current)
	if staged {
		if _, still := c.store.CurrentPending(); !still && stagedCurrent != "" && stagedCurrent != u.current {
			// The staged selection pointed at an entity another session
			// removed; the pending change is dropped silently.
			log.Printf("⚠️  %s: staged current id %s no longer exists, dropping pending selection", c.name, stagedCurrent)
		}
	}
	c.syncState()
}

func (c *ReorderController) syncState() {
	if c.state == StateSaving {
		return
	}
	if c.store.HasChanges() {
		c.state = StateDirty
	} else {
		c.state = StateClean
	}
}

func (c *ReorderController) finishCommit(out commitOutcome) {
	reply := c.saveReply
	c.saveReply = nil
	c.state = StateClean
	if out.err == nil {
		// The write is confirmed; echo it into the canonical snapshot so the
		// effective list does not flicker back while the live feed catches up
		c.store.Reset()
		c.store.SetCanonical(out.ids, out.current)
	}
	if c.pending != nil {
		c.applyCanonical(*c.pending)
		c.pending = nil
	}
	c.syncState()
	if reply != nil {
		reply <- orderResult{resp: out.resp, err: out.err, snap: c.snapshot()}
	}
}

func (c *ReorderController) snapshot() OrderSnapshot {
	return OrderSnapshot{
		Order:      c.store.EffectiveOrder(),
		Current:    c.store.EffectiveCurrent(),
		HasChanges: c.store.HasChanges(),
		State:      c.state.String(),
	}
}

// exec runs fn on the controller goroutine and waits for its result.
func (c *ReorderController) exec(ctx context.Context, fn func(reply chan orderResult) orderResult) orderResult {
	reply := make(chan orderResult, 1)
	cmd := orderCommand{run: fn, reply: reply}
	select {
	case c.commands <- cmd:
	case <-ctx.Done():
		return orderResult{err: ctx.Err()}
	case <-c.done:
		return orderResult{err: errors.New("draft controller closed")}
	}
	select {
	case res := <-reply:
		return res
	case <-ctx.Done():
		// The caller went away; the loop's eventual reply lands in the
		// buffered channel and is dropped without blocking anything
		return orderResult{err: ctx.Err()}
	}
}

// SetOrder stages a reorder. ids must be a permutation of the effective set.
func (c *ReorderController) SetOrder(ctx context.Context, ids []string) error {
	res := c.exec(ctx, func(_ chan orderResult) orderResult {
		if c.state == StateSaving {
			return orderResult{err: ErrCommitInFlight}
		}
		if err := c.store.SetOrder(ids); err != nil {
			return orderResult{err: err}
		}
		c.syncState()
		return orderResult{snap: c.snapshot()}
	})
	return res.err
}

// SetCurrent stages a distinguished-entity change ("" clears it).
func (c *ReorderController) SetCurrent(ctx context.Context, id string) error {
	res := c.exec(ctx, func(_ chan orderResult) orderResult {
		if c.state == StateSaving {
			return orderResult{err: ErrCommitInFlight}
		}
		if err := c.store.SetCurrent(id); err != nil {
			return orderResult{err: err}
		}
		c.syncState()
		return orderResult{snap: c.snapshot()}
	})
	return res.err
}

// Reset discards the staged reorder and flag without I/O.
func (c *ReorderController) Reset(ctx context.Context) error {
	res := c.exec(ctx, func(_ chan orderResult) orderResult {
		if c.state == StateSaving {
			return orderResult{err: ErrCommitInFlight}
		}
		c.store.Reset()
		c.syncState()
		return orderResult{snap: c.snapshot()}
	})
	return res.err
}

// Snapshot returns the effective view of the collection's draft state.
func (c *ReorderController) Snapshot(ctx context.Context) (OrderSnapshot, error) {
	res := c.exec(ctx, func(_ chan orderResult) orderResult {
		return orderResult{snap: c.snapshot()}
	})
	return res.snap, res.err
}

// Save commits the staged reorder. On success the draft clears; on failure
// it is left intact so the user's pending edit is not lost. A save with
// nothing staged is a no-op reporting zero updates. The remote write itself
// is detached from the caller's context: a caller that navigates away stops
// waiting, but the commit still resolves and settles the state machine.
func (c *ReorderController) Save(ctx context.Context) (*models.ReorderResponse, error) {
	res := c.exec(ctx, func(reply chan orderResult) orderResult {
		if c.state == StateSaving {
			return orderResult{err: ErrCommitInFlight}
		}
		if !c.store.HasChanges() {
			return orderResult{resp: &models.ReorderResponse{UpdatedCount: 0}, snap: c.snapshot()}
		}

		ids := c.store.EffectiveOrder()
		req := &models.ReorderRequest{Items: BuildReorderItems(ids)}
		current := c.store.EffectiveCurrent()
		if c.store.trackCurrent {
			req.CurrentID = &current
		}

		c.state = StateSaving
		c.saveReply = reply
		go func() {
			resp, err := c.committer.CommitReorder(context.Background(), req)
			select {
			case c.commitDone <- commitOutcome{ids: ids, current: current, resp: resp, err: err}:
			case <-c.done:
			}
		}()
		return orderResult{deferred: true}
	})
	return res.resp, res.err
}
