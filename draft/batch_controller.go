package draft

import (
	"context"
	"errors"

	"github.com/appadook/appadook-portfolio-next/models"
)

// batchCommand envelopes one caller's operation against the batch loop.
type batchCommand struct {
	run   func(reply chan batchResult) batchResult
	reply chan batchResult
}

type batchResult struct {
	snap     BatchSnapshot
	row      *TechnologyRow
	resp     *models.BatchResponse
	err      error
	deferred bool
}

// BatchSnapshot is a caller-facing view of a batch controller's state.
type BatchSnapshot struct {
	Rows       []TechnologyRow `json:"rows"`
	HasChanges bool            `json:"hasChanges"`
	State      string          `json:"state"`
}

type batchCommitOutcome struct {
	resp *models.BatchResponse
	err  error
}

// BatchController owns the batched multi-row edit state for the
// technologies collection. Same shape as ReorderController: one goroutine
// owns the store and merges canonical updates with caller commands, and a
// canonical snapshot arriving mid-commit is parked until the commit
// resolves.
type BatchController struct {
	name      string
	store     *BatchStore
	committer BatchCommitter

	commands chan batchCommand
	updates  chan []models.Technology
	done     chan struct{}

	// loop-owned
	state      State
	saveReply  chan batchResult
	commitDone chan batchCommitOutcome
	pending    []models.Technology
	hasPending bool
}

// NewBatchController launches the controller goroutine immediately.
func NewBatchController(name string, committer BatchCommitter) *BatchController {
	c := &BatchController{
		name:       name,
		store:      NewBatchStore(),
		committer:  committer,
		commands:   make(chan batchCommand),
		updates:    make(chan []models.Technology, 1),
		done:       make(chan struct{}),
		commitDone: make(chan batchCommitOutcome),
	}
	go c.loop()
	return c
}

// Close stops the controller goroutine.
func (c *BatchController) Close() {
	close(c.done)
}

// UpdateCanonical pushes a fresh canonical snapshot, conflating queued
// older ones.
func (c *BatchController) UpdateCanonical(items []models.Technology) {
	u := append([]models.Technology(nil), items...)
	for {
		select {
		case c.updates <- u:
			return
		case <-c.updates:
		case <-c.done:
			return
		}
	}
}

func (c *BatchController) loop() {
	for {
		select {
		case <-c.done:
			return
		case u := <-c.updates:
			if c.state == StateSaving {
				c.pending = u
				c.hasPending = true
				continue
			}
			c.store.SetCanonical(u)
			c.syncState()
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

func (c *BatchController) syncState() {
	if c.state == StateSaving {
		return
	}
	if c.store.HasChanges() {
		c.state = StateDirty
	} else {
		c.state = StateClean
	}
}

func (c *BatchController) finishCommit(out batchCommitOutcome) {
	reply := c.saveReply
	c.saveReply = nil
	c.state = StateClean
	if out.err == nil {
		// The write is confirmed; the live feed delivers the authoritative
		// post-commit snapshot (created rows carry server-issued ids)
		c.store.Reset()
	}
	if c.hasPending {
		c.store.SetCanonical(c.pending)
		c.pending = nil
		c.hasPending = false
	}
	c.syncState()
	if reply != nil {
		reply <- batchResult{resp: out.resp, err: out.err, snap: c.snapshot()}
	}
}

func (c *BatchController) snapshot() BatchSnapshot {
	return BatchSnapshot{
		Rows:       c.store.EffectiveRows(),
		HasChanges: c.store.HasChanges(),
		State:      c.state.String(),
	}
}

func (c *BatchController) exec(ctx context.Context, fn func(reply chan batchResult) batchResult) batchResult {
	reply := make(chan batchResult, 1)
	cmd := batchCommand{run: fn, reply: reply}
	select {
	case c.commands <- cmd:
	case <-ctx.Done():
		return batchResult{err: ctx.Err()}
	case <-c.done:
		return batchResult{err: errors.New("draft controller closed")}
	}
	select {
	case res := <-reply:
		return res
	case <-ctx.Done():
		return batchResult{err: ctx.Err()}
	}
}

// UpdateField edits one field of one draft row.
func (c *BatchController) UpdateField(ctx context.Context, id string, field Field, value string) error {
	res := c.exec(ctx, func(_ chan batchResult) batchResult {
		if c.state == StateSaving {
			return batchResult{err: ErrCommitInFlight}
		}
		if err := c.store.UpdateField(id, field, value); err != nil {
			return batchResult{err: err}
		}
		c.syncState()
		return batchResult{snap: c.snapshot()}
	})
	return res.err
}

// AddItem appends a new row and returns it, temporary id included.
func (c *BatchController) AddItem(ctx context.Context) (*TechnologyRow, error) {
	res := c.exec(ctx, func(_ chan batchResult) batchResult {
		if c.state == StateSaving {
			return batchResult{err: ErrCommitInFlight}
		}
		row := c.store.AddItem()
		c.syncState()
		return batchResult{row: &row, snap: c.snapshot()}
	})
	return res.row, res.err
}

// DeleteItem drops a new row or tombstones an existing one.
func (c *BatchController) DeleteItem(ctx context.Context, id string) error {
	res := c.exec(ctx, func(_ chan batchResult) batchResult {
		if c.state == StateSaving {
			return batchResult{err: ErrCommitInFlight}
		}
		if err := c.store.DeleteItem(id); err != nil {
			return batchResult{err: err}
		}
		c.syncState()
		return batchResult{snap: c.snapshot()}
	})
	return res.err
}

// Reset discards the entire draft batch without I/O.
func (c *BatchController) Reset(ctx context.Context) error {
	res := c.exec(ctx, func(_ chan batchResult) batchResult {
		if c.state == StateSaving {
			return batchResult{err: ErrCommitInFlight}
		}
		c.store.Reset()
		c.syncState()
		return batchResult{snap: c.snapshot()}
	})
	return res.err
}

// Snapshot returns the effective rows and change state.
func (c *BatchController) Snapshot(ctx context.Context) (BatchSnapshot, error) {
	res := c.exec(ctx, func(_ chan batchResult) batchResult {
		return batchResult{snap: c.snapshot()}
	})
	return res.snap, res.err
}

// Save validates and commits the draft batch. Validation failures abort
// before any network call with the draft intact; commit failures also leave
// the draft intact. A save with nothing staged reports zero counts.
func (c *BatchController) Save(ctx context.Context) (*models.BatchResponse, error) {
	res := c.exec(ctx, func(reply chan batchResult) batchResult {
		if c.state == StateSaving {
			return batchResult{err: ErrCommitInFlight}
		}
		if !c.store.HasChanges() {
			return batchResult{resp: &models.BatchResponse{}, snap: c.snapshot()}
		}

		req, err := BuildBatchRequest(c.store.Canonical(), c.store.Rows())
		if err != nil {
			return batchResult{err: err}
		}

		c.state = StateSaving
		c.saveReply = reply
		go func() {
			resp, err := c.committer.CommitBatch(context.Background(), req)
			select {
			case c.commitDone <- batchCommitOutcome{resp: resp, err: err}:
			case <-c.done:
			}
		}()
		return batchResult{deferred: true}
	})
	return res.resp, res.err
}
