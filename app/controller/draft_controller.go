package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/appadook/appadook-portfolio-next/draft"
	"github.com/appadook/appadook-portfolio-next/service"
)

// DraftController exposes the server-held draft state machines over HTTP.
// Each collection gets a snapshot endpoint, staging endpoints, and the
// save/reset pair; all staging is local until save commits it.
type DraftController struct {
	drafts *service.DraftService
}

// NewDraftController creates a new DraftController
func NewDraftController(drafts *service.DraftService) *DraftController {
	return &DraftController{drafts: drafts}
}

// setOrderRequest is the body for staging a reorder
type setOrderRequest struct {
	IDs []string `json:"ids"`
}

// setCurrentRequest is the body for staging a current-entity change;
// an empty id clears the flag
type setCurrentRequest struct {
	ID string `json:"id"`
}

// updateFieldRequest is the body for editing one draft row field
type updateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// reorderDraft dispatches the shared reorder-draft endpoints for one
// collection: GET snapshot, POST order/current/save/reset.
func (c *DraftController) reorderDraft(ctrl *draft.ReorderController, action string, w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch {
	case action == "" && r.Method == http.MethodGet:
		snap, err := ctrl.Snapshot(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case action == "order" && r.Method == http.MethodPost:
		var req setOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if err := ctrl.SetOrder(ctx, req.IDs); err != nil {
			log.Printf("❌ Draft order rejected: %v", err)
			writeError(w, err)
			return
		}
		snap, err := ctrl.Snapshot(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case action == "current" && r.Method == http.MethodPost:
		var req setCurrentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if err := ctrl.SetCurrent(ctx, req.ID); err != nil {
			writeError(w, err)
			return
		}
		snap, err := ctrl.Snapshot(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case action == "save" && r.Method == http.MethodPost:
		resp, err := ctrl.Save(ctx)
		if err != nil {
			log.Printf("❌ Draft save failed: %v", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case action == "reset" && r.Method == http.MethodPost:
		if err := ctrl.Reset(ctx); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// ExperienceDraft handles /admin/experiences/draft[/action]
func (c *DraftController) ExperienceDraft(w http.ResponseWriter, r *http.Request, action string) {
	c.reorderDraft(c.drafts.Experiences(), action, w, r)
}

// ProjectDraft handles /admin/projects/draft[/action]
func (c *DraftController) ProjectDraft(w http.ResponseWriter, r *http.Request, action string) {
	c.reorderDraft(c.drafts.Projects(), action, w, r)
}

// TechnologyDraft handles /admin/technologies/draft[/action] — the batch
// flavor: row add/edit/delete plus save and reset
func (c *DraftController) TechnologyDraft(w http.ResponseWriter, r *http.Request, action string, itemID string) {
	ctrl := c.drafts.Technologies()
	ctx := r.Context()

	switch {
	case action == "" && r.Method == http.MethodGet:
		snap, err := ctrl.Snapshot(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case action == "items" && itemID == "" && r.Method == http.MethodPost:
		row, err := ctrl.AddItem(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, row)
	case action == "items" && itemID != "" && r.Method == http.MethodPatch:
		var req updateFieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		if err := ctrl.UpdateField(ctx, itemID, draft.Field(req.Field), req.Value); err != nil {
			writeError(w, err)
			return
		}
		snap, err := ctrl.Snapshot(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	case action == "items" && itemID != "" && r.Method == http.MethodDelete:
		if err := ctrl.DeleteItem(ctx, itemID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case action == "save" && r.Method == http.MethodPost:
		resp, err := ctrl.Save(ctx)
		if err != nil {
			log.Printf("❌ Batch draft save failed: %v", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	case action == "reset" && r.Method == http.MethodPost:
		if err := ctrl.Reset(ctx); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}
