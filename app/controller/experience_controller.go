package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/appadook/appadook-portfolio-next/models"
	"github.com/appadook/appadook-portfolio-next/repository"
	"github.com/appadook/appadook-portfolio-next/service"
)

// ExperienceController handles HTTP requests for experiences
type ExperienceController struct {
	repository repository.ExperienceRepositoryInterface
	hub        *service.WatchHub
}

// NewExperienceController creates a new ExperienceController
func NewExperienceController(repo repository.ExperienceRepositoryInterface, hub *service.WatchHub) *ExperienceController {
	return &ExperienceController{repository: repo, hub: hub}
}

// List handles GET /api/experiences
func (c *ExperienceController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	experiences, err := c.repository.List(r.Context())
	if err != nil {
		log.Printf("❌ List experiences: %v", err)
		writeError(w, err)
		return
	}
	if experiences == nil {
		experiences = []models.Experience{}
	}
	writeJSON(w, http.StatusOK, experiences)
}

// Create handles POST /admin/experiences
func (c *ExperienceController) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Company) == "" {
		http.Error(w, "title and company are required", http.StatusBadRequest)
		return
	}

	experience, err := c.repository.Insert(r.Context(), input)
	if err != nil {
		log.Printf("❌ Create experience: %v", err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionExperiences)
	writeJSON(w, http.StatusCreated, experience)
}

// Update handles PUT /admin/experiences/{id}
func (c *ExperienceController) Update(w http.ResponseWriter, r *http.Request, id string) {
	var input models.ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Company) == "" {
		http.Error(w, "title and company are required", http.StatusBadRequest)
		return
	}

	experience, err := c.repository.Update(r.Context(), id, input)
	if err != nil {
		log.Printf("❌ Update experience %s: %v", id, err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionExperiences)
	writeJSON(w, http.StatusOK, experience)
}

// Delete handles DELETE /admin/experiences/{id}
func (c *ExperienceController) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.repository.Delete(r.Context(), id); err != nil {
		log.Printf("❌ Delete experience %s: %v", id, err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionExperiences)
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles POST /admin/experiences/reorder — the direct commit
// contract for clients that stage drafts themselves
func (c *ExperienceController) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "items cannot be empty", http.StatusBadRequest)
		return
	}

	updated, err := c.repository.Reorder(r.Context(), req.Items, req.CurrentID)
	if err != nil {
		log.Printf("❌ Reorder experiences: %v", err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionExperiences)
	writeJSON(w, http.StatusOK, models.ReorderResponse{UpdatedCount: updated})
}
