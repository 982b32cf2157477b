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

// TechnologyController handles HTTP requests for technologies
type TechnologyController struct {
	repository repository.TechnologyRepositoryInterface
	hub        *service.WatchHub
}

// NewTechnologyController creates a new TechnologyController
func NewTechnologyController(repo repository.TechnologyRepositoryInterface, hub *service.WatchHub) *TechnologyController {
	return &TechnologyController{repository: repo, hub: hub}
}

// List handles GET /api/technologies
func (c *TechnologyController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	technologies, err := c.repository.List(r.Context())
	if err != nil {
		log.Printf("❌ List technologies: %v", err)
		writeError(w, err)
		return
	}
	if technologies == nil {
		technologies = []models.Technology{}
	}
	writeJSON(w, http.StatusOK, technologies)
}

// Create handles POST /admin/technologies
func (c *TechnologyController) Create(w http.ResponseWriter, r *http.Request) {
	var input models.TechnologyCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		http.Error(w, "name and category are required", http.StatusBadRequest)
		return
	}

	technology, err := c.repository.Insert(r.Context(), input)
	if err != nil {
		log.Printf("❌ Create technology: %v", err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionTechnologies)
	writeJSON(w, http.StatusCreated, technology)
}

// Update handles PUT /admin/technologies/{id}
func (c *TechnologyController) Update(w http.ResponseWriter, r *http.Request, id string) {
	var input models.TechnologyUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	input.ID = id
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Category) == "" {
		http.Error(w, "name and category are required", http.StatusBadRequest)
		return
	}

	technology, err := c.repository.Update(r.Context(), input)
	if err != nil {
		log.Printf("❌ Update technology %s: %v", id, err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionTechnologies)
	writeJSON(w, http.StatusOK, technology)
}

// Delete handles DELETE /admin/technologies/{id}
func (c *TechnologyController) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.repository.Delete(r.Context(), id); err != nil {
		log.Printf("❌ Delete technology %s: %v", id, err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionTechnologies)
	w.WriteHeader(http.StatusNoContent)
}

// Batch handles POST /admin/technologies/batch — the direct batch commit
// contract for clients that stage drafts themselves
func (c *TechnologyController) Batch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	for _, create := range req.Creates {
		if strings.TrimSpace(create.Name) == "" || strings.TrimSpace(create.Category) == "" {
			http.Error(w, "every created technology needs a name and category", http.StatusBadRequest)
			return
		}
	}
	for _, update := range req.Updates {
		if strings.TrimSpace(update.Name) == "" || strings.TrimSpace(update.Category) == "" {
			http.Error(w, "every updated technology needs a name and category", http.StatusBadRequest)
			return
		}
	}

	resp, err := c.repository.BatchApply(r.Context(), &req)
	if err != nil {
		log.Printf("❌ Batch technologies: %v", err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionTechnologies)
	writeJSON(w, http.StatusOK, resp)
}
