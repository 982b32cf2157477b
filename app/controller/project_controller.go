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

// ProjectController handles HTTP requests for projects
type ProjectController struct {
	repository repository.ProjectRepositoryInterface
	hub        *service.WatchHub
}

// NewProjectController creates a new ProjectController
func NewProjectController(repo repository.ProjectRepositoryInterface, hub *service.WatchHub) *ProjectController {
	return &ProjectController{repository: repo, hub: hub}
}

// List handles GET /api/projects
func (c *ProjectController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	projects, err := c.repository.List(r.Context())
	if err != nil {
		log.Printf("❌ List projects: %v", err)
		writeError(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// Create handles POST /admin/projects
func (c *ProjectController) Create(w http.ResponseWriter, r *http.Request) {
	var input models.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	project, err := c.repository.Insert(r.Context(), input)
	if err != nil {
		log.Printf("❌ Create project: %v", err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionProjects)
	writeJSON(w, http.StatusCreated, project)
}

// Update handles PUT /admin/projects/{id}
func (c *ProjectController) Update(w http.ResponseWriter, r *http.Request, id string) {
	var input models.ProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	project, err := c.repository.Update(r.Context(), id, input)
	if err != nil {
		log.Printf("❌ Update project %s: %v", id, err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionProjects)
	writeJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /admin/projects/{id}
func (c *ProjectController) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.repository.Delete(r.Context(), id); err != nil {
		log.Printf("❌ Delete project %s: %v", id, err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionProjects)
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles POST /admin/projects/reorder
func (c *ProjectController) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "items cannot be empty", http.StatusBadRequest)
		return
	}

	updated, err := c.repository.Reorder(r.Context(), req.Items)
	if err != nil {
		log.Printf("❌ Reorder projects: %v", err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionProjects)
	writeJSON(w, http.StatusOK, models.ReorderResponse{UpdatedCount: updated})
}
