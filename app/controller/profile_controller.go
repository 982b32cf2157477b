package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/appadook/appadook-portfolio-next/models"
	"github.com/appadook/appadook-portfolio-next/repository"
	"github.com/appadook/appadook-portfolio-next/service"
)

// ProfileController handles HTTP requests for the profile
type ProfileController struct {
	repository repository.ProfileRepositoryInterface
	hub        *service.WatchHub
}

// NewProfileController creates a new ProfileController
func NewProfileController(repo repository.ProfileRepositoryInterface, hub *service.WatchHub) *ProfileController {
	return &ProfileController{repository: repo, hub: hub}
}

// Get handles GET /api/profile. A portfolio without a saved profile yet
// serves an empty one rather than a 404.
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	profile, err := c.repository.Get(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusOK, models.Profile{})
			return
		}
		log.Printf("❌ Get profile: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /admin/profile
func (c *ProfileController) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var input models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	profile, err := c.repository.Update(r.Context(), input)
	if err != nil {
		log.Printf("❌ Update profile: %v", err)
		writeError(w, err)
		return
	}
	c.hub.Publish(service.CollectionProfile)
	writeJSON(w, http.StatusOK, profile)
}
