package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/appadook/appadook-portfolio-next/draft"
	"github.com/appadook/appadook-portfolio-next/repository"
	"github.com/appadook/appadook-portfolio-next/service"
)

// writeJSON encodes payload as the response body
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// errorResponse is the uniform error body
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service/repository errors onto HTTP statuses. Commit and
// validation failures surface their message so the dashboard can show it;
// everything else gets the error's text with a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case draft.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, draft.ErrCommitInFlight):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrNoSession):
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
