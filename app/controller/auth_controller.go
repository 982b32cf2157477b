package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/appadook/appadook-portfolio-next/models"
	"github.com/appadook/appadook-portfolio-next/service"
)

// AuthController handles HTTP requests for authentication
type AuthController struct {
	auth *service.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Signup handles POST /auth/signup
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session, err := c.auth.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("❌ Signup failed: %v", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// Login handles POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session, err := c.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := c.auth.Logout(r.Context(), r); err != nil {
		log.Printf("❌ Logout failed: %v", err)
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session — the bootstrap probe the dashboard
// runs on load to learn whether it is already authenticated
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, err := c.auth.GetSession(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Refresh handles POST /auth/session/refresh — the keep-alive the
// dashboard polls to extend its session
func (c *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session, err := c.auth.Refresh(r.Context(), r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
