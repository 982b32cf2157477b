package router

import (
	"net/http"
	"strings"

	"github.com/appadook/appadook-portfolio-next/app/controller"
	"github.com/appadook/appadook-portfolio-next/service"
)

type Controllers struct {
	Profile    *controller.ProfileController
	Experience *controller.ExperienceController
	Project    *controller.ProjectController
	Technology *controller.TechnologyController
	Draft      *controller.DraftController
	Auth       *controller.AuthController
	Subscribe  *controller.SubscribeController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// requireSession gates a handler behind an active admin session
func requireSession(auth *service.AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Websocket clients cannot set headers; accept the token as a query
		// parameter there
		if r.Header.Get("Authorization") == "" {
			if token := r.URL.Query().Get("token"); token != "" {
				r.Header.Set("Authorization", "Bearer "+token)
			}
		}
		if _, err := auth.GetSession(r.Context(), r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// splitAdminPath splits the remainder after /admin/<collection>/ into the
// first segment and the rest, e.g. "draft/order" -> ("draft", "order")
func splitAdminPath(path string) (string, string) {
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i], path[i+1:]
	}
	return path, ""
}

func SetupRoutes(controllers *Controllers, auth *service.AuthService) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Public read API
	http.HandleFunc("/api/profile", controllers.Profile.Get)
	http.HandleFunc("/api/experiences", controllers.Experience.List)
	http.HandleFunc("/api/projects", controllers.Project.List)
	http.HandleFunc("/api/technologies", controllers.Technology.List)

	// Auth routes
	http.HandleFunc("/auth/signup", controllers.Auth.Signup)
	http.HandleFunc("/auth/login", controllers.Auth.Login)
	http.HandleFunc("/auth/logout", controllers.Auth.Logout)
	http.HandleFunc("/auth/session", controllers.Auth.Session)
	http.HandleFunc("/auth/session/refresh", controllers.Auth.Refresh)

	// Live change feed for the dashboard
	http.HandleFunc("/admin/subscribe", requireSession(auth, controllers.Subscribe.Subscribe))

	// Profile admin route
	http.HandleFunc("/admin/profile", requireSession(auth, controllers.Profile.Update))

	// Experience admin routes
	http.HandleFunc("/admin/experiences", requireSession(auth, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Experience.Create(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))
	http.HandleFunc("/admin/experiences/", requireSession(auth, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/experiences/")
		head, rest := splitAdminPath(path)

		switch head {
		case "reorder":
			if r.Method == http.MethodPost {
				controllers.Experience.Reorder(w, r)
				return
			}
		case "draft":
			controllers.Draft.ExperienceDraft(w, r, rest)
			return
		default:
			// /admin/experiences/{id}
			if rest == "" && head != "" {
				if r.Method == http.MethodPut {
					controllers.Experience.Update(w, r, head)
					return
				}
				if r.Method == http.MethodDelete {
					controllers.Experience.Delete(w, r, head)
					return
				}
			}
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	// Project admin routes
	http.HandleFunc("/admin/projects", requireSession(auth, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Project.Create(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))
	http.HandleFunc("/admin/projects/", requireSession(auth, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/projects/")
		head, rest := splitAdminPath(path)

		switch head {
		case "reorder":
			if r.Method == http.MethodPost {
				controllers.Project.Reorder(w, r)
				return
			}
		case "draft":
			controllers.Draft.ProjectDraft(w, r, rest)
			return
		default:
			if rest == "" && head != "" {
				if r.Method == http.MethodPut {
					controllers.Project.Update(w, r, head)
					return
				}
				if r.Method == http.MethodDelete {
					controllers.Project.Delete(w, r, head)
					return
				}
			}
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	// Technology admin routes
	http.HandleFunc("/admin/technologies", requireSession(auth, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Technology.Create(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))
	http.HandleFunc("/admin/technologies/", requireSession(auth, func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/technologies/")
		head, rest := splitAdminPath(path)

		switch head {
		case "batch":
			if r.Method == http.MethodPost {
				controllers.Technology.Batch(w, r)
				return
			}
		case "draft":
			// rest is "", "items", "items/{id}", "save" or "reset"
			action, itemID := splitAdminPath(rest)
			controllers.Draft.TechnologyDraft(w, r, action, itemID)
			return
		default:
			if rest == "" && head != "" {
				if r.Method == http.MethodPut {
					controllers.Technology.Update(w, r, head)
					return
				}
				if r.Method == http.MethodDelete {
					controllers.Technology.Delete(w, r, head)
					return
				}
			}
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))
}
