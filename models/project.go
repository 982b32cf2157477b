package models

// Project represents a portfolio project entry
type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	LiveURL     string `json:"liveUrl"`
	GithubURL   string `json:"githubUrl"`
	Featured    bool   `json:"featured"`
	Order       int    `json:"order"`
}

// SortOrder implements draft.Orderable
func (p Project) SortOrder() float64 { return float64(p.Order) }

// ProjectInput represents the request body for creating or updating a project
type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	LiveURL     string `json:"liveUrl"`
	GithubURL   string `json:"githubUrl"`
	Featured    bool   `json:"featured"`
	Order       *int   `json:"order"`
}
