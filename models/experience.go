package models

// Experience represents a work experience entry
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsCurrent   bool   `json:"isCurrent"`
}

// SortOrder implements draft.Orderable
func (e Experience) SortOrder() float64 { return float64(e.Order) }

// ExperienceInput represents the request body for creating or updating an experience
type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	Order       *int   `json:"order"`
}
