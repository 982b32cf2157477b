package models

// Technology represents a technology/skill entry
type Technology struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Order    int    `json:"order"`
}

// SortOrder implements draft.Orderable
func (t Technology) SortOrder() float64 { return float64(t.Order) }

// TechnologyCreate represents a new technology row in a batch commit
type TechnologyCreate struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Order    int    `json:"order"`
}

// TechnologyUpdate represents a modified technology row in a batch commit
type TechnologyUpdate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Order    int    `json:"order"`
}
