package models

// OrderUpdate represents a single {id, order} pair in a reorder commit
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// ReorderRequest represents the request body for a reorder commit.
// CurrentID is only meaningful for collections with a distinguished
// "current" entry (experiences); nil means leave the flag untouched
// for collections without one, and a pointer to "" clears it.
type ReorderRequest struct {
	Items     []OrderUpdate `json:"items"`
	CurrentID *string       `json:"currentId,omitempty"`
}

// ReorderResponse represents the response after a reorder commit
type ReorderResponse struct {
	UpdatedCount int `json:"updatedCount"`
}

// BatchRequest represents the request body for a technology batch commit
type BatchRequest struct {
	Creates []TechnologyCreate `json:"creates"`
	Updates []TechnologyUpdate `json:"updates"`
	Deletes []string           `json:"deletes"`
}

// BatchResponse represents the response after a technology batch commit
type BatchResponse struct {
	CreatedCount int `json:"createdCount"`
	UpdatedCount int `json:"updatedCount"`
	DeletedCount int `json:"deletedCount"`
}
