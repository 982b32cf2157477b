package draft

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/appadook/appadook-portfolio-next/models"
)

// Field names a technology row field editable through the batch draft.
type Field string

const (
	FieldName     Field = "name"
	FieldCategory Field = "category"
	FieldIcon     Field = "icon"
)

// TechnologyRow is one editable row in a batch draft. IsNew marks a row
// created locally that has no canonical counterpart yet; IsDeleted marks a
// tombstone kept in the draft until commit purges it.
type TechnologyRow struct {
	models.Technology
	IsNew     bool `json:"isNew"`
	IsDeleted bool `json:"isDeleted"`
}

// BatchStore holds the batched multi-row edits for the technologies
// collection. The draft is materialized lazily: until the first edit there
// are no rows and the canonical list is rendered directly. Once materialized
// the rows persist across canonical refreshes; only id presence is
// reconciled, at commit time, through the batch diff.
type BatchStore struct {
	canonical []models.Technology
	rows      []TechnologyRow
}

// NewBatchStore creates an empty store.
func NewBatchStore() *BatchStore {
	return &BatchStore{}
}

// SetCanonical replaces the canonical snapshot. A materialized draft is
// left untouched so a concurrent refresh never clobbers unsaved edits.
func (s *BatchStore) SetCanonical(items []models.Technology) {
	s.canonical = append([]models.Technology(nil), items...)
}

// Materialize copies canonical into the draft on first touch. Idempotent.
func (s *BatchStore) Materialize() {
	if s.rows != nil {
		return
	}
	s.rows = make([]TechnologyRow, 0, len(s.canonical))
	for _, t := range s.canonical {
		s.rows = append(s.rows, TechnologyRow{Technology: t})
	}
}

// UpdateField edits one field of one draft row, materializing first if
// needed.
func (s *BatchStore) UpdateField(id string, field Field, value string) error {
	s.Materialize()
	for i := range s.rows {
		if s.rows[i].ID != id {
			continue
		}
		switch field {
		case FieldName:
			s.rows[i].Name = value
		case FieldCategory:
			s.rows[i].Category = value
		case FieldIcon:
			s.rows[i].Icon = value
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		return nil
	}
	return fmt.Errorf("no draft row with id %q", id)
}

// AddItem appends a new empty row with a locally generated temporary id,
// seeded at the end of the current order.
func (s *BatchStore) AddItem() TechnologyRow {
	s.Materialize()
	row := TechnologyRow{
		Technology: models.Technology{
			ID:    "temp-" + uuid.NewString(),
			Order: NextOrder(s.liveRows()),
		},
		IsNew: true,
	}
	s.rows = append(s.rows, row)
	return row
}

// DeleteItem removes a row: new rows are dropped outright, existing rows
// become tombstones so the commit diff can emit a delete for them.
func (s *BatchStore) DeleteItem(id string) error {
	s.Materialize()
	for i := range s.rows {
		if s.rows[i].ID != id {
			continue
		}
		if s.rows[i].IsNew {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
		} else {
			s.rows[i].IsDeleted = true
		}
		return nil
	}
	return fmt.Errorf("no draft row with id %q", id)
}

// Reset discards the entire draft batch.
func (s *BatchStore) Reset() {
	s.rows = nil
}

// Materialized reports whether a draft batch exists.
func (s *BatchStore) Materialized() bool {
	return s.rows != nil
}

// HasChanges reports whether any row is new, tombstoned, or field-different
// from its canonical counterpart.
func (s *BatchStore) HasChanges() bool {
	if s.rows == nil {
		return false
	}
	byID := canonicalByID(s.canonical)
	for _, row := range s.rows {
		if row.IsNew || row.IsDeleted {
			return true
		}
		if orig, ok := byID[row.ID]; ok && rowDiffers(row, orig) {
			return true
		}
	}
	return false
}

// EffectiveRows returns the rows the dashboard should render: the draft
// minus tombstones when materialized, else the canonical list.
func (s *BatchStore) EffectiveRows() []TechnologyRow {
	if s.rows == nil {
		out := make([]TechnologyRow, 0, len(s.canonical))
		for _, t := range s.canonical {
			out = append(out, TechnologyRow{Technology: t})
		}
		return out
	}
	return s.liveRows()
}

// Rows returns the full draft including tombstones, for the commit diff.
func (s *BatchStore) Rows() []TechnologyRow {
	return append([]TechnologyRow(nil), s.rows...)
}

// Canonical returns the last canonical snapshot.
func (s *BatchStore) Canonical() []models.Technology {
	return append([]models.Technology(nil), s.canonical...)
}

func (s *BatchStore) liveRows() []TechnologyRow {
	out := make([]TechnologyRow, 0, len(s.rows))
	for _, row := range s.rows {
		if !row.IsDeleted {
			out = append(out, row)
		}
	}
	return out
}

func canonicalByID(items []models.Technology) map[string]models.Technology {
	byID := make(map[string]models.Technology, len(items))
	for _, t := range items {
		byID[t.ID] = t
	}
	return byID
}

func rowDiffers(row TechnologyRow, orig models.Technology) bool {
	return row.Name != orig.Name ||
		row.Category != orig.Category ||
		row.Icon != orig.Icon ||
		row.Order != orig.Order
}
