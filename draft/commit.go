package draft

import (
	"errors"
	"fmt"

	"github.com/appadook/appadook-portfolio-next/models"
)

// ValidationError reports a draft row that failed required-field checks
// before any network call. RowLabel identifies the row to the user (its
// name when present, else its position).
type ValidationError struct {
	RowLabel string
	Field    Field
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %s: %s is required", e.RowLabel, e.Field)
}

// IsValidation helps callers distinguish validation failures from
// commit/transport failures.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// BuildReorderItems turns an effective order into the reorder commit
// payload. Every entity is renumbered densely from 1 by its position, not
// just the ones that moved, so the committed sequence is canonical-form
// regardless of what the previous order values were.
func BuildReorderItems(ids []string) []models.OrderUpdate {
	items := make([]models.OrderUpdate, 0, len(ids))
	for i, id := range ids {
		items = append(items, models.OrderUpdate{ID: id, Order: i + 1})
	}
	return items
}

// BuildBatchRequest diffs a draft batch against canonical and produces the
// minimal three-way write set. Validation runs first over every non-deleted
// row and aborts on the first violation; no partial request is ever built
// from an invalid draft.
//
// Partitioning rules:
//   - new and not deleted       -> creates
//   - new and deleted           -> discarded (never reached the backend)
//   - deleted and not new       -> deletes, if the id is still canonical
//   - otherwise                 -> updates, only when field-different from
//     its canonical counterpart; rows whose canonical counterpart vanished
//     are dropped (deleted by another session, nothing to update)
func BuildBatchRequest(canonical []models.Technology, rows []TechnologyRow) (*models.BatchRequest, error) {
	for i, row := range rows {
		if row.IsDeleted {
			continue
		}
		label := row.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if row.Name == "" {
			return nil, &ValidationError{RowLabel: label, Field: FieldName}
		}
		if row.Category == "" {
			return nil, &ValidationError{RowLabel: label, Field: FieldCategory}
		}
	}

	byID := canonicalByID(canonical)
	req := &models.BatchRequest{
		Creates: []models.TechnologyCreate{},
		Updates: []models.TechnologyUpdate{},
		Deletes: []string{},
	}

	for _, row := range rows {
		switch {
		case row.IsNew && row.IsDeleted:
			// Created and deleted within the same draft; nothing to send
		case row.IsNew:
			req.Creates = append(req.Creates, models.TechnologyCreate{
				Name:     row.Name,
				Category: row.Category,
				Icon:     row.Icon,
				Order:    row.Order,
			})
		case row.IsDeleted:
			if _, ok := byID[row.ID]; ok {
				req.Deletes = append(req.Deletes, row.ID)
			}
		default:
			orig, ok := byID[row.ID]
			if !ok || !rowDiffers(row, orig) {
				continue
			}
			req.Updates = append(req.Updates, models.TechnologyUpdate{
				ID:       row.ID,
				Name:     row.Name,
				Category: row.Category,
				Icon:     row.Icon,
				Order:    row.Order,
			})
		}
	}

	return req, nil
}
