package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/appadook/appadook-portfolio-next/db"
	"github.com/appadook/appadook-portfolio-next/models"
)

// ErrNotFound is returned when a requested entity does not exist so HTTP
// controllers can respond with 404.
var ErrNotFound = errors.New("entity not found")

// ExperienceRepository handles database operations for experiences
type ExperienceRepository struct{}

// NewExperienceRepository creates a new ExperienceRepository
func NewExperienceRepository() *ExperienceRepository {
	return &ExperienceRepository{}
}

// Ensure ExperienceRepository implements ExperienceRepositoryInterface
var _ ExperienceRepositoryInterface = (*ExperienceRepository)(nil)

const experienceColumns = `id, title, company, location, start_date, end_date, description, sort_order, is_current`

func scanExperience(row interface{ Scan(...any) error }) (*models.Experience, error) {
	var e models.Experience
	err := row.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.StartDate, &e.EndDate, &e.Description, &e.Order, &e.IsCurrent)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List retrieves all experiences ordered by sort_order
func (r *ExperienceRepository) List(ctx context.Context) ([]models.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences ORDER BY sort_order ASC, created_at ASC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiences: %w", err)
	}
	defer rows.Close()

	var experiences []models.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			log.Printf("❌ Error scanning experience: %v", err)
			continue
		}
		experiences = append(experiences, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate experiences: %w", err)
	}
	return experiences, nil
}

// GetByID retrieves a single experience
func (r *ExperienceRepository) GetByID(ctx context.Context, id string) (*models.Experience, error) {
	query := `SELECT ` + experienceColumns + ` FROM experiences WHERE id = $1`
	e, err := scanExperience(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}
	return e, nil
}

// Insert creates a new experience. A missing order is seeded past the
// current maximum so new entries land at the end of the sequence.
func (r *ExperienceRepository) Insert(ctx context.Context, input models.ExperienceInput) (*models.Experience, error) {
	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		if err := db.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), 0) + 1 FROM experiences`).Scan(&order); err != nil {
			return nil, fmt.Errorf("failed to compute next order: %w", err)
		}
	}

	id := uuid.NewString()
	query := `
		INSERT INTO experiences (id, title, company, location, start_date, end_date, description, sort_order, is_current)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, false)
		RETURNING ` + experienceColumns

	e, err := scanExperience(db.DB.QueryRowContext(ctx, query,
		id, input.Title, input.Company, input.Location, input.StartDate, input.EndDate, input.Description, order))
	if err != nil {
		return nil, fmt.Errorf("failed to insert experience: %w", err)
	}
	log.Printf("✓ Inserted experience %s (%s)", e.ID, e.Title)
	return e, nil
}

// Update modifies an existing experience
func (r *ExperienceRepository) Update(ctx context.Context, id string, input models.ExperienceInput) (*models.Experience, error) {
	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		if err := db.DB.QueryRowContext(ctx, `SELECT sort_order FROM experiences WHERE id = $1`, id).Scan(&order); err != nil {
			if err == sql.ErrNoRows {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to read current order: %w", err)
		}
	}

	query := `
		UPDATE experiences
		SET title = $2, company = $3, location = $4, start_date = $5, end_date = $6, description = $7, sort_order = $8
		WHERE id = $1
		RETURNING ` + experienceColumns

	e, err := scanExperience(db.DB.QueryRowContext(ctx, query,
		id, input.Title, input.Company, input.Location, input.StartDate, input.EndDate, input.Description, order))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update experience: %w", err)
	}
	return e, nil
}

// Delete removes an experience
func (r *ExperienceRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Printf("✓ Deleted experience %s", id)
	return nil
}

// Reorder applies a committed reorder in one transaction: every listed row
// gets its new order value, and when currentID is non-nil the is_current
// flag is cleared everywhere and set on the one resolved entity (empty id
// means no entity is current). Returns the number of rows whose order was
// updated.
func (r *ExperienceRepository) Reorder(ctx context.Context, items []models.OrderUpdate, currentID *string) (int, error) {
	log.Printf("🔀 Reorder: %d experiences, currentID=%v", len(items), currentID)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	updated := 0
	for _, item := range items {
		result, err := tx.ExecContext(ctx, `UPDATE experiences SET sort_order = $2 WHERE id = $1`, item.ID, item.Order)
		if err != nil {
			return 0, fmt.Errorf("failed to update order for %s: %w", item.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check reorder result: %w", err)
		}
		if affected == 0 {
			return 0, fmt.Errorf("experience %s: %w", item.ID, ErrNotFound)
		}
		updated++
	}

	if currentID != nil {
		if _, err := tx.ExecContext(ctx, `UPDATE experiences SET is_current = false WHERE is_current`); err != nil {
			return 0, fmt.Errorf("failed to clear current flag: %w", err)
		}
		if *currentID != "" {
			result, err := tx.ExecContext(ctx, `UPDATE experiences SET is_current = true WHERE id = $1`, *currentID)
			if err != nil {
				return 0, fmt.Errorf("failed to set current flag: %w", err)
			}
			affected, err := result.RowsAffected()
			if err != nil {
				return 0, fmt.Errorf("failed to check current flag result: %w", err)
			}
			if affected == 0 {
				return 0, fmt.Errorf("current experience %s: %w", *currentID, ErrNotFound)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reorder: %w", err)
	}

	log.Printf("✓ Reordered %d experiences", updated)
	return updated, nil
}
