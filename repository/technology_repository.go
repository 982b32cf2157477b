package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/appadook/appadook-portfolio-next/db"
	"github.com/appadook/appadook-portfolio-next/models"
	"github.com/appadook/appadook-portfolio-next/utils"
)

// TechnologyRepository handles database operations for technologies
type TechnologyRepository struct{}

// NewTechnologyRepository creates a new TechnologyRepository
func NewTechnologyRepository() *TechnologyRepository {
	return &TechnologyRepository{}
}

// Ensure TechnologyRepository implements TechnologyRepositoryInterface
var _ TechnologyRepositoryInterface = (*TechnologyRepository)(nil)

const technologyColumns = `id, name, category, icon, sort_order`

func scanTechnology(row interface{ Scan(...any) error }) (*models.Technology, error) {
	var t models.Technology
	err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Icon, &t.Order)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List retrieves all technologies ordered by sort_order
func (r *TechnologyRepository) List(ctx context.Context) ([]models.Technology, error) {
	query := `SELECT ` + technologyColumns + ` FROM technologies ORDER BY sort_order ASC, created_at ASC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list technologies: %w", err)
	}
	defer rows.Close()

	var technologies []models.Technology
	for rows.Next() {
		t, err := scanTechnology(rows)
		if err != nil {
			log.Printf("❌ Error scanning technology: %v", err)
			continue
		}
		technologies = append(technologies, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate technologies: %w", err)
	}
	return technologies, nil
}

// Insert creates a new technology
func (r *TechnologyRepository) Insert(ctx context.Context, input models.TechnologyCreate) (*models.Technology, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO technologies (id, name, category, icon, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + technologyColumns

	t, err := scanTechnology(db.DB.QueryRowContext(ctx, query,
		id, input.Name, utils.NormalizeCategory(input.Category), input.Icon, input.Order))
	if err != nil {
		return nil, fmt.Errorf("failed to insert technology: %w", err)
	}
	return t, nil
}

// Update modifies an existing technology
func (r *TechnologyRepository) Update(ctx context.Context, input models.TechnologyUpdate) (*models.Technology, error) {
	query := `
		UPDATE technologies
		SET name = $2, category = $3, icon = $4, sort_order = $5
		WHERE id = $1
		RETURNING ` + technologyColumns

	t, err := scanTechnology(db.DB.QueryRowContext(ctx, query,
		input.ID, input.Name, utils.NormalizeCategory(input.Category), input.Icon, input.Order))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update technology: %w", err)
	}
	return t, nil
}

// Delete removes a technology
func (r *TechnologyRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM technologies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete technology: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// BatchApply applies a batch commit in one transaction: creates first, then
// updates, then deletes. Any failure rolls the whole batch back so the
// caller's draft can be retried unchanged.
func (r *TechnologyRepository) BatchApply(ctx context.Context, req *models.BatchRequest) (*models.BatchResponse, error) {
	log.Printf("📦 BatchApply: %d creates, %d updates, %d deletes", len(req.Creates), len(req.Updates), len(req.Deletes))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	resp := &models.BatchResponse{}

	for _, create := range req.Creates {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO technologies (id, name, category, icon, sort_order) VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), create.Name, utils.NormalizeCategory(create.Category), create.Icon, create.Order)
		if err != nil {
			return nil, fmt.Errorf("failed to create technology %q: %w", create.Name, err)
		}
		resp.CreatedCount++
	}

	for _, update := range req.Updates {
		result, err := tx.ExecContext(ctx,
			`UPDATE technologies SET name = $2, category = $3, icon = $4, sort_order = $5 WHERE id = $1`,
			update.ID, update.Name, utils.NormalizeCategory(update.Category), update.Icon, update.Order)
		if err != nil {
			return nil, fmt.Errorf("failed to update technology %s: %w", update.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check update result: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("technology %s: %w", update.ID, ErrNotFound)
		}
		resp.UpdatedCount++
	}

	for _, id := range req.Deletes {
		result, err := tx.ExecContext(ctx, `DELETE FROM technologies WHERE id = $1`, id)
		if err != nil {
			return nil, fmt.Errorf("failed to delete technology %s: %w", id, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to check delete result: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("technology %s: %w", id, ErrNotFound)
		}
		resp.DeletedCount++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}

	log.Printf("✓ BatchApply: created=%d updated=%d deleted=%d", resp.CreatedCount, resp.UpdatedCount, resp.DeletedCount)
	return resp, nil
}
