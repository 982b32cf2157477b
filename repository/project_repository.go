package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/appadook/appadook-portfolio-next/db"
	"github.com/appadook/appadook-portfolio-next/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct{}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{}
}

// Ensure ProjectRepository implements ProjectRepositoryInterface
var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)

const projectColumns = `id, title, description, image_url, live_url, github_url, featured, sort_order`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.LiveURL, &p.GithubURL, &p.Featured, &p.Order)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List retrieves all projects ordered by sort_order
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY sort_order ASC, created_at ASC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			log.Printf("❌ Error scanning project: %v", err)
			continue
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// GetByID retrieves a single project
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// Insert creates a new project, seeding a missing order past the current maximum
func (r *ProjectRepository) Insert(ctx context.Context, input models.ProjectInput) (*models.Project, error) {
	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		if err := db.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(sort_order), 0) + 1 FROM projects`).Scan(&order); err != nil {
			return nil, fmt.Errorf("failed to compute next order: %w", err)
		}
	}

	id := uuid.NewString()
	query := `
		INSERT INTO projects (id, title, description, image_url, live_url, github_url, featured, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns

	p, err := scanProject(db.DB.QueryRowContext(ctx, query,
		id, input.Title, input.Description, input.ImageURL, input.LiveURL, input.GithubURL, input.Featured, order))
	if err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	log.Printf("✓ Inserted project %s (%s)", p.ID, p.Title)
	return p, nil
}

// Update modifies an existing project
func (r *ProjectRepository) Update(ctx context.Context, id string, input models.ProjectInput) (*models.Project, error) {
	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		if err := db.DB.QueryRowContext(ctx, `SELECT sort_order FROM projects WHERE id = $1`, id).Scan(&order); err != nil {
			if err == sql.ErrNoRows {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to read current order: %w", err)
		}
	}

	query := `
		UPDATE projects
		SET title = $2, description = $3, image_url = $4, live_url = $5, github_url = $6, featured = $7, sort_order = $8
		WHERE id = $1
		RETURNING ` + projectColumns

	p, err := scanProject(db.DB.QueryRowContext(ctx, query,
		id, input.Title, input.Description, input.ImageURL, input.LiveURL, input.GithubURL, input.Featured, order))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := db.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	log.Printf("✓ Deleted project %s", id)
	return nil
}

// Reorder applies a committed reorder in one transaction and returns the
// number of rows updated
func (r *ProjectRepository) Reorder(ctx context.Context, items []models.OrderUpdate) (int, error) {
	log.Printf("🔀 Reorder: %d projects", len(items))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	updated := 0
	for _, item := range items {
		result, err := tx.ExecContext(ctx, `UPDATE projects SET sort_order = $2 WHERE id = $1`, item.ID, item.Order)
		if err != nil {
			return 0, fmt.Errorf("failed to update order for %s: %w", item.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check reorder result: %w", err)
		}
		if affected == 0 {
			return 0, fmt.Errorf("project %s: %w", item.ID, ErrNotFound)
		}
		updated++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit reorder: %w", err)
	}

	log.Printf("✓ Reordered %d projects", updated)
	return updated, nil
}
