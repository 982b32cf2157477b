package repository

import (
	"context"
	"time"

	"github.com/appadook/appadook-portfolio-next/models"
)

// ProfileRepositoryInterface defines the contract for profile repository operations
type ProfileRepositoryInterface interface {
	Get(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, input models.UpdateProfileRequest) (*models.Profile, error)
}

// ExperienceRepositoryInterface defines the contract for experience repository operations
type ExperienceRepositoryInterface interface {
	List(ctx context.Context) ([]models.Experience, error)
	GetByID(ctx context.Context, id string) (*models.Experience, error)
	Insert(ctx context.Context, input models.ExperienceInput) (*models.Experience, error)
	Update(ctx context.Context, id string, input models.ExperienceInput) (*models.Experience, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, items []models.OrderUpdate, currentID *string) (int, error)
}

// ProjectRepositoryInterface defines the contract for project repository operations
type ProjectRepositoryInterface interface {
	List(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Insert(ctx context.Context, input models.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id string, input models.ProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, items []models.OrderUpdate) (int, error)
}

// TechnologyRepositoryInterface defines the contract for technology repository operations
type TechnologyRepositoryInterface interface {
	List(ctx context.Context) ([]models.Technology, error)
	Insert(ctx context.Context, input models.TechnologyCreate) (*models.Technology, error)
	Update(ctx context.Context, input models.TechnologyUpdate) (*models.Technology, error)
	Delete(ctx context.Context, id string) error
	BatchApply(ctx context.Context, req *models.BatchRequest) (*models.BatchResponse, error)
}

// AuthRepositoryInterface defines the contract for user and session persistence
type AuthRepositoryInterface interface {
	InsertUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	InsertSession(ctx context.Context, session models.Session) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	TouchSession(ctx context.Context, token string, expiresAt time.Time) error
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)
}
