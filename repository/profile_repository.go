package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/appadook/appadook-portfolio-next/db"
	"github.com/appadook/appadook-portfolio-next/models"
)

// profileRowID is the fixed id of the single profile row
const profileRowID = "owner"

// ProfileRepository handles database operations for the single profile row
type ProfileRepository struct{}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

// Ensure ProfileRepository implements ProfileRepositoryInterface
var _ ProfileRepositoryInterface = (*ProfileRepository)(nil)

const profileColumns = `id, name, headline, bio, email, location, avatar_url, resume_url, github_url, linkedin_url`

func scanProfile(row interface{ Scan(...any) error }) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.Name, &p.Headline, &p.Bio, &p.Email, &p.Location,
		&p.AvatarURL, &p.ResumeURL, &p.GithubURL, &p.LinkedinURL)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get retrieves the profile
func (r *ProfileRepository) Get(ctx context.Context) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profile WHERE id = $1`
	p, err := scanProfile(db.DB.QueryRowContext(ctx, query, profileRowID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// Update upserts the profile row
func (r *ProfileRepository) Update(ctx context.Context, input models.UpdateProfileRequest) (*models.Profile, error) {
	query := `
		INSERT INTO profile (id, name, headline, bio, email, location, avatar_url, resume_url, github_url, linkedin_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			headline = EXCLUDED.headline,
			bio = EXCLUDED.bio,
			email = EXCLUDED.email,
			location = EXCLUDED.location,
			avatar_url = EXCLUDED.avatar_url,
			resume_url = EXCLUDED.resume_url,
			github_url = EXCLUDED.github_url,
			linkedin_url = EXCLUDED.linkedin_url
		RETURNING ` + profileColumns

	p, err := scanProfile(db.DB.QueryRowContext(ctx, query,
		profileRowID, input.Name, input.Headline, input.Bio, input.Email, input.Location,
		input.AvatarURL, input.ResumeURL, input.GithubURL, input.LinkedinURL))
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return p, nil
}
