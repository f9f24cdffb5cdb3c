package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/google/uuid"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (models.Profile, error)
	FindByUserID(ctx context.Context, userID string) (models.Profile, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.Profile, error)
	Create(ctx context.Context, profile models.Profile) (models.Profile, error)
	Update(ctx context.Context, profile models.Profile) error
}

type SQLiteProfileRepository struct {
	database *sql.DB
}

func NewProfileRepository(database *sql.DB) *SQLiteProfileRepository {
	return &SQLiteProfileRepository{database: database}
}

const profileColumns = "id, user_id, role, name, date_of_birth, emergency_contact, created_at"

func (repository *SQLiteProfileRepository) FindByID(ctx context.Context, id string) (models.Profile, error) {
	profile, err := scanProfile(repository.database.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?", id,
	))
	if err != nil {
		return models.Profile{}, fmt.Errorf("finding profile by id: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteProfileRepository) FindByUserID(ctx context.Context, userID string) (models.Profile, error) {
	profile, err := scanProfile(repository.database.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE user_id = ?", userID,
	))
	if err != nil {
		return models.Profile{}, fmt.Errorf("finding profile by user: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteProfileRepository) FindByRole(ctx context.Context, role models.Role) ([]models.Profile, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE role = ? ORDER BY name ASC", role,
	)
	if err != nil {
		return nil, fmt.Errorf("finding profiles by role: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (repository *SQLiteProfileRepository) Create(ctx context.Context, profile models.Profile) (models.Profile, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.CreatedAt = utc(time.Now())

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO profiles ("+profileColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		profile.ID, profile.UserID, profile.Role, profile.Name, profile.DateOfBirth, profile.EmergencyContact, profile.CreatedAt,
	)
	if err != nil {
		return models.Profile{}, fmt.Errorf("creating profile: %w", err)
	}
	return profile, nil
}

// Update rewrites the editable fields. Role and owner are fixed at creation.
func (repository *SQLiteProfileRepository) Update(ctx context.Context, profile models.Profile) error {
	_, err := repository.database.ExecContext(ctx,
		"UPDATE profiles SET name = ?, date_of_birth = ?, emergency_contact = ? WHERE id = ?",
		profile.Name, profile.DateOfBirth, profile.EmergencyContact, profile.ID,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID, &profile.UserID, &profile.Role, &profile.Name,
		&profile.DateOfBirth, &profile.EmergencyContact, &profile.CreatedAt,
	)
	return profile, err
}
