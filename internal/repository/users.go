package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/google/uuid"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByOIDCSubject(ctx context.Context, subject string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	UpdateIdentity(ctx context.Context, id string, name string, email string, avatarURL string) error
}

type SQLiteUserRepository struct {
	database *sql.DB
}

func NewUserRepository(database *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{database: database}
}

const userColumns = "id, oidc_subject, email, name, avatar_url, created_at, updated_at"

func (repository *SQLiteUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return repository.findOne(ctx, "finding user by id", "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

func (repository *SQLiteUserRepository) FindByOIDCSubject(ctx context.Context, subject string) (models.User, error) {
	return repository.findOne(ctx, "finding user by oidc subject", "SELECT "+userColumns+" FROM users WHERE oidc_subject = ?", subject)
}

func (repository *SQLiteUserRepository) findOne(ctx context.Context, action string, query string, arg string) (models.User, error) {
	var user models.User
	err := repository.database.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.OIDCSubject, &user.Email, &user.Name, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", action, err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := utc(time.Now())
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.OIDCSubject, user.Email, user.Name, user.AvatarURL, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) UpdateIdentity(ctx context.Context, id string, name string, email string, avatarURL string) error {
	_, err := repository.database.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, avatar_url = ?, updated_at = ? WHERE id = ?",
		name, email, avatarURL, utc(time.Now()), id,
	)
	if err != nil {
		return fmt.Errorf("updating user identity: %w", err)
	}
	return nil
}
