package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, db *sql.DB) models.User {
	t.Helper()
	user, err := repository.NewUserRepository(db).Create(context.Background(), models.User{
		OIDCSubject: "sub-" + uuid.NewString(),
		Email:       "test@example.com",
		Name:        "Test User",
	})
	require.NoError(t, err)
	return user
}

func createTestProfile(t *testing.T, db *sql.DB, role models.Role, name string) models.Profile {
	t.Helper()
	user := createTestUser(t, db)
	profile, err := repository.NewProfileRepository(db).Create(context.Background(), models.Profile{
		UserID: user.ID,
		Role:   role,
		Name:   name,
	})
	require.NoError(t, err)
	return profile
}
