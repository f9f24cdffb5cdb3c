package repository_test

import (
	"context"
	"testing"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndFindByID(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.User{OIDCSubject: "sub-123", Email: "test@example.com", Name: "Test User"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", found.Name)
	assert.Equal(t, "sub-123", found.OIDCSubject)
}

func TestUserRepository_FindByOIDCSubject(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, models.User{OIDCSubject: "unique-subject", Email: "test@example.com", Name: "Test User"})
	require.NoError(t, err)

	found, err := repo.FindByOIDCSubject(ctx, "unique-subject")
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", found.Email)

	_, err = repo.FindByOIDCSubject(ctx, "missing")
	assert.Error(t, err)
}

func TestUserRepository_UpdateIdentity(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)
	require.NoError(t, repo.UpdateIdentity(ctx, user.ID, "New Name", "new@example.com", "https://example.com/a.png"))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", found.Name)
	assert.Equal(t, "new@example.com", found.Email)
	assert.Equal(t, "https://example.com/a.png", found.AvatarURL)
}
