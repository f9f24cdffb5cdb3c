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

func TestAPITokenRepository_CreateAndFindByHash(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	tokenRepo := repository.NewAPITokenRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)
	tokenHash := repository.HashToken("test-token-12345")

	created, err := tokenRepo.Create(ctx, models.APIToken{Name: "Test Token", TokenHash: tokenHash, CreatedByUserID: user.ID})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := tokenRepo.FindByTokenHash(ctx, tokenHash)
	require.NoError(t, err)
	assert.Equal(t, "Test Token", found.Name)
	assert.Nil(t, found.ExpiresAt)
}

func TestAPITokenRepository_FindByUserID(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	tokenRepo := repository.NewAPITokenRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	for _, token := range []models.APIToken{
		{Name: "Token 1", TokenHash: "hash1", CreatedByUserID: owner.ID},
		{Name: "Token 2", TokenHash: "hash2", CreatedByUserID: owner.ID},
		{Name: "Token 3", TokenHash: "hash3", CreatedByUserID: other.ID},
	} {
		_, err := tokenRepo.Create(ctx, token)
		require.NoError(t, err)
	}

	tokens, err := tokenRepo.FindByUserID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
}

func TestAPITokenRepository_DeleteForUser(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	tokenRepo := repository.NewAPITokenRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db)
	other := createTestUser(t, db)

	created, err := tokenRepo.Create(ctx, models.APIToken{Name: "Token", TokenHash: "hash", CreatedByUserID: owner.ID})
	require.NoError(t, err)

	deleted, err := tokenRepo.DeleteForUser(ctx, created.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "another user must not delete the token")

	deleted, err = tokenRepo.DeleteForUser(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = tokenRepo.FindByTokenHash(ctx, "hash")
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, repository.HashToken("abc"), repository.HashToken("abc"))
	assert.NotEqual(t, repository.HashToken("abc"), repository.HashToken("abd"))
	assert.Len(t, repository.HashToken("abc"), 64)
}
