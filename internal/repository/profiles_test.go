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

func TestProfileRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)
	birthday := "1942-03-14"
	created, err := repo.Create(ctx, models.Profile{UserID: user.ID, Role: models.RolePatient, Name: "Edith", DateOfBirth: &birthday})
	require.NoError(t, err)

	byUser, err := repo.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUser.ID)
	assert.Equal(t, models.RolePatient, byUser.Role)
	require.NotNil(t, byUser.DateOfBirth)
	assert.Equal(t, birthday, *byUser.DateOfBirth)
	assert.Nil(t, byUser.EmergencyContact)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edith", byID.Name)
}

func TestProfileRepository_OneProfilePerUser(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)
	_, err := repo.Create(ctx, models.Profile{UserID: user.ID, Role: models.RolePatient, Name: "First"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, models.Profile{UserID: user.ID, Role: models.RoleCaregiver, Name: "Second"})
	assert.Error(t, err)
}

func TestProfileRepository_FindByRole(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	createTestProfile(t, db, models.RolePatient, "Walter")
	createTestProfile(t, db, models.RolePatient, "Alice")
	createTestProfile(t, db, models.RoleCaregiver, "Carol")

	patients, err := repo.FindByRole(ctx, models.RolePatient)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "Alice", patients[0].Name)
	assert.Equal(t, "Walter", patients[1].Name)
}

func TestProfileRepository_UpdateKeepsRole(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	repo := repository.NewProfileRepository(db)
	ctx := context.Background()

	profile := createTestProfile(t, db, models.RolePatient, "Edith")
	contact := "555-0100"
	profile.Name = "Edith M."
	profile.EmergencyContact = &contact
	profile.Role = models.RoleCaregiver
	require.NoError(t, repo.Update(ctx, profile))

	found, err := repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edith M.", found.Name)
	assert.Equal(t, models.RolePatient, found.Role)
	require.NotNil(t, found.EmergencyContact)
	assert.Equal(t, contact, *found.EmergencyContact)
}
