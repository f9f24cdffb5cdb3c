package services

import (
	"context"
	"testing"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMoodService(f fixture, now time.Time) *MoodService {
	service := NewMoodService(f.moodRepo, f.connectionRepo)
	service.now = func() time.Time { return now }
	return service
}

func TestRecordMood(t *testing.T) {
	f := newFixture(t)
	service := newMoodService(f, fixedNow)
	ctx := context.Background()

	patient := f.caller(t, models.RolePatient, "Alice")
	caregiver := f.caller(t, models.RoleCaregiver, "Carol")

	entry, err := service.RecordMood(ctx, patient, models.MoodHappy, "  sunny walk ", true)
	require.NoError(t, err)
	assert.Equal(t, "sunny walk", entry.Notes)
	assert.True(t, entry.Timestamp.Equal(fixedNow))

	_, err = service.RecordMood(ctx, caregiver, models.MoodHappy, "", true)
	assert.ErrorIs(t, err, ErrAuthorizationDenied)

	_, err = service.RecordMood(ctx, patient, "grumpy", "", true)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMoodHistory_VisibilityAndOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	patient := f.caller(t, models.RolePatient, "Alice")
	caregiver := f.caller(t, models.RoleCaregiver, "Carol")
	outsider := f.caller(t, models.RoleCaregiver, "Dave")
	f.connect(t, caregiver, patient)

	_, err := newMoodService(f, fixedNow.Add(-2*day)).RecordMood(ctx, patient, models.MoodSad, "", true)
	require.NoError(t, err)
	_, err = newMoodService(f, fixedNow.Add(-day)).RecordMood(ctx, patient, models.MoodNeutral, "private", false)
	require.NoError(t, err)
	_, err = newMoodService(f, fixedNow.Add(-time.Hour)).RecordMood(ctx, patient, models.MoodHappy, "", true)
	require.NoError(t, err)
	_, err = newMoodService(f, fixedNow.Add(-10*day)).RecordMood(ctx, patient, models.MoodVerySad, "", true)
	require.NoError(t, err)

	service := newMoodService(f, fixedNow)

	own, err := service.GetMoodHistory(ctx, patient, 7)
	require.NoError(t, err)
	require.Len(t, own, 3)
	assert.Equal(t, []models.Mood{models.MoodHappy, models.MoodNeutral, models.MoodSad}, []models.Mood{own[0].Mood, own[1].Mood, own[2].Mood})

	shared, err := service.GetVisibleMoodHistory(ctx, caregiver, patient.Profile.ID, 7)
	require.NoError(t, err)
	require.Len(t, shared, 2)
	for _, entry := range shared {
		assert.True(t, entry.ShowToCaregiver)
	}

	wide, err := service.GetMoodHistory(ctx, patient, 30)
	require.NoError(t, err)
	assert.Len(t, wide, 4)

	none, err := service.GetVisibleMoodHistory(ctx, outsider, patient.Profile.ID, 7)
	require.NoError(t, err)
	assert.Empty(t, none)

	asCaregiver, err := service.GetMoodHistory(ctx, caregiver, 7)
	require.NoError(t, err)
	assert.Empty(t, asCaregiver)
}

func TestGetMoodHistory_WideWindowKeepsRecentRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	patient := f.caller(t, models.RolePatient, "Alice")
	service := newMoodService(f, fixedNow)
	_, err := service.RecordMood(ctx, patient, models.MoodHappy, "", true)
	require.NoError(t, err)

	entries, err := service.GetMoodHistory(ctx, patient, 200000)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWindowDays(t *testing.T) {
	assert.Equal(t, defaultWindowDays, windowDays(0))
	assert.Equal(t, defaultWindowDays, windowDays(-3))
	assert.Equal(t, 30, windowDays(30))
	assert.Equal(t, maxWindowDays, windowDays(1<<47))
	assert.Equal(t, fixedNow.AddDate(0, 0, -maxWindowDays), windowStart(fixedNow, 1<<47))
}
