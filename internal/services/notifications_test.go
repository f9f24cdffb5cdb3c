package services

import (
	"context"
	"testing"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_ListCountAndMarkRead(t *testing.T) {
	f := newFixture(t)
	service := NewNotificationService(f.notificationRepo)
	ctx := context.Background()

	caregiver := f.caller(t, models.RoleCaregiver, "Carol")
	other := f.caller(t, models.RoleCaregiver, "Dave")

	for i, key := range []string{"a", "b", "c"} {
		_, err := f.notificationRepo.CreateIfAbsent(ctx, models.Notification{
			RecipientID: caregiver.Profile.ID,
			Type:        models.NotificationMissedReminder,
			Title:       "Missed Reminder Alert",
			Message:     key,
			Priority:    models.PriorityHigh,
			CreatedAt:   fixedNow.Add(-time.Duration(i) * time.Minute),
			DedupKey:    key,
		})
		require.NoError(t, err)
	}

	listed, err := service.ListNotifications(ctx, caregiver, 0)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "a", listed[0].Message, "newest first")

	limited, err := service.ListNotifications(ctx, caregiver, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	count, err := service.UnreadCount(ctx, caregiver)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	assert.ErrorIs(t, service.MarkNotificationRead(ctx, other, listed[0].ID), ErrAuthorizationDenied)
	assert.ErrorIs(t, service.MarkNotificationRead(ctx, caregiver, "missing"), ErrNotFound)
	require.NoError(t, service.MarkNotificationRead(ctx, caregiver, listed[0].ID))
	require.NoError(t, service.MarkNotificationRead(ctx, caregiver, listed[0].ID))

	count, err = service.UnreadCount(ctx, caregiver)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	empty, err := service.ListNotifications(ctx, other, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
