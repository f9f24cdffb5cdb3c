package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingNotifications rejects writes for one recipient and passes the rest through.
type failingNotifications struct {
	repository.NotificationRepository
	failFor string
}

func (repo failingNotifications) CreateIfAbsent(ctx context.Context, notification models.Notification) (bool, error) {
	if notification.RecipientID == repo.failFor {
		return false, errors.New("disk full")
	}
	return repo.NotificationRepository.CreateIfAbsent(ctx, notification)
}

func TestCheckMissedReminders_WindowAndDedup(t *testing.T) {
	f := newFixture(t)
	service := f.monitorService()
	ctx := context.Background()

	caregiver := f.caller(t, models.RoleCaregiver, "Carol")
	patient := f.caller(t, models.RolePatient, "Alice")
	caregiverID := caregiver.Profile.ID

	missed := f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, CaregiverID: &caregiverID, Title: "Aspirin", ScheduledTime: fixedNow.Add(-30 * time.Minute)})
	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, CaregiverID: &caregiverID, ScheduledTime: fixedNow.Add(-2 * time.Hour)})
	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, CaregiverID: &caregiverID, ScheduledTime: fixedNow.Add(10 * time.Minute)})
	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, Type: models.ReminderPersonal, IsPersonal: true, ScheduledTime: fixedNow.Add(-20 * time.Minute)})
	completedAt := fixedNow
	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, CaregiverID: &caregiverID, ScheduledTime: fixedNow.Add(-15 * time.Minute), IsCompleted: true, CompletedAt: &completedAt})

	result, err := service.CheckMissedReminders(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, RuleResult{Candidates: 1, Created: 1}, result)

	again, err := service.CheckMissedReminders(ctx, fixedNow.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, RuleResult{Candidates: 1, Created: 0}, again, "re-running over the same reminder writes nothing")

	notifications, err := f.notificationRepo.FindByRecipient(ctx, caregiverID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationMissedReminder, notifications[0].Type)
	assert.Equal(t, models.PriorityHigh, notifications[0].Priority)
	assert.Equal(t, "Alice missed: Aspirin", notifications[0].Message)
	require.NotNil(t, notifications[0].RelatedID)
	assert.Equal(t, missed.ID, *notifications[0].RelatedID)
}

func TestCheckMissedReminders_IsolatesFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	broken := f.caller(t, models.RoleCaregiver, "Broken")
	healthy := f.caller(t, models.RoleCaregiver, "Healthy")
	patient := f.caller(t, models.RolePatient, "Alice")

	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, CaregiverID: &broken.Profile.ID, ScheduledTime: fixedNow.Add(-40 * time.Minute)})
	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, CaregiverID: &healthy.Profile.ID, ScheduledTime: fixedNow.Add(-20 * time.Minute)})

	service := NewMonitorService(f.reminderRepo, f.profileRepo, f.scoreRepo,
		failingNotifications{NotificationRepository: f.notificationRepo, failFor: broken.Profile.ID},
		f.connectionService())

	result, err := service.CheckMissedReminders(ctx, fixedNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, RuleResult{Candidates: 2, Created: 1, Failed: 1}, result)

	count, err := f.notificationRepo.CountUnread(ctx, healthy.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCheckGameActivity(t *testing.T) {
	f := newFixture(t)
	service := f.monitorService()
	ctx := context.Background()

	caregiver := f.caller(t, models.RoleCaregiver, "Carol")
	otherCaregiver := f.caller(t, models.RoleCaregiver, "Dave")
	idle := f.caller(t, models.RolePatient, "Idle")
	active := f.caller(t, models.RolePatient, "Active")
	f.caller(t, models.RolePatient, "Unconnected")
	f.connect(t, caregiver, idle)
	f.connect(t, otherCaregiver, idle)
	f.connect(t, caregiver, active)

	_, err := f.scoreRepo.Create(ctx, models.GameScore{PatientID: active.Profile.ID, GameID: "g", Score: 1, MaxScore: 1, Percentage: 100, CompletedAt: fixedNow.Add(-day)})
	require.NoError(t, err)
	_, err = f.scoreRepo.Create(ctx, models.GameScore{PatientID: idle.Profile.ID, GameID: "g", Score: 1, MaxScore: 1, Percentage: 100, CompletedAt: fixedNow.Add(-4 * day)})
	require.NoError(t, err)

	result, err := service.CheckGameActivity(ctx, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Candidates, "idle and unconnected patients")
	assert.Equal(t, 2, result.Created, "one per caregiver of the idle patient")

	sameWindow, err := service.CheckGameActivity(ctx, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, sameWindow.Created)

	nextWindow, err := service.CheckGameActivity(ctx, fixedNow.Add(GameInactivityBucket))
	require.NoError(t, err)
	assert.Equal(t, 2, nextWindow.Created)

	notifications, err := f.notificationRepo.FindByRecipient(ctx, caregiver.Profile.ID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, models.PriorityMedium, notifications[0].Priority)
	assert.Equal(t, "Idle hasn't played memory games in 3 days", notifications[0].Message)
}
