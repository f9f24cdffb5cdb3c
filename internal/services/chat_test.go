package services

import (
	"context"
	"testing"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatService(f fixture) *ChatService {
	service := NewChatService(f.chatRepo, f.scoreRepo, f.reminderService())
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestChatRules_FirstMatchWins(t *testing.T) {
	service := newChatService(newFixture(t))

	tests := []struct {
		message string
		intent  string
	}{
		{message: "did i take my pills", intent: "medication"},
		{message: "what is my medicine schedule", intent: "medication"},
		{message: "what's on today, can we play a game", intent: "schedule"},
		{message: "let's play", intent: "games"},
		{message: "my memory is bad", intent: "games"},
		{message: "can you help me", intent: "help"},
		{message: "thank you so much", intent: "thanks"},
		{message: "hi there", intent: "greeting"},
		{message: "hello", intent: "greeting"},
		{message: "this thing is high up", intent: "default"},
		{message: "i am so tired", intent: "tired"},
		{message: "i feel lost", intent: "confused"},
		{message: "i forget things", intent: "confused"},
		{message: "feeling a bit down", intent: "sad"},
		{message: "tell me a joke", intent: "default"},
	}
	for _, test := range tests {
		assert.Equal(t, test.intent, service.match(test.message).intent, test.message)
	}
}

func TestProcessMessage_PersistsEveryTurn(t *testing.T) {
	f := newFixture(t)
	service := newChatService(f)
	ctx := context.Background()
	patient := f.caller(t, models.RolePatient, "Alice")

	reply, err := service.ProcessMessage(ctx, patient, "  Hello!  ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "greeting", reply.Intent)
	assert.Equal(t, ChatCategoryGeneral, reply.Category)
	assert.Contains(t, reply.Response, "Good afternoon, Alice!")

	service.now = func() time.Time { return fixedNow.Add(time.Minute) }
	reply, err = service.ProcessMessage(ctx, patient, "Can we play a game?", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, ChatCategoryGames, reply.Category)

	history, err := service.GetChatHistory(ctx, patient, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "  Hello!  ", history[1].Message)
	assert.Equal(t, ChatCategoryGeneral, history[1].Category)
}

func TestProcessMessage_Rejections(t *testing.T) {
	f := newFixture(t)
	service := newChatService(f)
	ctx := context.Background()

	_, err := service.ProcessMessage(ctx, f.caller(t, models.RoleCaregiver, "Carol"), "hello", time.UTC)
	assert.ErrorIs(t, err, ErrAuthorizationDenied)

	_, err = service.ProcessMessage(ctx, f.caller(t, models.RolePatient, "Alice"), "   ", time.UTC)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProcessMessage_MedicationStatus(t *testing.T) {
	f := newFixture(t)
	service := newChatService(f)
	ctx := context.Background()
	patient := f.caller(t, models.RolePatient, "Alice")

	reply, err := service.ProcessMessage(ctx, patient, "Did I take my pills?", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, ChatCategoryReminders, reply.Category)
	assert.Contains(t, reply.Response, "don't have any medications")

	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, Title: "Aspirin", ScheduledTime: time.Date(2024, 3, 13, 9, 30, 0, 0, time.UTC)})
	completedAt := fixedNow
	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, Title: "Vitamin D", ScheduledTime: time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC), IsCompleted: true, CompletedAt: &completedAt})
	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, Title: "Lunch", Type: models.ReminderMeal, ScheduledTime: time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)})

	reply, err = service.ProcessMessage(ctx, patient, "Did I take my pills?", time.UTC)
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "You have 1 medication left")
	assert.Contains(t, reply.Response, "Aspirin at 9:30 AM")
	assert.NotContains(t, reply.Response, "Lunch")
}

func TestProcessMessage_Schedule(t *testing.T) {
	f := newFixture(t)
	service := newChatService(f)
	ctx := context.Background()
	patient := f.caller(t, models.RolePatient, "Alice")

	reply, err := service.ProcessMessage(ctx, patient, "What should I do?", time.UTC)
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "free day")

	f.reminder(t, models.Reminder{PatientID: patient.Profile.ID, Title: "Doctor", Type: models.ReminderAppointment, ScheduledTime: time.Date(2024, 3, 13, 16, 0, 0, 0, time.UTC)})
	_, err = f.scoreRepo.Create(ctx, models.GameScore{PatientID: patient.Profile.ID, GameID: "g", Score: 1, MaxScore: 1, Percentage: 100, CompletedAt: fixedNow.Add(-time.Hour)})
	require.NoError(t, err)

	reply, err = service.ProcessMessage(ctx, patient, "What's my schedule?", time.UTC)
	require.NoError(t, err)
	assert.Contains(t, reply.Response, "Doctor at 4:00 PM")
	assert.Contains(t, reply.Response, "playing 1 memory game today")
}

func TestGetChatHistory_LimitAndRole(t *testing.T) {
	f := newFixture(t)
	service := newChatService(f)
	ctx := context.Background()
	patient := f.caller(t, models.RolePatient, "Alice")

	for i := 0; i < 12; i++ {
		_, err := service.ProcessMessage(ctx, patient, "hello", time.UTC)
		require.NoError(t, err)
	}

	defaulted, err := service.GetChatHistory(ctx, patient, 0)
	require.NoError(t, err)
	assert.Len(t, defaulted, 10)

	limited, err := service.GetChatHistory(ctx, patient, 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)

	asCaregiver, err := service.GetChatHistory(ctx, f.caller(t, models.RoleCaregiver, "Carol"), 5)
	require.NoError(t, err)
	assert.Empty(t, asCaregiver)
}
