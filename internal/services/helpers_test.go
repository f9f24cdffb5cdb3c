package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Wednesday afternoon in UTC.
var fixedNow = time.Date(2024, 3, 13, 14, 0, 0, 0, time.UTC)

type fixture struct {
	db               *sql.DB
	userRepo         *repository.SQLiteUserRepository
	profileRepo      *repository.SQLiteProfileRepository
	connectionRepo   *repository.SQLiteConnectionRepository
	reminderRepo     *repository.SQLiteReminderRepository
	scoreRepo        *repository.SQLiteGameScoreRepository
	moodRepo         *repository.SQLiteMoodEntryRepository
	chatRepo         *repository.SQLiteChatMessageRepository
	notificationRepo *repository.SQLiteNotificationRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	return fixture{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		profileRepo:      repository.NewProfileRepository(db),
		connectionRepo:   repository.NewConnectionRepository(db),
		reminderRepo:     repository.NewReminderRepository(db),
		scoreRepo:        repository.NewGameScoreRepository(db),
		moodRepo:         repository.NewMoodEntryRepository(db),
		chatRepo:         repository.NewChatMessageRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
}

func (f fixture) user(t *testing.T, name string) models.User {
	t.Helper()
	user, err := f.userRepo.Create(context.Background(), models.User{
		OIDCSubject: "sub-" + uuid.NewString(),
		Email:       name + "@example.com",
		Name:        name,
	})
	require.NoError(t, err)
	return user
}

// caller creates a user with a profile of the given role.
func (f fixture) caller(t *testing.T, role models.Role, name string) Caller {
	t.Helper()
	user := f.user(t, name)
	profile, err := f.profileRepo.Create(context.Background(), models.Profile{UserID: user.ID, Role: role, Name: name})
	require.NoError(t, err)
	return Caller{User: user, Profile: &profile}
}

func (f fixture) connect(t *testing.T, caregiver Caller, patient Caller) {
	t.Helper()
	_, err := f.connectionRepo.Upsert(context.Background(), models.Connection{
		CaregiverID: caregiver.Profile.ID,
		PatientID:   patient.Profile.ID,
		Status:      models.ConnectionAccepted,
	})
	require.NoError(t, err)
}

func (f fixture) reminder(t *testing.T, reminder models.Reminder) models.Reminder {
	t.Helper()
	if reminder.Title == "" {
		reminder.Title = "Reminder"
	}
	if reminder.Type == "" {
		reminder.Type = models.ReminderMedication
	}
	reminder.IsActive = true
	created, err := f.reminderRepo.Create(context.Background(), reminder)
	require.NoError(t, err)
	return created
}

func (f fixture) reminderService() *ReminderService {
	service := NewReminderService(f.reminderRepo, f.profileRepo, f.connectionRepo)
	service.now = func() time.Time { return fixedNow }
	return service
}

func (f fixture) connectionService() *ConnectionService {
	return NewConnectionService(f.profileRepo, f.connectionRepo)
}

func (f fixture) monitorService() *MonitorService {
	return NewMonitorService(f.reminderRepo, f.profileRepo, f.scoreRepo, f.notificationRepo, f.connectionService())
}

func stringPtr(value string) *string {
	return &value
}

func reminderFilterForPatient(patientID string) repository.ReminderFilter {
	return repository.ReminderFilter{PatientID: &patientID, OrderBy: repository.OrderByScheduledAsc}
}
