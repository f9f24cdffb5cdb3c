package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

type ReminderService struct {
	reminderRepo repository.ReminderRepository
	profileRepo  repository.ProfileRepository
	gate         accessGate
	now          func() time.Time
}

func NewReminderService(
	reminderRepo repository.ReminderRepository,
	profileRepo repository.ProfileRepository,
	connectionRepo repository.ConnectionRepository,
) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		profileRepo:  profileRepo,
		gate:         accessGate{connectionRepo: connectionRepo},
		now:          time.Now,
	}
}

type CreateReminderInput struct {
	PatientID        string
	Title            string
	Description      string
	Type             models.ReminderType
	ScheduledTime    time.Time
	IsRecurring      bool
	RecurringPattern *models.RecurringPattern
}

type CreatePersonalReminderInput struct {
	Title            string
	Description      string
	ScheduledTime    time.Time
	IsRecurring      bool
	RecurringPattern *models.RecurringPattern
	ShowToCaregiver  bool
	Mood             *models.Mood
}

type ReminderStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Missed         int `json:"missed"`
	CompletionRate int `json:"completion_rate"`
}

var assignableReminderTypes = map[models.ReminderType]bool{
	models.ReminderMedication:  true,
	models.ReminderAppointment: true,
	models.ReminderTask:        true,
	models.ReminderMeal:        true,
}

func (service *ReminderService) CreateReminder(ctx context.Context, caller Caller, input CreateReminderInput) (models.Reminder, error) {
	caregiver, err := caller.RequireRole(models.RoleCaregiver, "create reminders")
	if err != nil {
		return models.Reminder{}, err
	}
	if !assignableReminderTypes[input.Type] {
		return models.Reminder{}, fmt.Errorf("%w: reminder type %q cannot be assigned", ErrValidation, input.Type)
	}
	title, err := validateSchedule(input.Title, input.ScheduledTime, input.IsRecurring, input.RecurringPattern)
	if err != nil {
		return models.Reminder{}, err
	}

	patient, err := service.profileRepo.FindByID(ctx, input.PatientID)
	if err != nil {
		return models.Reminder{}, lookupError(err, "patient")
	}
	if patient.Role != models.RolePatient {
		return models.Reminder{}, fmt.Errorf("%w: patient", ErrNotFound)
	}
	connected, err := service.gate.isConnected(ctx, caregiver.ID, patient.ID)
	if err != nil {
		return models.Reminder{}, err
	}
	if !connected {
		return models.Reminder{}, fmt.Errorf("%w: not connected to this patient", ErrAuthorizationDenied)
	}

	reminder, err := service.reminderRepo.Create(ctx, models.Reminder{
		PatientID:        patient.ID,
		CaregiverID:      &caregiver.ID,
		Title:            title,
		Description:      input.Description,
		Type:             input.Type,
		ScheduledTime:    input.ScheduledTime,
		IsActive:         true,
		IsRecurring:      input.IsRecurring,
		RecurringPattern: input.RecurringPattern,
		IsPersonal:       false,
		ShowToCaregiver:  true,
		CreatedAt:        service.now(),
	})
	if err != nil {
		return models.Reminder{}, err
	}

	slog.Info("created reminder", "reminder_id", reminder.ID, "patient_id", patient.ID, "caregiver_id", caregiver.ID, "type", reminder.Type)
	return reminder, nil
}

func (service *ReminderService) CreatePersonalReminder(ctx context.Context, caller Caller, input CreatePersonalReminderInput) (models.Reminder, error) {
	patient, err := caller.RequireRole(models.RolePatient, "create personal reminders")
	if err != nil {
		return models.Reminder{}, err
	}
	title, err := validateSchedule(input.Title, input.ScheduledTime, input.IsRecurring, input.RecurringPattern)
	if err != nil {
		return models.Reminder{}, err
	}
	if input.Mood != nil && !input.Mood.Valid() {
		return models.Reminder{}, fmt.Errorf("%w: unknown mood %q", ErrValidation, *input.Mood)
	}

	reminder, err := service.reminderRepo.Create(ctx, models.Reminder{
		PatientID:        patient.ID,
		Title:            title,
		Description:      input.Description,
		Type:             models.ReminderPersonal,
		ScheduledTime:    input.ScheduledTime,
		IsActive:         true,
		IsRecurring:      input.IsRecurring,
		RecurringPattern: input.RecurringPattern,
		IsPersonal:       true,
		ShowToCaregiver:  input.ShowToCaregiver,
		Mood:             input.Mood,
		CreatedAt:        service.now(),
	})
	if err != nil {
		return models.Reminder{}, err
	}

	slog.Info("created personal reminder", "reminder_id", reminder.ID, "patient_id", patient.ID)
	return reminder, nil
}

func validateSchedule(title string, scheduled time.Time, isRecurring bool, pattern *models.RecurringPattern) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}
	if scheduled.IsZero() {
		return "", fmt.Errorf("%w: scheduled time is required", ErrValidation)
	}
	if isRecurring && pattern == nil {
		return "", fmt.Errorf("%w: recurring reminders need a pattern", ErrValidation)
	}
	if pattern != nil {
		if _, ok := recurrenceStep(*pattern); !ok {
			return "", fmt.Errorf("%w: unknown recurring pattern %q", ErrValidation, *pattern)
		}
	}
	return title, nil
}

// GetTodaysReminders lists active reminders on the caller's local day in
// ascending order. An empty patientID means the calling patient. Caregivers
// looking at a connected patient only see caregiver-visible reminders.
func (service *ReminderService) GetTodaysReminders(ctx context.Context, caller Caller, patientID string, location *time.Location) ([]models.Reminder, error) {
	if patientID == "" {
		if !caller.HasRole(models.RolePatient) {
			return []models.Reminder{}, nil
		}
		patientID = caller.Profile.ID
	}

	allowed, err := service.gate.canViewPatient(ctx, caller, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return []models.Reminder{}, nil
	}

	visibleOnly := caller.Profile.Role == models.RoleCaregiver
	return service.remindersForDay(ctx, patientID, location, visibleOnly, nil)
}

// GetVisibleReminders is the caregiver view of a patient's day.
func (service *ReminderService) GetVisibleReminders(ctx context.Context, caller Caller, patientID string, location *time.Location) ([]models.Reminder, error) {
	allowed, err := service.gate.caregiverView(ctx, caller, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return []models.Reminder{}, nil
	}
	return service.remindersForDay(ctx, patientID, location, true, nil)
}

func (service *ReminderService) remindersForDay(
	ctx context.Context,
	patientID string,
	location *time.Location,
	visibleOnly bool,
	reminderType *models.ReminderType,
) ([]models.Reminder, error) {
	start, end := dayBounds(service.now(), location)
	reminders, err := service.reminderRepo.FindAll(ctx, repository.ReminderFilter{
		PatientID:          &patientID,
		Type:               reminderType,
		ScheduledFrom:      &start,
		ScheduledBefore:    &end,
		ActiveOnly:         true,
		VisibleToCaregiver: visibleOnly,
		OrderBy:            repository.OrderByScheduledAsc,
	})
	if err != nil {
		return nil, err
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	return reminders, nil
}

// CompleteReminder marks a reminder done. Repeated calls rewrite completedAt.
// Completing a recurring reminder for the first time schedules its next
// occurrence.
func (service *ReminderService) CompleteReminder(ctx context.Context, caller Caller, reminderID string, mood *models.Mood, location *time.Location) (models.Reminder, error) {
	if !caller.Authenticated() {
		return models.Reminder{}, ErrAuthenticationRequired
	}
	if mood != nil && !mood.Valid() {
		return models.Reminder{}, fmt.Errorf("%w: unknown mood %q", ErrValidation, *mood)
	}

	reminder, err := service.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		return models.Reminder{}, lookupError(err, "reminder")
	}
	if err := service.authorizeCompletion(ctx, caller, reminder); err != nil {
		return models.Reminder{}, err
	}

	wasCompleted := reminder.IsCompleted
	completedAt := service.now()
	reminder.IsCompleted = true
	reminder.CompletedAt = &completedAt
	if mood != nil {
		reminder.Mood = mood
	}
	if err := service.reminderRepo.Update(ctx, reminder); err != nil {
		return models.Reminder{}, err
	}

	if !wasCompleted {
		if err := service.scheduleNext(ctx, reminder, completedAt, location); err != nil {
			return models.Reminder{}, err
		}
	}

	slog.Info("completed reminder", "reminder_id", reminder.ID, "patient_id", reminder.PatientID, "repeat", wasCompleted)
	return reminder, nil
}

func (service *ReminderService) authorizeCompletion(ctx context.Context, caller Caller, reminder models.Reminder) error {
	if caller.Profile == nil {
		return fmt.Errorf("%w: profile not set up", ErrAuthorizationDenied)
	}
	if caller.Profile.Role == models.RolePatient {
		if caller.Profile.ID != reminder.PatientID {
			return fmt.Errorf("%w: reminder belongs to another patient", ErrAuthorizationDenied)
		}
		return nil
	}

	connected, err := service.gate.isConnected(ctx, caller.Profile.ID, reminder.PatientID)
	if err != nil {
		return err
	}
	if !connected || !reminder.VisibleToCaregiver() {
		return fmt.Errorf("%w: not allowed to complete this reminder", ErrAuthorizationDenied)
	}
	return nil
}

func (service *ReminderService) scheduleNext(ctx context.Context, reminder models.Reminder, completedAt time.Time, location *time.Location) error {
	next := NextOccurrence(reminder, completedAt, location)
	if next == nil {
		return nil
	}

	upcoming := reminder
	upcoming.ID = ""
	upcoming.ScheduledTime = *next
	upcoming.IsCompleted = false
	upcoming.CompletedAt = nil
	upcoming.Mood = nil
	upcoming.CreatedAt = completedAt

	created, err := service.reminderRepo.Create(ctx, upcoming)
	if err != nil {
		return fmt.Errorf("scheduling next occurrence: %w", err)
	}
	slog.Info("scheduled next occurrence", "reminder_id", created.ID, "previous_id", reminder.ID, "scheduled_time", created.ScheduledTime)
	return nil
}

// ArchiveReminder hides a reminder from every view. Allowed for the owning
// patient and the caregiver who created it.
func (service *ReminderService) ArchiveReminder(ctx context.Context, caller Caller, reminderID string) error {
	profile, err := caller.RequireProfile()
	if err != nil {
		return err
	}

	reminder, err := service.reminderRepo.FindByID(ctx, reminderID)
	if err != nil {
		return lookupError(err, "reminder")
	}

	owner := profile.Role == models.RolePatient && reminder.PatientID == profile.ID
	creator := profile.Role == models.RoleCaregiver && reminder.CaregiverID != nil && *reminder.CaregiverID == profile.ID
	if !owner && !creator {
		return fmt.Errorf("%w: not allowed to archive this reminder", ErrAuthorizationDenied)
	}

	if !reminder.IsActive {
		return nil
	}
	reminder.IsActive = false
	if err := service.reminderRepo.Update(ctx, reminder); err != nil {
		return err
	}

	slog.Info("archived reminder", "reminder_id", reminder.ID, "profile_id", profile.ID)
	return nil
}

// GetReminderStats counts active reminders scheduled in the trailing window.
// Missed is everything not completed, including reminders not yet due.
func (service *ReminderService) GetReminderStats(ctx context.Context, caller Caller, patientID string, days int) (ReminderStats, error) {
	allowed, err := service.gate.canViewPatient(ctx, caller, patientID)
	if err != nil {
		return ReminderStats{}, err
	}
	if !allowed {
		return ReminderStats{}, nil
	}

	end := service.now()
	start := windowStart(end, days)
	reminders, err := service.reminderRepo.FindAll(ctx, repository.ReminderFilter{
		PatientID:          &patientID,
		ScheduledFrom:      &start,
		ScheduledThrough:   &end,
		ActiveOnly:         true,
		VisibleToCaregiver: caller.Profile.Role == models.RoleCaregiver,
	})
	if err != nil {
		return ReminderStats{}, err
	}

	return summarizeReminders(reminders), nil
}

func summarizeReminders(reminders []models.Reminder) ReminderStats {
	stats := ReminderStats{Total: len(reminders)}
	for _, reminder := range reminders {
		if reminder.IsCompleted {
			stats.Completed++
		}
	}
	stats.Missed = stats.Total - stats.Completed
	stats.CompletionRate = percent(stats.Completed, stats.Total)
	return stats
}
