package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/metrics"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

const (
	MissedReminderWindow = time.Hour
	GameInactivityWindow = 3 * day
	GameInactivityBucket = 6 * time.Hour
	missedReminderTitle  = "Missed Reminder Alert"
	gameInactivityTitle  = "Memory Game Reminder"
)

// MonitorService evaluates the periodic caregiver alert rules. Every
// notification carries a dedup key, so evaluating a rule twice over the same
// window writes nothing new.
type MonitorService struct {
	reminderRepo      repository.ReminderRepository
	profileRepo       repository.ProfileRepository
	scoreRepo         repository.GameScoreRepository
	notificationRepo  repository.NotificationRepository
	connectionService *ConnectionService
}

func NewMonitorService(
	reminderRepo repository.ReminderRepository,
	profileRepo repository.ProfileRepository,
	scoreRepo repository.GameScoreRepository,
	notificationRepo repository.NotificationRepository,
	connectionService *ConnectionService,
) *MonitorService {
	return &MonitorService{
		reminderRepo:      reminderRepo,
		profileRepo:       profileRepo,
		scoreRepo:         scoreRepo,
		notificationRepo:  notificationRepo,
		connectionService: connectionService,
	}
}

// RuleResult summarises one evaluation of a rule.
type RuleResult struct {
	Candidates int
	Created    int
	Failed     int
}

// CheckMissedReminders notifies the assigning caregiver of every active,
// incomplete reminder scheduled in [now-1h, now). A failing reminder is
// logged and skipped; the joined errors are returned after the sweep.
func (service *MonitorService) CheckMissedReminders(ctx context.Context, now time.Time) (RuleResult, error) {
	from := now.Add(-MissedReminderWindow)
	incomplete := false
	reminders, err := service.reminderRepo.FindAll(ctx, repository.ReminderFilter{
		ScheduledFrom:   &from,
		ScheduledBefore: &now,
		Completed:       &incomplete,
		ActiveOnly:      true,
		HasCaregiver:    true,
	})
	if err != nil {
		return RuleResult{}, fmt.Errorf("finding missed reminders: %w", err)
	}

	result := RuleResult{Candidates: len(reminders)}
	var errs []error
	for _, reminder := range reminders {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		created, err := service.notify(ctx, models.Notification{
			RecipientID: *reminder.CaregiverID,
			Type:        models.NotificationMissedReminder,
			Title:       missedReminderTitle,
			Message:     service.missedReminderMessage(ctx, reminder),
			Priority:    models.PriorityHigh,
			RelatedID:   &reminder.ID,
			CreatedAt:   now,
			DedupKey:    models.NotificationMissedReminder + ":" + reminder.ID,
		})
		if err != nil {
			result.Failed++
			slog.Error("missed reminder notification failed", "reminder_id", reminder.ID, "error", err)
			errs = append(errs, fmt.Errorf("reminder %s: %w", reminder.ID, err))
			continue
		}
		if created {
			result.Created++
		}
	}
	return result, errors.Join(errs...)
}

func (service *MonitorService) missedReminderMessage(ctx context.Context, reminder models.Reminder) string {
	patient, err := service.profileRepo.FindByID(ctx, reminder.PatientID)
	if err != nil {
		return fmt.Sprintf("Patient missed: %s", reminder.Title)
	}
	return fmt.Sprintf("%s missed: %s", patient.Name, reminder.Title)
}

// CheckGameActivity notifies every accepted caregiver of a patient who has not
// saved a game score in the last three days. The dedup key is bucketed by the
// six-hour window, so an inactive patient produces at most one notification
// per caregiver per window.
func (service *MonitorService) CheckGameActivity(ctx context.Context, now time.Time) (RuleResult, error) {
	patients, err := service.profileRepo.FindByRole(ctx, models.RolePatient)
	if err != nil {
		return RuleResult{}, fmt.Errorf("finding patients: %w", err)
	}

	cutoff := now.Add(-GameInactivityWindow)
	bucket := now.UTC().Truncate(GameInactivityBucket).Format(time.RFC3339)

	var result RuleResult
	var errs []error
	for _, patient := range patients {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		created, err := service.checkPatientActivity(ctx, patient, cutoff, now, bucket, &result)
		result.Created += created
		if err != nil {
			result.Failed++
			slog.Error("game activity check failed", "patient_id", patient.ID, "error", err)
			errs = append(errs, fmt.Errorf("patient %s: %w", patient.ID, err))
		}
	}
	return result, errors.Join(errs...)
}

func (service *MonitorService) checkPatientActivity(
	ctx context.Context,
	patient models.Profile,
	cutoff time.Time,
	now time.Time,
	bucket string,
	result *RuleResult,
) (int, error) {
	played, err := service.scoreRepo.CountSince(ctx, patient.ID, cutoff)
	if err != nil {
		return 0, err
	}
	if played > 0 {
		return 0, nil
	}
	result.Candidates++

	caregivers, err := service.connectionService.ListCaregiversForPatient(ctx, patient.ID)
	if err != nil {
		return 0, err
	}

	created := 0
	var errs []error
	for _, caregiver := range caregivers {
		ok, err := service.notify(ctx, models.Notification{
			RecipientID: caregiver.ID,
			Type:        models.NotificationGameInactivity,
			Title:       gameInactivityTitle,
			Message:     fmt.Sprintf("%s hasn't played memory games in 3 days", patient.Name),
			Priority:    models.PriorityMedium,
			RelatedID:   &patient.ID,
			CreatedAt:   now,
			DedupKey:    fmt.Sprintf("%s:%s:%s:%s", models.NotificationGameInactivity, patient.ID, caregiver.ID, bucket),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("caregiver %s: %w", caregiver.ID, err))
			continue
		}
		if ok {
			created++
		}
	}
	return created, errors.Join(errs...)
}

func (service *MonitorService) notify(ctx context.Context, notification models.Notification) (bool, error) {
	created, err := service.notificationRepo.CreateIfAbsent(ctx, notification)
	if err != nil {
		return false, err
	}
	if created {
		metrics.NotificationsCreated.WithLabelValues(notification.Type).Inc()
	}
	return created, nil
}
