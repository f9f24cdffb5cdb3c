package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/google/uuid"
)

const (
	OrderByScheduledAsc  = "scheduled_time ASC, created_at ASC"
	OrderByScheduledDesc = "scheduled_time DESC, created_at DESC"
)

// ReminderFilter narrows FindAll. Zero values leave a predicate off.
type ReminderFilter struct {
	PatientID *string
	Type      *models.ReminderType
	Completed *bool
	// ScheduledFrom is inclusive.
	ScheduledFrom *time.Time
	// ScheduledBefore is exclusive.
	ScheduledBefore *time.Time
	// ScheduledThrough is inclusive.
	ScheduledThrough   *time.Time
	ActiveOnly         bool
	HasCaregiver       bool
	VisibleToCaregiver bool
	OrderBy            string
}

type ReminderRepository interface {
	FindByID(ctx context.Context, id string) (models.Reminder, error)
	FindAll(ctx context.Context, filter ReminderFilter) ([]models.Reminder, error)
	Create(ctx context.Context, reminder models.Reminder) (models.Reminder, error)
	Update(ctx context.Context, reminder models.Reminder) error
}

type SQLiteReminderRepository struct {
	database *sql.DB
}

func NewReminderRepository(database *sql.DB) *SQLiteReminderRepository {
	return &SQLiteReminderRepository{database: database}
}

const reminderColumns = `id, patient_id, caregiver_id, title, description, type,
	scheduled_time, is_completed, completed_at, is_active,
	is_recurring, recurring_pattern, is_personal, show_to_caregiver,
	mood, created_at`

func (repository *SQLiteReminderRepository) FindByID(ctx context.Context, id string) (models.Reminder, error) {
	reminder, err := scanReminder(repository.database.QueryRowContext(ctx,
		"SELECT "+reminderColumns+" FROM reminders WHERE id = ?", id,
	))
	if err != nil {
		return models.Reminder{}, fmt.Errorf("finding reminder by id: %w", err)
	}
	return reminder, nil
}

func (repository *SQLiteReminderRepository) FindAll(ctx context.Context, filter ReminderFilter) ([]models.Reminder, error) {
	query := "SELECT " + reminderColumns + " FROM reminders WHERE 1=1"
	var args []any

	if filter.PatientID != nil {
		query += " AND patient_id = ?"
		args = append(args, *filter.PatientID)
	}
	if filter.Type != nil {
		query += " AND type = ?"
		args = append(args, *filter.Type)
	}
	if filter.Completed != nil {
		query += " AND is_completed = ?"
		args = append(args, *filter.Completed)
	}
	if filter.ScheduledFrom != nil {
		query += " AND scheduled_time >= ?"
		args = append(args, utc(*filter.ScheduledFrom))
	}
	if filter.ScheduledBefore != nil {
		query += " AND scheduled_time < ?"
		args = append(args, utc(*filter.ScheduledBefore))
	}
	if filter.ScheduledThrough != nil {
		query += " AND scheduled_time <= ?"
		args = append(args, utc(*filter.ScheduledThrough))
	}
	if filter.ActiveOnly {
		query += " AND is_active = 1"
	}
	if filter.HasCaregiver {
		query += " AND caregiver_id IS NOT NULL"
	}
	if filter.VisibleToCaregiver {
		query += " AND (is_personal = 0 OR show_to_caregiver = 1)"
	}

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = OrderByScheduledAsc
	}
	query += " ORDER BY " + orderBy

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding reminders: %w", err)
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

func (repository *SQLiteReminderRepository) Create(ctx context.Context, reminder models.Reminder) (models.Reminder, error) {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = time.Now()
	}
	reminder.CreatedAt = utc(reminder.CreatedAt)
	reminder.ScheduledTime = utc(reminder.ScheduledTime)
	reminder.CompletedAt = utcPtr(reminder.CompletedAt)

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO reminders ("+reminderColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		reminder.ID, reminder.PatientID, reminder.CaregiverID, reminder.Title, reminder.Description, reminder.Type,
		reminder.ScheduledTime, reminder.IsCompleted, reminder.CompletedAt, reminder.IsActive,
		reminder.IsRecurring, reminder.RecurringPattern, reminder.IsPersonal, reminder.ShowToCaregiver,
		reminder.Mood, reminder.CreatedAt,
	)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("creating reminder: %w", err)
	}
	return reminder, nil
}

// Update writes back the mutable lifecycle fields of a reminder.
func (repository *SQLiteReminderRepository) Update(ctx context.Context, reminder models.Reminder) error {
	_, err := repository.database.ExecContext(ctx,
		`UPDATE reminders SET title = ?, description = ?, scheduled_time = ?,
			is_completed = ?, completed_at = ?, is_active = ?,
			show_to_caregiver = ?, mood = ?
		WHERE id = ?`,
		reminder.Title, reminder.Description, utc(reminder.ScheduledTime),
		reminder.IsCompleted, utcPtr(reminder.CompletedAt), reminder.IsActive,
		reminder.ShowToCaregiver, reminder.Mood,
		reminder.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reminder: %w", err)
	}
	return nil
}

func scanReminder(row rowScanner) (models.Reminder, error) {
	var reminder models.Reminder
	err := row.Scan(
		&reminder.ID, &reminder.PatientID, &reminder.CaregiverID, &reminder.Title, &reminder.Description, &reminder.Type,
		&reminder.ScheduledTime, &reminder.IsCompleted, &reminder.CompletedAt, &reminder.IsActive,
		&reminder.IsRecurring, &reminder.RecurringPattern, &reminder.IsPersonal, &reminder.ShowToCaregiver,
		&reminder.Mood, &reminder.CreatedAt,
	)
	return reminder, err
}
