package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/google/uuid"
)

type MoodEntryRepository interface {
	Create(ctx context.Context, entry models.MoodEntry) (models.MoodEntry, error)
	FindByPatient(ctx context.Context, patientID string, since time.Time, visibleOnly bool) ([]models.MoodEntry, error)
}

type SQLiteMoodEntryRepository struct {
	database *sql.DB
}

func NewMoodEntryRepository(database *sql.DB) *SQLiteMoodEntryRepository {
	return &SQLiteMoodEntryRepository{database: database}
}

func (repository *SQLiteMoodEntryRepository) Create(ctx context.Context, entry models.MoodEntry) (models.MoodEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = utc(entry.Timestamp)

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO mood_entries (id, patient_id, mood, notes, timestamp, show_to_caregiver)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.PatientID, entry.Mood, entry.Notes, entry.Timestamp, entry.ShowToCaregiver,
	)
	if err != nil {
		return models.MoodEntry{}, fmt.Errorf("creating mood entry: %w", err)
	}
	return entry, nil
}

// FindByPatient returns entries at or after since, newest first. visibleOnly
// keeps only the entries the patient shared with caregivers.
func (repository *SQLiteMoodEntryRepository) FindByPatient(ctx context.Context, patientID string, since time.Time, visibleOnly bool) ([]models.MoodEntry, error) {
	query := `SELECT id, patient_id, mood, notes, timestamp, show_to_caregiver
		FROM mood_entries WHERE patient_id = ? AND timestamp >= ?`
	if visibleOnly {
		query += " AND show_to_caregiver = 1"
	}
	query += " ORDER BY timestamp DESC"

	rows, err := repository.database.QueryContext(ctx, query, patientID, utc(since))
	if err != nil {
		return nil, fmt.Errorf("finding mood entries: %w", err)
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var entry models.MoodEntry
		if err := rows.Scan(&entry.ID, &entry.PatientID, &entry.Mood, &entry.Notes, &entry.Timestamp, &entry.ShowToCaregiver); err != nil {
			return nil, fmt.Errorf("scanning mood entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
