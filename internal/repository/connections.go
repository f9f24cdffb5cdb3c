package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/google/uuid"
)

type ConnectionRepository interface {
	Find(ctx context.Context, caregiverID string, patientID string) (models.Connection, error)
	FindByCaregiver(ctx context.Context, caregiverID string, status *models.ConnectionStatus) ([]models.Connection, error)
	FindByPatient(ctx context.Context, patientID string, status *models.ConnectionStatus) ([]models.Connection, error)
	Upsert(ctx context.Context, connection models.Connection) (models.Connection, error)
}

type SQLiteConnectionRepository struct {
	database *sql.DB
}

func NewConnectionRepository(database *sql.DB) *SQLiteConnectionRepository {
	return &SQLiteConnectionRepository{database: database}
}

const connectionColumns = "id, caregiver_id, patient_id, status, created_at"

func (repository *SQLiteConnectionRepository) Find(ctx context.Context, caregiverID string, patientID string) (models.Connection, error) {
	var connection models.Connection
	err := repository.database.QueryRowContext(ctx,
		"SELECT "+connectionColumns+" FROM connections WHERE caregiver_id = ? AND patient_id = ?",
		caregiverID, patientID,
	).Scan(&connection.ID, &connection.CaregiverID, &connection.PatientID, &connection.Status, &connection.CreatedAt)
	if err != nil {
		return models.Connection{}, fmt.Errorf("finding connection: %w", err)
	}
	return connection, nil
}

func (repository *SQLiteConnectionRepository) FindByCaregiver(ctx context.Context, caregiverID string, status *models.ConnectionStatus) ([]models.Connection, error) {
	return repository.findBy(ctx, "caregiver_id", caregiverID, status)
}

func (repository *SQLiteConnectionRepository) FindByPatient(ctx context.Context, patientID string, status *models.ConnectionStatus) ([]models.Connection, error) {
	return repository.findBy(ctx, "patient_id", patientID, status)
}

func (repository *SQLiteConnectionRepository) findBy(ctx context.Context, column string, id string, status *models.ConnectionStatus) ([]models.Connection, error) {
	query := "SELECT " + connectionColumns + " FROM connections WHERE " + column + " = ?"
	args := []any{id}
	if status != nil {
		query += " AND status = ?"
		args = append(args, *status)
	}
	query += " ORDER BY created_at ASC"

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding connections by %s: %w", column, err)
	}
	defer rows.Close()

	var connections []models.Connection
	for rows.Next() {
		var connection models.Connection
		if err := rows.Scan(&connection.ID, &connection.CaregiverID, &connection.PatientID, &connection.Status, &connection.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning connection: %w", err)
		}
		connections = append(connections, connection)
	}
	return connections, rows.Err()
}

// Upsert inserts the connection unless the (caregiver, patient) pair already
// exists, and returns whichever row is stored.
func (repository *SQLiteConnectionRepository) Upsert(ctx context.Context, connection models.Connection) (models.Connection, error) {
	if connection.ID == "" {
		connection.ID = uuid.New().String()
	}
	connection.CreatedAt = utc(time.Now())

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO connections (`+connectionColumns+`) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (caregiver_id, patient_id) DO NOTHING`,
		connection.ID, connection.CaregiverID, connection.PatientID, connection.Status, connection.CreatedAt,
	)
	if err != nil {
		return models.Connection{}, fmt.Errorf("creating connection: %w", err)
	}
	return repository.Find(ctx, connection.CaregiverID, connection.PatientID)
}
