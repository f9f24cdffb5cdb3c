package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/google/uuid"
)

type GameScoreRepository interface {
	Create(ctx context.Context, score models.GameScore) (models.GameScore, error)
	FindByPatient(ctx context.Context, patientID string, since *time.Time, limit int) ([]models.GameScore, error)
	CountSince(ctx context.Context, patientID string, since time.Time) (int, error)
}

type SQLiteGameScoreRepository struct {
	database *sql.DB
}

func NewGameScoreRepository(database *sql.DB) *SQLiteGameScoreRepository {
	return &SQLiteGameScoreRepository{database: database}
}

const gameScoreColumns = "id, patient_id, game_id, score, max_score, percentage, time_spent, difficulty, completed_at"

func (repository *SQLiteGameScoreRepository) Create(ctx context.Context, score models.GameScore) (models.GameScore, error) {
	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	if score.CompletedAt.IsZero() {
		score.CompletedAt = time.Now()
	}
	score.CompletedAt = utc(score.CompletedAt)

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO game_scores ("+gameScoreColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		score.ID, score.PatientID, score.GameID, score.Score, score.MaxScore, score.Percentage,
		score.TimeSpent, score.Difficulty, score.CompletedAt,
	)
	if err != nil {
		return models.GameScore{}, fmt.Errorf("creating game score: %w", err)
	}
	return score, nil
}

// FindByPatient returns scores newest first. A nil since means all time and a
// limit of zero means no limit.
func (repository *SQLiteGameScoreRepository) FindByPatient(ctx context.Context, patientID string, since *time.Time, limit int) ([]models.GameScore, error) {
	query := "SELECT " + gameScoreColumns + " FROM game_scores WHERE patient_id = ?"
	args := []any{patientID}
	if since != nil {
		query += " AND completed_at >= ?"
		args = append(args, utc(*since))
	}
	query += " ORDER BY completed_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := repository.database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding game scores: %w", err)
	}
	defer rows.Close()

	var scores []models.GameScore
	for rows.Next() {
		var score models.GameScore
		if err := rows.Scan(
			&score.ID, &score.PatientID, &score.GameID, &score.Score, &score.MaxScore, &score.Percentage,
			&score.TimeSpent, &score.Difficulty, &score.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning game score: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (repository *SQLiteGameScoreRepository) CountSince(ctx context.Context, patientID string, since time.Time) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM game_scores WHERE patient_id = ? AND completed_at >= ?",
		patientID, utc(since),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting game scores: %w", err)
	}
	return count, nil
}
