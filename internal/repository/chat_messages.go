package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message models.ChatMessage) (models.ChatMessage, error)
	FindRecent(ctx context.Context, patientID string, limit int) ([]models.ChatMessage, error)
}

type SQLiteChatMessageRepository struct {
	database *sql.DB
}

func NewChatMessageRepository(database *sql.DB) *SQLiteChatMessageRepository {
	return &SQLiteChatMessageRepository{database: database}
}

func (repository *SQLiteChatMessageRepository) Create(ctx context.Context, message models.ChatMessage) (models.ChatMessage, error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}
	message.Timestamp = utc(message.Timestamp)

	_, err := repository.database.ExecContext(ctx,
		`INSERT INTO chat_messages (id, patient_id, message, response, category, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		message.ID, message.PatientID, message.Message, message.Response, message.Category, message.Timestamp,
	)
	if err != nil {
		return models.ChatMessage{}, fmt.Errorf("creating chat message: %w", err)
	}
	return message, nil
}

func (repository *SQLiteChatMessageRepository) FindRecent(ctx context.Context, patientID string, limit int) ([]models.ChatMessage, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, patient_id, message, response, category, timestamp
		FROM chat_messages WHERE patient_id = ?
		ORDER BY timestamp DESC LIMIT ?`,
		patientID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding chat messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var message models.ChatMessage
		if err := rows.Scan(&message.ID, &message.PatientID, &message.Message, &message.Response, &message.Category, &message.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
