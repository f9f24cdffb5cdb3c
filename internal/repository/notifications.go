package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateIfAbsent(ctx context.Context, notification models.Notification) (bool, error)
	FindByID(ctx context.Context, id string) (models.Notification, error)
	FindByRecipient(ctx context.Context, recipientID string, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	CountUnread(ctx context.Context, recipientID string) (int, error)
}

type SQLiteNotificationRepository struct {
	database *sql.DB
}

func NewNotificationRepository(database *sql.DB) *SQLiteNotificationRepository {
	return &SQLiteNotificationRepository{database: database}
}

const notificationColumns = "id, recipient_id, type, title, message, priority, is_read, created_at, related_id, dedup_key"

// CreateIfAbsent inserts the notification unless one with the same dedup key
// already exists. It reports whether a row was written.
func (repository *SQLiteNotificationRepository) CreateIfAbsent(ctx context.Context, notification models.Notification) (bool, error) {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.DedupKey == "" {
		notification.DedupKey = notification.ID
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	result, err := repository.database.ExecContext(ctx,
		`INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (dedup_key) DO NOTHING`,
		notification.ID, notification.RecipientID, notification.Type, notification.Title, notification.Message,
		notification.Priority, notification.IsRead, utc(notification.CreatedAt), notification.RelatedID, notification.DedupKey,
	)
	if err != nil {
		return false, fmt.Errorf("creating notification: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting created notifications: %w", err)
	}
	return affected == 1, nil
}

func (repository *SQLiteNotificationRepository) FindByID(ctx context.Context, id string) (models.Notification, error) {
	notification, err := scanNotification(repository.database.QueryRowContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE id = ?", id,
	))
	if err != nil {
		return models.Notification{}, fmt.Errorf("finding notification by id: %w", err)
	}
	return notification, nil
}

func (repository *SQLiteNotificationRepository) FindByRecipient(ctx context.Context, recipientID string, limit int) ([]models.Notification, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+notificationColumns+" FROM notifications WHERE recipient_id = ? ORDER BY created_at DESC LIMIT ?",
		recipientID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("finding notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (repository *SQLiteNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := repository.database.ExecContext(ctx, "UPDATE notifications SET is_read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

func (repository *SQLiteNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	var count int
	err := repository.database.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND is_read = 0", recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

func scanNotification(row rowScanner) (models.Notification, error) {
	var notification models.Notification
	err := row.Scan(
		&notification.ID, &notification.RecipientID, &notification.Type, &notification.Title, &notification.Message,
		&notification.Priority, &notification.IsRead, &notification.CreatedAt, &notification.RelatedID, &notification.DedupKey,
	)
	return notification, err
}
