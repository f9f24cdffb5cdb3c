package services

import (
	"context"
	"fmt"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

const (
	defaultNotificationLimit = 20
	maxNotificationLimit     = 100
)

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (service *NotificationService) ListNotifications(ctx context.Context, caller Caller, limit int) ([]models.Notification, error) {
	if caller.Profile == nil {
		return []models.Notification{}, nil
	}
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	limit = min(limit, maxNotificationLimit)

	notifications, err := service.notificationRepo.FindByRecipient(ctx, caller.Profile.ID, limit)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

func (service *NotificationService) UnreadCount(ctx context.Context, caller Caller) (int, error) {
	if caller.Profile == nil {
		return 0, nil
	}
	return service.notificationRepo.CountUnread(ctx, caller.Profile.ID)
}

// MarkNotificationRead flips the read flag. Only the recipient may do so.
func (service *NotificationService) MarkNotificationRead(ctx context.Context, caller Caller, notificationID string) error {
	if !caller.Authenticated() {
		return ErrAuthenticationRequired
	}

	notification, err := service.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return lookupError(err, "notification")
	}
	if caller.Profile == nil || notification.RecipientID != caller.Profile.ID {
		return fmt.Errorf("%w: notification belongs to another recipient", ErrAuthorizationDenied)
	}
	if notification.IsRead {
		return nil
	}
	return service.notificationRepo.MarkRead(ctx, notification.ID)
}
