package ports

import (
	"context"
	"errors"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRecord struct {
	NotificationID string
	RecipientID    string
	Kind           string
	Body           string
	IsRead         bool
	CreatedAt      string
}

type NotificationRepository interface {
	ListNotifications(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationRecord, error)
	CreateNotification(ctx context.Context, notification NotificationRecord) error
	MarkNotificationRead(ctx context.Context, notificationID string) error
}
