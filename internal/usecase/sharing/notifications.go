package sharing

import (
	"context"
	"strings"

	"tigawane/internal/errs"
)

// ListNotifications returns the user's notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationView, error) {
	recipientID = strings.TrimSpace(recipientID)
	if recipientID == "" {
		return nil, errUserRequired
	}

	records, err := s.notifications.ListNotifications(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, errs.Wrap(err, "list notifications")
	}

	views := make([]NotificationView, 0, len(records))
	for _, record := range records {
		views = append(views, NotificationView{
			NotificationID: record.NotificationID,
			Kind:           record.Kind,
			Body:           record.Body,
			IsRead:         record.IsRead,
			CreatedAt:      record.CreatedAt,
		})
	}
	return views, nil
}

// MarkNotificationRead marks one notification as seen.
func (s *Service) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return s.notifications.MarkNotificationRead(ctx, strings.TrimSpace(notificationID))
}
