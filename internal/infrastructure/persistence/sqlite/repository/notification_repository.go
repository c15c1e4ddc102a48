package repository

import (
	"context"

	"gorm.io/gorm"

	"tigawane/internal/errs"
	"tigawane/internal/infrastructure/persistence/sqlite/model"
	"tigawane/internal/ports"
)

type NotificationRepository struct {
	db *gorm.DB
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, recipientID string, unreadOnly bool) ([]ports.NotificationRecord, error) {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Notification{}).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var rows []model.Notification
	if err := query.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, errs.Wrap(err, "query notifications")
	}

	notifications := make([]ports.NotificationRecord, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, ports.NotificationRecord{
			NotificationID: row.NotificationID,
			RecipientID:    row.RecipientID,
			Kind:           row.Kind,
			Body:           row.Body,
			IsRead:         row.IsRead,
			CreatedAt:      row.CreatedAt,
		})
	}
	return notifications, nil
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, notification ports.NotificationRecord) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	row := model.Notification{
		NotificationID: notification.NotificationID,
		RecipientID:    notification.RecipientID,
		Kind:           notification.Kind,
		Body:           notification.Body,
		IsRead:         notification.IsRead,
		CreatedAt:      notification.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "insert notification")
	}
	return nil
}

func (r *NotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string) error {
	db, err := dbFromContext(ctx, r.db)
	if err != nil {
		return err
	}

	result := db.Model(&model.Notification{}).
		Where("notification_id = ?", notificationID).
		Update("is_read", true)
	if result.Error != nil {
		return errs.Wrap(result.Error, "mark notification read")
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotificationNotFound
	}
	return nil
}
