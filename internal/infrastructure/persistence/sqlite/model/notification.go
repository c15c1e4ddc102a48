package model

type Notification struct {
	NotificationID string `gorm:"column:notification_id;type:text;primaryKey"`
	RecipientID    string `gorm:"column:recipient_id;type:text;not null;index"`
	Kind           string `gorm:"column:kind;type:text;not null"`
	Body           string `gorm:"column:body;type:text;not null"`
	IsRead         bool   `gorm:"column:is_read;not null;default:0"`
	CreatedAt      string `gorm:"column:created_at;type:text;not null"`
}

func (Notification) TableName() string {
	return "notifications"
}
