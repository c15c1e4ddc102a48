package model

type CollaborationRequest struct {
	RequestID   string `gorm:"column:request_id;type:text;primaryKey"`
	GroupName   string `gorm:"column:group_name;type:text;not null"`
	RequesterID string `gorm:"column:requester_id;type:text;not null;index"`
	PartnerOrg  string `gorm:"column:partner_org;type:text;not null"`
	Message     string `gorm:"column:message;type:text"`
	Status      string `gorm:"column:status;type:text;not null;index"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string `gorm:"column:updated_at;type:text;not null"`
}

func (CollaborationRequest) TableName() string {
	return "collaboration_requests"
}
