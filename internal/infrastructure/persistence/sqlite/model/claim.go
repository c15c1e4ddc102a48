package model

type Claim struct {
	ClaimID    string `gorm:"column:claim_id;type:text;primaryKey"`
	ItemID     string `gorm:"column:item_id;type:text;not null;index"`
	ClaimantID string `gorm:"column:claimant_id;type:text;not null;index"`
	Quantity   int    `gorm:"column:quantity;not null"`
	Message    string `gorm:"column:message;type:text"`
	Status     string `gorm:"column:status;type:text;not null;index"`
	CreatedAt  string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt  string `gorm:"column:updated_at;type:text;not null"`
}

func (Claim) TableName() string {
	return "claims"
}
