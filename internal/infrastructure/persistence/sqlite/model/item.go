package model

type Item struct {
	ItemID          string  `gorm:"column:item_id;type:text;primaryKey"`
	OwnerID         string  `gorm:"column:owner_id;type:text;not null;index"`
	Title           string  `gorm:"column:title;type:text;not null"`
	Description     string  `gorm:"column:description;type:text;not null"`
	Category        string  `gorm:"column:category;type:text;not null;index"`
	ItemType        string  `gorm:"column:item_type;type:text;not null;index"`
	Quantity        int     `gorm:"column:quantity;not null"`
	Condition       string  `gorm:"column:condition;type:text"`
	ExpiryDate      *string `gorm:"column:expiry_date;type:text"`
	PickupAddress   string  `gorm:"column:pickup_address;type:text;not null"`
	Latitude        float64 `gorm:"column:latitude;not null;index"`
	Longitude       float64 `gorm:"column:longitude;not null;index"`
	LocationSource  string  `gorm:"column:location_source;type:text;not null"`
	PhotoURL        string  `gorm:"column:photo_url;type:text"`
	Status          string  `gorm:"column:status;type:text;not null;index"`
	CollaborationID *string `gorm:"column:collaboration_id;type:text;index"`
	CreatedAt       string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt       string  `gorm:"column:updated_at;type:text;not null"`
}

func (Item) TableName() string {
	return "items"
}
