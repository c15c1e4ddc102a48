package model

type Profile struct {
	UserID      string `gorm:"column:user_id;type:text;primaryKey"`
	DisplayName string `gorm:"column:display_name;type:text;not null"`
	Location    string `gorm:"column:location;type:text"`
	Phone       string `gorm:"column:phone;type:text"`
	Bio         string `gorm:"column:bio;type:text"`
	CreatedAt   string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt   string `gorm:"column:updated_at;type:text;not null"`
}

func (Profile) TableName() string {
	return "profiles"
}
