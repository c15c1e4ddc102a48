package schema

import "time"

// AppMeta is a key/value table for deployment metadata such as the schema
// version.
type AppMeta struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Key       string    `gorm:"column:key;type:text;uniqueIndex;not null"`
	Value     string    `gorm:"column:value;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (AppMeta) TableName() string {
	return "app_meta"
}

// SchemaVersionKey is the app_meta key holding the migrated schema version.
const SchemaVersionKey = "schema_version"

// SchemaVersion is bumped when AutoMigrate alone cannot reproduce the
// schema and a manual migration note applies.
const SchemaVersion = "1"
