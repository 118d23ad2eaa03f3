package models

import "time"

// SettingModel stores one option as JSON text
type SettingModel struct {
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}

// All returns every model, in dependency order, for schema creation
func All() []any {
	return []any{
		&UserModel{},
		&GroupModel{},
		&GroupMemberModel{},
		&TagModel{},
		&ThankYouModel{},
		&ThankedModel{},
		&ThankYouUserModel{},
		&ThankYouTagModel{},
		&SettingModel{},
	}
}
