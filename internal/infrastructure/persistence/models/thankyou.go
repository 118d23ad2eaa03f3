package models

import (
	"github.com/thankyou/backend/internal/domain/thankyou"
)

// ThankYouModel is the persistence model for thank yous
type ThankYouModel struct {
	BaseModel
	AuthorID    int64  `gorm:"not null;index"`
	Description string `gorm:"type:text;not null"`
	Version     int    `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (ThankYouModel) TableName() string {
	return "thank_yous"
}

// ThankYouModelFromDomain maps the thank_yous row of t
func ThankYouModelFromDomain(t *thankyou.ThankYou) *ThankYouModel {
	return &ThankYouModel{
		BaseModel:   baseModelOf(t.BaseEntity),
		AuthorID:    t.Author().ID,
		Description: t.Description(),
		Version:     t.Version,
	}
}

// ThankedModel is one thanked entity of a thank you, kept in client order
type ThankedModel struct {
	ThankYouID int64 `gorm:"primaryKey"`
	OwnerClass int   `gorm:"primaryKey"`
	OwnerID    int64 `gorm:"primaryKey"`
	Position   int   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ThankedModel) TableName() string {
	return "thank_you_thanked"
}

// ThankYouUserModel is one recipient user of a thank you
type ThankYouUserModel struct {
	ThankYouID int64 `gorm:"primaryKey"`
	UserID     int64 `gorm:"primaryKey;index"`
	Position   int   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ThankYouUserModel) TableName() string {
	return "thank_you_users"
}

// ThankYouTagModel attaches a tag to a thank you
type ThankYouTagModel struct {
	ThankYouID int64 `gorm:"primaryKey"`
	TagID      int64 `gorm:"primaryKey;index"`
	Position   int   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ThankYouTagModel) TableName() string {
	return "thank_you_tags"
}
