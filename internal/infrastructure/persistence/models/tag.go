package models

import (
	"github.com/thankyou/backend/internal/domain/tag"
)

// TagModel is the persistence model for tags
type TagModel struct {
	BaseModel
	Name       string  `gorm:"type:varchar(255);not null;uniqueIndex:uq_tags_name"`
	Active     bool    `gorm:"not null;default:true"`
	BgColour   *string `gorm:"column:bg_colour;type:varchar(32)"`
	CreatedBy  int64   `gorm:"not null"`
	ModifiedBy int64   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the model to a domain Tag
func (m *TagModel) ToDomain() *tag.Tag {
	return &tag.Tag{
		BaseEntity:       m.BaseModel.Entity(),
		Name:             m.Name,
		Active:           m.Active,
		BackgroundColour: m.BgColour,
		CreatedBy:        m.CreatedBy,
		ModifiedBy:       m.ModifiedBy,
	}
}

// TagModelFromDomain converts a domain Tag to a model
func TagModelFromDomain(t *tag.Tag) *TagModel {
	return &TagModel{
		BaseModel:  baseModelOf(t.BaseEntity),
		Name:       t.Name,
		Active:     t.Active,
		BgColour:   t.BackgroundColour,
		CreatedBy:  t.CreatedBy,
		ModifiedBy: t.ModifiedBy,
	}
}
