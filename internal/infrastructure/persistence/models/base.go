package models

import (
	"time"

	"github.com/thankyou/backend/internal/domain/shared"
)

// BaseModel holds the identity and timestamp columns shared by the tags
// and thank_yous tables. Timestamps come from the domain clock.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func baseModelOf(e shared.BaseEntity) BaseModel {
	return BaseModel{ID: e.ID, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

// Entity returns the columns as a domain BaseEntity
func (m BaseModel) Entity() shared.BaseEntity {
	return shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}
