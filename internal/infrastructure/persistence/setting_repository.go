package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/thankyou/backend/internal/domain/setting"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository stores option values as JSON text, one row per key
type GormSettingRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db, now: time.Now}
}

// Load returns every stored value. Rows that no longer decode are skipped.
func (r *GormSettingRepository) Load(ctx context.Context) (setting.Values, error) {
	var rows []models.SettingModel
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, shared.NewRepositoryError("load settings", err)
	}

	values := make(setting.Values, len(rows))
	for _, row := range rows {
		var v any
		if err := json.Unmarshal([]byte(row.Value), &v); err != nil {
			continue
		}
		values[row.Key] = v
	}
	return values, nil
}

// Save upserts values in one transaction
func (r *GormSettingRepository) Save(ctx context.Context, values setting.Values) error {
	if len(values) == 0 {
		return nil
	}

	now := r.now()
	rows := make([]models.SettingModel, 0, len(values))
	for key, value := range values {
		raw, err := json.Marshal(value)
		if err != nil {
			return shared.NewRepositoryError("encode setting "+key, err)
		}
		rows = append(rows, models.SettingModel{Key: key, Value: string(raw), UpdatedAt: now})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
	return shared.NewRepositoryError("save settings", err)
}

var _ setting.SettingRepository = (*GormSettingRepository)(nil)
