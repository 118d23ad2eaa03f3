package persistence

import (
	"context"
	"errors"

	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDirectory reads users and groups from the platform's identity tables
type GormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a new GormDirectory
func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// UsersByIDs returns the existing users keyed by ID
func (d *GormDirectory) UsersByIDs(ctx context.Context, ids []int64) (map[int64]directory.User, error) {
	ids = directory.UniqueIDs(ids)
	result := make(map[int64]directory.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.UserModel
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, shared.NewRepositoryError("find users", err)
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

// GroupsByIDs returns the existing groups keyed by ID
func (d *GormDirectory) GroupsByIDs(ctx context.Context, ids []int64) (map[int64]directory.Group, error) {
	ids = directory.UniqueIDs(ids)
	result := make(map[int64]directory.Group, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.GroupModel
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, shared.NewRepositoryError("find groups", err)
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

// GroupMembers maps each existing group to its member user IDs, ordered by user ID
func (d *GormDirectory) GroupMembers(ctx context.Context, groupIDs []int64) (map[int64][]int64, error) {
	groups, err := d.GroupsByIDs(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[int64][]int64, len(groups))
	if len(groups) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
		result[id] = []int64{}
	}

	var rows []models.GroupMemberModel
	if err := d.db.WithContext(ctx).
		Where("group_id IN ?", ids).
		Order("group_id ASC, user_id ASC").
		Find(&rows).Error; err != nil {
		return nil, shared.NewRepositoryError("find group members", err)
	}
	for _, row := range rows {
		result[row.GroupID] = append(result[row.GroupID], row.UserID)
	}
	return result, nil
}

// HasAdminCapability reports whether the user is flagged as an administrator
func (d *GormDirectory) HasAdminCapability(ctx context.Context, userID int64) (bool, error) {
	var model models.UserModel
	err := d.db.WithContext(ctx).Select("id", "is_admin").First(&model, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, shared.NewRepositoryError("find user", err)
	}
	return model.IsAdmin, nil
}

var _ directory.Directory = (*GormDirectory)(nil)
