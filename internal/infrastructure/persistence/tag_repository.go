package persistence

import (
	"context"
	"strings"

	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// GormTagRepository implements TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by ID
func (r *GormTagRepository) FindByID(ctx context.Context, id int64) (*tag.Tag, error) {
	var model models.TagModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundOr("find tag", err)
	}
	return model.ToDomain(), nil
}

// FindByIDs returns the existing tags keyed by ID
func (r *GormTagRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*tag.Tag, error) {
	result := make(map[int64]*tag.Tag, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []models.TagModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, shared.NewRepositoryError("find tags", err)
	}
	for i := range rows {
		result[rows[i].ID] = rows[i].ToDomain()
	}
	return result, nil
}

// FindAll lists tags filtered by name substring and ordered by a whitelisted column
func (r *GormTagRepository) FindAll(ctx context.Context, filter tag.Filter) ([]*tag.Tag, error) {
	query := r.db.WithContext(ctx).Model(&models.TagModel{})

	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(name))+"%")
	}

	query = paginate(query.Order(tagSort.orderClause(filter.OrderBy, filter.OrderDir)), filter.Page)

	var rows []models.TagModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.NewRepositoryError("list tags", err)
	}

	tags := make([]*tag.Tag, len(rows))
	for i := range rows {
		tags[i] = rows[i].ToDomain()
	}
	return tags, nil
}

// Count returns the number of tags
func (r *GormTagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.TagModel{}).Count(&count).Error; err != nil {
		return 0, shared.NewRepositoryError("count tags", err)
	}
	return count, nil
}

// ExistsByName reports whether a tag other than excludeID already uses name
func (r *GormTagRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.TagModel{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, shared.NewRepositoryError("check tag name", err)
	}
	return count > 0, nil
}

// Create inserts the tag and assigns its ID
func (r *GormTagRepository) Create(ctx context.Context, t *tag.Tag) error {
	model := models.TagModelFromDomain(t)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return tag.ErrDuplicateName
		}
		return shared.NewRepositoryError("create tag", err)
	}
	t.ID = model.ID
	return nil
}

// Update persists every field of an existing tag
func (r *GormTagRepository) Update(ctx context.Context, t *tag.Tag) error {
	model := models.TagModelFromDomain(t)
	result := r.db.WithContext(ctx).Model(&models.TagModel{}).
		Where("id = ?", t.ID).
		Select("name", "active", "bg_colour", "modified_by", "updated_at").
		Updates(model)
	if err := result.Error; err != nil {
		if isDuplicateKey(err) {
			return tag.ErrDuplicateName
		}
		return shared.NewRepositoryError("update tag", err)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ tag.TagRepository = (*GormTagRepository)(nil)
