package persistence

import (
	"context"
	"errors"

	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/domain/thankyou"
	"github.com/thankyou/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormThankYouRepository implements ThankYouRepository using GORM. A thank
// you is stored as one thank_yous row plus ordered child rows for thanked
// references, recipients and tags.
type GormThankYouRepository struct {
	db *gorm.DB
}

// NewGormThankYouRepository creates a new GormThankYouRepository
func NewGormThankYouRepository(db *gorm.DB) *GormThankYouRepository {
	return &GormThankYouRepository{db: db}
}

// FindByID loads one thank you with all of its children
func (r *GormThankYouRepository) FindByID(ctx context.Context, id int64) (*thankyou.ThankYou, error) {
	var model models.ThankYouModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundOr("find thank you", err)
	}

	items, err := r.hydrate(ctx, []models.ThankYouModel{model}, true)
	if err != nil {
		return nil, err
	}
	return items[0], nil
}

// FindRecent returns thank yous newest first
func (r *GormThankYouRepository) FindRecent(ctx context.Context, filter thankyou.ListFilter) ([]*thankyou.ThankYou, error) {
	query := r.db.WithContext(ctx).Model(&models.ThankYouModel{})
	query = paginate(query.Order("created_at DESC").Order("id DESC"), filter.Page)

	var rows []models.ThankYouModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.NewRepositoryError("list thank yous", err)
	}
	return r.hydrate(ctx, rows, filter.WithThanked)
}

// FindForUser returns thank yous the user received, newest first
func (r *GormThankYouRepository) FindForUser(ctx context.Context, userID int64, page shared.Page) ([]*thankyou.ThankYou, error) {
	query := r.db.WithContext(ctx).Model(&models.ThankYouModel{}).
		Where("id IN (?)", r.receivedBy(ctx, userID))
	query = paginate(query.Order("created_at DESC").Order("id DESC"), page)

	var rows []models.ThankYouModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, shared.NewRepositoryError("list thank yous for user", err)
	}
	return r.hydrate(ctx, rows, true)
}

// CountForUser returns how many thank yous the user received
func (r *GormThankYouRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ThankYouUserModel{}).
		Where("user_id = ?", userID).
		Distinct("thank_you_id").
		Count(&count).Error
	if err != nil {
		return 0, shared.NewRepositoryError("count thank yous for user", err)
	}
	return count, nil
}

// Save writes the thank you and replaces its children in one transaction
func (r *GormThankYouRepository) Save(ctx context.Context, t *thankyou.ThankYou) error {
	model := models.ThankYouModelFromDomain(t)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if model.ID == 0 {
			if err := tx.Create(model).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&models.ThankYouModel{}).
				Where("id = ?", model.ID).
				Select("description", "version", "updated_at").
				Updates(model)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return shared.ErrNotFound
			}
			if err := deleteChildren(tx, model.ID); err != nil {
				return err
			}
		}
		return insertChildren(tx, model.ID, t)
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return shared.NewRepositoryError("save thank you", err)
	}

	t.ID = model.ID
	return nil
}

// Delete removes the thank you and its children
func (r *GormThankYouRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		result := tx.Delete(&models.ThankYouModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return err
		}
		return shared.NewRepositoryError("delete thank you", err)
	}
	return nil
}

func (r *GormThankYouRepository) receivedBy(ctx context.Context, userID int64) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ThankYouUserModel{}).
		Select("thank_you_id").
		Where("user_id = ?", userID)
}

// hydrate loads children for every row with one query per child table
func (r *GormThankYouRepository) hydrate(ctx context.Context, rows []models.ThankYouModel, withThanked bool) ([]*thankyou.ThankYou, error) {
	if len(rows) == 0 {
		return []*thankyou.ThankYou{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	db := r.db.WithContext(ctx)

	thanked := make(map[int64][]thankyou.Thankable, len(rows))
	if withThanked {
		var refs []models.ThankedModel
		if err := db.Where("thank_you_id IN ?", ids).Order("thank_you_id, position").Find(&refs).Error; err != nil {
			return nil, shared.NewRepositoryError("load thanked", err)
		}
		for _, ref := range refs {
			thanked[ref.ThankYouID] = append(thanked[ref.ThankYouID], thankyou.Thankable{
				OwnerClass: thankyou.OwnerClass(ref.OwnerClass),
				ID:         ref.OwnerID,
			})
		}
	}

	var recipients []models.ThankYouUserModel
	if err := db.Where("thank_you_id IN ?", ids).Order("thank_you_id, position").Find(&recipients).Error; err != nil {
		return nil, shared.NewRepositoryError("load recipients", err)
	}
	users := make(map[int64][]thankyou.UserRef, len(rows))
	for _, u := range recipients {
		users[u.ThankYouID] = append(users[u.ThankYouID], thankyou.UserRef{ID: u.UserID})
	}

	var links []models.ThankYouTagModel
	if err := db.Where("thank_you_id IN ?", ids).Order("thank_you_id, position").Find(&links).Error; err != nil {
		return nil, shared.NewRepositoryError("load thank you tags", err)
	}
	tagIDs := make([]int64, 0, len(links))
	for _, l := range links {
		tagIDs = append(tagIDs, l.TagID)
	}
	byID := make(map[int64]*tag.Tag)
	if len(tagIDs) > 0 {
		var tagRows []models.TagModel
		if err := db.Where("id IN ?", tagIDs).Find(&tagRows).Error; err != nil {
			return nil, shared.NewRepositoryError("load tags", err)
		}
		for i := range tagRows {
			byID[tagRows[i].ID] = tagRows[i].ToDomain()
		}
	}
	tags := make(map[int64][]*tag.Tag, len(rows))
	for _, l := range links {
		if tg, ok := byID[l.TagID]; ok {
			tags[l.ThankYouID] = append(tags[l.ThankYouID], tg)
		}
	}

	out := make([]*thankyou.ThankYou, len(rows))
	for i, row := range rows {
		var th []thankyou.Thankable
		if withThanked {
			th = thanked[row.ID]
			if th == nil {
				th = []thankyou.Thankable{}
			}
		}
		out[i] = thankyou.Restore(row.ID, thankyou.UserRef{ID: row.AuthorID}, row.Description,
			row.CreatedAt, row.UpdatedAt, row.Version, th, users[row.ID], tags[row.ID])
	}
	return out, nil
}

func deleteChildren(tx *gorm.DB, id int64) error {
	for _, m := range []any{&models.ThankedModel{}, &models.ThankYouUserModel{}, &models.ThankYouTagModel{}} {
		if err := tx.Where("thank_you_id = ?", id).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertChildren(tx *gorm.DB, id int64, t *thankyou.ThankYou) error {
	if refs := t.References(); len(refs) > 0 {
		rows := make([]models.ThankedModel, len(refs))
		for i, ref := range refs {
			rows[i] = models.ThankedModel{ThankYouID: id, OwnerClass: int(ref.OwnerClass), OwnerID: ref.ID, Position: i}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	if userIDs := t.UserIDs(); len(userIDs) > 0 {
		rows := make([]models.ThankYouUserModel, len(userIDs))
		for i, uid := range userIDs {
			rows[i] = models.ThankYouUserModel{ThankYouID: id, UserID: uid, Position: i}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}

	if tagIDs := t.TagIDs(); len(tagIDs) > 0 {
		rows := make([]models.ThankYouTagModel, len(tagIDs))
		for i, tid := range tagIDs {
			rows[i] = models.ThankYouTagModel{ThankYouID: id, TagID: tid, Position: i}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

func paginate(query *gorm.DB, page shared.Page) *gorm.DB {
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}
	return query
}

var _ thankyou.ThankYouRepository = (*GormThankYouRepository)(nil)
