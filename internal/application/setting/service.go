// Package setting serves the runtime options that toggle tag behaviour.
package setting

import (
	"context"

	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/setting"
	"github.com/thankyou/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SettingService reads and writes runtime options. Stored values override
// the defaults supplied at construction.
type SettingService struct {
	repo     setting.SettingRepository
	dir      directory.Directory
	defaults setting.Values
	logger   *zap.Logger
}

// NewSettingService creates a new SettingService
func NewSettingService(repo setting.SettingRepository, dir directory.Directory, defaults setting.Values, logger *zap.Logger) *SettingService {
	d := make(setting.Values, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &SettingService{repo: repo, dir: dir, defaults: d, logger: logger}
}

// Values returns the effective options
func (s *SettingService) Values(ctx context.Context) (setting.Values, error) {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make(setting.Values, len(s.defaults))
	for k, v := range s.defaults {
		out[k] = v
	}
	for k, v := range stored {
		if _, known := setting.Catalogue[k]; known {
			out[k] = v
		}
	}
	return out, nil
}

// Set validates and stores values, then returns the effective options.
// Only users with the admin capability may change options.
func (s *SettingService) Set(ctx context.Context, actorID int64, values map[string]any) (setting.Values, error) {
	isAdmin, err := s.dir.HasAdminCapability(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, shared.ErrForbidden
	}

	if err := setting.Validate(values); err != nil {
		return nil, err
	}

	if len(values) > 0 {
		if err := s.repo.Save(ctx, setting.Values(values)); err != nil {
			return nil, err
		}
		s.logger.Info("Settings changed",
			zap.Int64("user_id", actorID),
			zap.Any("values", values),
		)
	}

	return s.Values(ctx)
}
