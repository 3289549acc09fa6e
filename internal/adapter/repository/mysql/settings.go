package mysql

import (
	"context"
	"errors"

	settingsDomain "peerlend-backend/internal/domain/settings"

	"gorm.io/gorm"
)

// settingsRowID: the configuration record is a single pinned row.
const settingsRowID = 1

type SettingsRepository struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository { return &SettingsRepository{db: db} }

func (r *SettingsRepository) Get(ctx context.Context) (*settingsDomain.Settings, error) {
	var out settingsDomain.Settings
	res := r.db.WithContext(ctx).Where("id = ?", settingsRowID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, settingsDomain.ErrNotInitialized
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *settingsDomain.Settings) error {
	s.ID = settingsRowID
	return r.db.WithContext(ctx).Save(s).Error
}
