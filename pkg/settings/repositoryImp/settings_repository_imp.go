package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"krishimitra/entities"
	"krishimitra/pkg/settings/repository"
)

type settingsRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SettingsRepository { return &settingsRepo{db} }

func (r *settingsRepo) Get(uid string) (*entities.UserSettings, error) {
	var s entities.UserSettings
	if err := r.db.Where("user_id = ?", uid).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) Save(s *entities.UserSettings) error { return r.db.Save(s).Error }
