package repository

import "krishimitra/entities"

type SettingsRepository interface {
	// Get returns nil when the user has no settings yet.
	Get(uid string) (*entities.UserSettings, error)
	Save(s *entities.UserSettings) error
}
