package entities

import "time"

type UserSettings struct {
	UserID    string `gorm:"primaryKey" json:"user_id"`
	Language  string `json:"language"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
