package service

import (
	"krishimitra/entities"
	"krishimitra/pkg/farm"
	"krishimitra/pkg/i18n"
	"krishimitra/pkg/schedule"
)

// FarmService owns one farm store per user and writes every transition through
// to storage.
type FarmService interface {
	State(uid string) (farm.State, error)
	Dispatch(uid string, cmd farm.Command) (farm.State, string, error)
	SetLanguage(uid, lang string) (farm.State, error)
	Templates() *schedule.Registry
	Labels() *i18n.Catalog
	Today() entities.Date
}
