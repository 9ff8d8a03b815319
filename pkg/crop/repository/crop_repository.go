package repository

import "krishimitra/entities"

type CropRepository interface {
	ListByUser(uid string) ([]entities.Crop, error)
	Replace(uid string, upserts []entities.Crop, deletes []string) error
}
