package repositoryImp

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"krishimitra/entities"
	"krishimitra/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) ListByUser(uid string) ([]entities.Crop, error) {
	var crops []entities.Crop
	if err := r.db.Where("user_id = ?", uid).Order("ordinal ASC, crop_id ASC").Find(&crops).Error; err != nil {
		return nil, err
	}
	var tasks []entities.FarmTask
	if err := r.db.Where("user_id = ?", uid).Order("crop_id ASC, ordinal ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	byCrop := map[string][]entities.FarmTask{}
	for _, t := range tasks {
		byCrop[t.CropID] = append(byCrop[t.CropID], t)
	}
	for i := range crops {
		crops[i].Tasks = byCrop[crops[i].CropID]
		if crops[i].Tasks == nil {
			crops[i].Tasks = []entities.FarmTask{}
		}
	}
	return crops, nil
}

// Replace writes a whole transition in one transaction. Each upserted crop's
// task set is replaced wholesale.
func (r *cropRepo) Replace(uid string, upserts []entities.Crop, deletes []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(deletes) > 0 {
			if err := tx.Where("user_id = ? AND crop_id IN ?", uid, deletes).Delete(&entities.FarmTask{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ? AND crop_id IN ?", uid, deletes).Delete(&entities.Crop{}).Error; err != nil {
				return err
			}
		}
		for i := range upserts {
			c := upserts[i]
			c.UserID = uid
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&c).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ? AND crop_id = ?", uid, c.CropID).Delete(&entities.FarmTask{}).Error; err != nil {
				return err
			}
			if len(c.Tasks) == 0 {
				continue
			}
			tasks := make([]entities.FarmTask, len(c.Tasks))
			for j, t := range c.Tasks {
				t.UserID = uid
				t.CropID = c.CropID
				t.Ordinal = j
				tasks[j] = t
			}
			if err := tx.CreateInBatches(tasks, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
