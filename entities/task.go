package entities

type TaskType string

const (
	TaskSoilPreparation TaskType = "soil_preparation"
	TaskSowing          TaskType = "sowing"
	TaskIrrigation      TaskType = "irrigation"
	TaskFertilizer      TaskType = "fertilizer"
	TaskWeeding         TaskType = "weeding"
	TaskHarvesting      TaskType = "harvesting"
)

// TaskTypes is the canonical order used when expanding a schedule template.
var TaskTypes = []TaskType{
	TaskSoilPreparation,
	TaskSowing,
	TaskIrrigation,
	TaskFertilizer,
	TaskWeeding,
	TaskHarvesting,
}

func (t TaskType) Valid() bool {
	for _, k := range TaskTypes {
		if k == t {
			return true
		}
	}
	return false
}

type FarmTask struct {
	UserID      string   `gorm:"primaryKey" json:"-"`
	TaskID      string   `gorm:"primaryKey" json:"id"`
	CropID      string   `gorm:"index" json:"crop_id"`
	Type        TaskType `json:"type"`
	Name        string   `json:"name"`
	DueDate     Date     `gorm:"type:text" json:"due_date"`
	IsCompleted bool     `json:"is_completed"`
	Ordinal     int      `json:"-"`
}
