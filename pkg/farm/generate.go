package farm

import (
	"fmt"
	"sort"
	"strconv"

	"krishimitra/entities"
	"krishimitra/pkg/schedule"
)

// Labeler resolves translation keys; unresolved keys come back as-is.
type Labeler interface {
	T(lang, key string) string
	Format(lang, key string, params map[string]string) string
}

// TaskID is stable for a crop, task type and offset, so regeneration yields the same ids.
func TaskID(cropID string, tt entities.TaskType, offset int) string {
	return fmt.Sprintf("%s-%s-%d", cropID, tt, offset)
}

// GenerateTasks expands tmpl into uncompleted tasks for crop, sorted by due date.
// A nil or empty template yields no tasks.
func GenerateTasks(crop *entities.Crop, tmpl schedule.Template, labels Labeler, lang string) []entities.FarmTask {
	tasks := make([]entities.FarmTask, 0, tmpl.Count())
	for _, tt := range entities.TaskTypes {
		for _, off := range tmpl[tt] {
			tasks = append(tasks, entities.FarmTask{
				UserID:  crop.UserID,
				TaskID:  TaskID(crop.CropID, tt, off),
				CropID:  crop.CropID,
				Type:    tt,
				Name:    TaskName(labels, lang, tt, off),
				DueDate: crop.PlantingDate.AddDays(off),
			})
		}
	}
	SortTasks(tasks)
	return tasks
}

func TaskName(labels Labeler, lang string, tt entities.TaskType, offset int) string {
	switch tt {
	case entities.TaskIrrigation, entities.TaskFertilizer:
		return labels.Format(lang, "task_name_"+string(tt)+"_at_days", map[string]string{"days": strconv.Itoa(offset)})
	default:
		return labels.T(lang, "task_name_"+string(tt))
	}
}

// SortTasks orders by due date; equal dates keep their relative order.
func SortTasks(tasks []entities.FarmTask) {
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
	for i := range tasks {
		tasks[i].Ordinal = i
	}
}

// MergeCompletion carries IsCompleted from old onto fresh for matching ids.
// Ids only in old are dropped.
func MergeCompletion(old, fresh []entities.FarmTask) []entities.FarmTask {
	done := make(map[string]bool, len(old))
	for _, t := range old {
		done[t.TaskID] = t.IsCompleted
	}
	out := make([]entities.FarmTask, len(fresh))
	for i, t := range fresh {
		t.IsCompleted = done[t.TaskID]
		out[i] = t
	}
	return out
}
