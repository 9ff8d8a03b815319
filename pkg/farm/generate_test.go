package farm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/entities"
	"krishimitra/pkg/i18n"
	"krishimitra/pkg/schedule"
)

func day(s string) entities.Date {
	d, err := entities.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGenerateTasksSortedByDueDate(t *testing.T) {
	crop := &entities.Crop{CropID: "c1", PlantingDate: day("2024-01-01")}
	tmpl := schedule.Template{
		entities.TaskIrrigation: {10, 20},
		entities.TaskSowing:     {0},
	}
	tasks := GenerateTasks(crop, tmpl, i18n.Default(), "en")
	require.Len(t, tasks, 3)

	assert.Equal(t, "c1-sowing-0", tasks[0].TaskID)
	assert.Equal(t, day("2024-01-01"), tasks[0].DueDate)
	assert.Equal(t, "Sowing", tasks[0].Name)

	assert.Equal(t, "c1-irrigation-10", tasks[1].TaskID)
	assert.Equal(t, day("2024-01-11"), tasks[1].DueDate)
	assert.Equal(t, "Irrigation (Day 10)", tasks[1].Name)

	assert.Equal(t, day("2024-01-21"), tasks[2].DueDate)
	for i, task := range tasks {
		assert.False(t, task.IsCompleted)
		assert.Equal(t, i, task.Ordinal)
		assert.Equal(t, "c1", task.CropID)
	}
}

func TestGenerateTasksNegativeOffset(t *testing.T) {
	crop := &entities.Crop{CropID: "w", PlantingDate: entities.NewDate(2023, time.November, 15)}
	tmpl, _ := schedule.Defaults().Get("wheat")
	tasks := GenerateTasks(crop, tmpl, i18n.Default(), "en")
	require.Len(t, tasks, 13)
	assert.Equal(t, entities.TaskSoilPreparation, tasks[0].Type)
	assert.Equal(t, day("2023-11-08"), tasks[0].DueDate)
	assert.Equal(t, entities.TaskHarvesting, tasks[len(tasks)-1].Type)
}

func TestGenerateTasksTiesKeepTypeOrder(t *testing.T) {
	crop := &entities.Crop{CropID: "w", PlantingDate: day("2024-03-01")}
	tmpl := schedule.Template{
		entities.TaskFertilizer: {0},
		entities.TaskSowing:     {0},
	}
	tasks := GenerateTasks(crop, tmpl, i18n.Default(), "hi")
	require.Len(t, tasks, 2)
	assert.Equal(t, entities.TaskSowing, tasks[0].Type)
	assert.Equal(t, entities.TaskFertilizer, tasks[1].Type)
	assert.Equal(t, "उर्वरक प्रयोग (दिन 0)", tasks[1].Name)
}

func TestGenerateTasksNoTemplate(t *testing.T) {
	crop := &entities.Crop{CropID: "x", PlantingDate: day("2024-01-01")}
	assert.Empty(t, GenerateTasks(crop, nil, i18n.Default(), "en"))
}

func TestMergeCompletion(t *testing.T) {
	old := []entities.FarmTask{
		{TaskID: "a", IsCompleted: true},
		{TaskID: "b", IsCompleted: false},
		{TaskID: "gone", IsCompleted: true},
	}
	fresh := []entities.FarmTask{{TaskID: "a"}, {TaskID: "b"}, {TaskID: "new"}}
	got := MergeCompletion(old, fresh)
	require.Len(t, got, 3)
	assert.True(t, got[0].IsCompleted)
	assert.False(t, got[1].IsCompleted)
	assert.False(t, got[2].IsCompleted)
	assert.False(t, fresh[0].IsCompleted, "input must not be modified")
}
