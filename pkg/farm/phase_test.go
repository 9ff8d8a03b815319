package farm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishimitra/entities"
	"krishimitra/pkg/i18n"
)

func phasedTasks(done ...bool) []entities.FarmTask {
	types := []entities.TaskType{
		entities.TaskSoilPreparation,
		entities.TaskSowing,
		entities.TaskIrrigation,
		entities.TaskIrrigation,
		entities.TaskFertilizer,
		entities.TaskWeeding,
		entities.TaskHarvesting,
	}
	out := make([]entities.FarmTask, len(types))
	for i, tt := range types {
		out[i] = entities.FarmTask{TaskID: string(tt) + string(rune('a'+i)), Type: tt}
		if i < len(done) {
			out[i].IsCompleted = done[i]
		}
	}
	return out
}

func phaseDone(tasks []entities.FarmTask, tt entities.TaskType) bool {
	for _, t := range tasks {
		if t.Type == tt && !t.IsCompleted {
			return false
		}
	}
	return true
}

func TestPhaseIndex(t *testing.T) {
	assert.Equal(t, 0, PhaseIndex(entities.TaskSoilPreparation))
	assert.Equal(t, 4, PhaseIndex(entities.TaskHarvesting))
	assert.Equal(t, -1, PhaseIndex(entities.TaskFertilizer))
}

func TestCurrentPhase(t *testing.T) {
	tests := []struct {
		name string
		done []bool
		want int
	}{
		{"nothing done", nil, 0},
		{"soil done", []bool{true}, 1},
		{"one irrigation left", []bool{true, true, true, false}, 2},
		{"irrigation done fertilizer open", []bool{true, true, true, true, false}, 3},
		{"later phase done early phase open", []bool{false, true, true, true, true, true, true}, 0},
		{"all done", []bool{true, true, true, true, true, true, true}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentPhase(phasedTasks(tt.done...)))
		})
	}
}

func TestCurrentPhaseEmptyPhasesCountAsComplete(t *testing.T) {
	tasks := []entities.FarmTask{{Type: entities.TaskWeeding}}
	assert.Equal(t, 3, CurrentPhase(tasks))
	assert.Equal(t, len(Phases), CurrentPhase(nil))
}

func TestAdvanceTo(t *testing.T) {
	in := phasedTasks(false, true, false, true, true, true, true)
	out, err := AdvanceTo(in, 2)
	require.NoError(t, err)
	for _, p := range Phases[:3] {
		assert.True(t, phaseDone(out, p), p)
	}
	for _, task := range out {
		if i := PhaseIndex(task.Type); i > 2 {
			assert.False(t, task.IsCompleted, task.TaskID)
		}
	}
	// fertilizer sits outside the phase list
	assert.True(t, out[4].IsCompleted)
	assert.Equal(t, 3, CurrentPhase(out))
	assert.False(t, in[0].IsCompleted, "input must not be modified")
}

func TestRetreatFrom(t *testing.T) {
	in := phasedTasks(true, true, true, true, true, true, true)
	out, err := RetreatFrom(in, 1)
	require.NoError(t, err)
	assert.True(t, out[0].IsCompleted)
	for _, task := range out[1:] {
		if task.Type == entities.TaskFertilizer {
			assert.True(t, task.IsCompleted)
			continue
		}
		assert.False(t, task.IsCompleted, task.TaskID)
	}
	assert.Equal(t, 1, CurrentPhase(out))
}

func TestPhaseOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 5} {
		_, err := AdvanceTo(nil, idx)
		assert.ErrorIs(t, err, ErrPhaseOutOfRange)
		_, err = RetreatFrom(nil, idx)
		assert.ErrorIs(t, err, ErrPhaseOutOfRange)
	}
}

func TestPhaseProgress(t *testing.T) {
	p := PhaseProgress(phasedTasks(true, true, true), i18n.Default(), "en")
	assert.Equal(t, 2, p.Current)
	require.Len(t, p.Phases, 5)
	assert.Equal(t, "Soil Prep", p.Phases[0].Name)
	assert.Equal(t, PhaseCompleted, p.Phases[1].State)
	assert.Equal(t, PhaseCurrent, p.Phases[2].State)
	assert.Equal(t, 2, p.Phases[2].Tasks)
	assert.Equal(t, 1, p.Phases[2].Done)
	assert.Equal(t, PhaseUpcoming, p.Phases[4].State)
}
