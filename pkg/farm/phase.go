package farm

import (
	"fmt"

	"krishimitra/entities"
)

// Phases is the ordered milestone list. Fertilizer runs alongside the phases and
// has no step of its own.
var Phases = []entities.TaskType{
	entities.TaskSoilPreparation,
	entities.TaskSowing,
	entities.TaskIrrigation,
	entities.TaskWeeding,
	entities.TaskHarvesting,
}

// PhaseIndex returns the phase position of a task type, or -1.
func PhaseIndex(tt entities.TaskType) int {
	for i, p := range Phases {
		if p == tt {
			return i
		}
	}
	return -1
}

// CurrentPhase counts the leading phases whose tasks are all completed. A phase
// with no tasks counts as complete.
func CurrentPhase(tasks []entities.FarmTask) int {
	for i, p := range Phases {
		for _, t := range tasks {
			if t.Type == p && !t.IsCompleted {
				return i
			}
		}
	}
	return len(Phases)
}

func checkPhase(index int) error {
	if index < 0 || index >= len(Phases) {
		return fmt.Errorf("%w: %d", ErrPhaseOutOfRange, index)
	}
	return nil
}

// AdvanceTo completes every phased task up to and including index and clears
// the rest. Tasks outside the phase list are left alone.
func AdvanceTo(tasks []entities.FarmTask, index int) ([]entities.FarmTask, error) {
	if err := checkPhase(index); err != nil {
		return nil, err
	}
	out := make([]entities.FarmTask, len(tasks))
	for i, t := range tasks {
		if p := PhaseIndex(t.Type); p != -1 {
			t.IsCompleted = p <= index
		}
		out[i] = t
	}
	return out, nil
}

// RetreatFrom clears every phased task at or after index.
func RetreatFrom(tasks []entities.FarmTask, index int) ([]entities.FarmTask, error) {
	if err := checkPhase(index); err != nil {
		return nil, err
	}
	out := make([]entities.FarmTask, len(tasks))
	for i, t := range tasks {
		if p := PhaseIndex(t.Type); p != -1 && p >= index {
			t.IsCompleted = false
		}
		out[i] = t
	}
	return out, nil
}

type PhaseState string

const (
	PhaseCompleted PhaseState = "completed"
	PhaseCurrent   PhaseState = "current"
	PhaseUpcoming  PhaseState = "upcoming"
)

type PhaseView struct {
	Index int               `json:"index"`
	Key   entities.TaskType `json:"key"`
	Name  string            `json:"name"`
	State PhaseState        `json:"state"`
	Tasks int               `json:"tasks"`
	Done  int               `json:"done"`
}

type Progress struct {
	Current int         `json:"current"`
	Phases  []PhaseView `json:"phases"`
}

// PhaseProgress renders the progress bar for a task list.
func PhaseProgress(tasks []entities.FarmTask, labels Labeler, lang string) Progress {
	cur := CurrentPhase(tasks)
	views := make([]PhaseView, len(Phases))
	for i, p := range Phases {
		v := PhaseView{Index: i, Key: p, Name: labels.T(lang, "phase_"+string(p))}
		for _, t := range tasks {
			if t.Type == p {
				v.Tasks++
				if t.IsCompleted {
					v.Done++
				}
			}
		}
		switch {
		case i < cur:
			v.State = PhaseCompleted
		case i == cur:
			v.State = PhaseCurrent
		default:
			v.State = PhaseUpcoming
		}
		views[i] = v
	}
	return Progress{Current: cur, Phases: views}
}
