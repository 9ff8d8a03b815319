package farm

import "krishimitra/entities"

type TaskGroup struct {
	Type      entities.TaskType `json:"type"`
	Pending   []GroupedTask     `json:"pending"`
	Completed []GroupedTask     `json:"completed"`
}

type GroupedTask struct {
	entities.FarmTask
	Overdue bool `json:"overdue"`
}

// GroupTasks splits the tasks of one category into pending and completed lists.
// A pending task due before today is flagged overdue.
func GroupTasks(tasks []entities.FarmTask, tt entities.TaskType, today entities.Date) TaskGroup {
	g := TaskGroup{Type: tt, Pending: []GroupedTask{}, Completed: []GroupedTask{}}
	for _, t := range tasks {
		if t.Type != tt {
			continue
		}
		if t.IsCompleted {
			g.Completed = append(g.Completed, GroupedTask{FarmTask: t})
			continue
		}
		g.Pending = append(g.Pending, GroupedTask{FarmTask: t, Overdue: t.DueDate.Before(today)})
	}
	return g
}

// FilterTasks keeps tasks due within [from, to] whose type is tt. Zero bounds and
// an empty type are ignored.
func FilterTasks(tasks []entities.FarmTask, from, to entities.Date, tt entities.TaskType) []entities.FarmTask {
	out := []entities.FarmTask{}
	for _, t := range tasks {
		if !from.IsZero() && t.DueDate.Before(from) {
			continue
		}
		if !to.IsZero() && t.DueDate.After(to) {
			continue
		}
		if tt != "" && t.Type != tt {
			continue
		}
		out = append(out, t)
	}
	return out
}
