package farm

import "krishimitra/entities"

// Card is everything the farm page shows for one crop.
type Card struct {
	entities.Crop
	Progress   Progress  `json:"progress"`
	Irrigation TaskGroup `json:"irrigation"`
	Fertilizer TaskGroup `json:"fertilizer"`
}

func NewCard(c entities.Crop, labels Labeler, lang string, today entities.Date) Card {
	if c.Tasks == nil {
		c.Tasks = []entities.FarmTask{}
	}
	return Card{
		Crop:       c,
		Progress:   PhaseProgress(c.Tasks, labels, lang),
		Irrigation: GroupTasks(c.Tasks, entities.TaskIrrigation, today),
		Fertilizer: GroupTasks(c.Tasks, entities.TaskFertilizer, today),
	}
}

func Cards(s State, labels Labeler, today entities.Date) []Card {
	out := make([]Card, 0, len(s.Crops))
	for _, c := range s.Crops {
		out = append(out, NewCard(c, labels, s.Language, today))
	}
	return out
}
