package farm

import (
	"time"

	"krishimitra/entities"
	"krishimitra/pkg/schedule"
)

type seedCrop struct {
	id       string
	cropType string
	planting entities.Date
	harvest  entities.Date
	area     float64
	soil     entities.SoilType
}

var demoCrops = []seedCrop{
	{"1", "wheat", entities.NewDate(2023, time.November, 15), entities.NewDate(2024, time.April, 15), 5, entities.SoilLoamy},
	{"2", "sugarcane", entities.NewDate(2023, time.October, 1), entities.NewDate(2024, time.December, 1), 10, entities.SoilClay},
	{"3", "tomato", entities.NewDate(2024, time.January, 20), entities.NewDate(2024, time.May, 20), 1.5, entities.SoilSandy},
}

// SeedDefaults adds the predefined demo crops that are not already present.
type SeedDefaults struct{}

func (SeedDefaults) apply(env Env, s *State) (string, error) {
	for _, d := range demoCrops {
		if s.index(d.id) != -1 {
			continue
		}
		key := schedule.KeyFor(d.cropType)
		harvest := d.harvest
		c := entities.Crop{
			UserID:       env.UserID,
			CropID:       d.id,
			Name:         env.Labels.T(s.Language, key),
			NameKey:      key,
			CropType:     d.cropType,
			PlantingDate: d.planting,
			HarvestDate:  &harvest,
			Area:         d.area,
			SoilType:     d.soil,
			Ordinal:      nextOrdinal(s),
		}
		regenerate(env, &c, s.Language)
		s.Crops = append(s.Crops, c)
	}
	return "", nil
}
