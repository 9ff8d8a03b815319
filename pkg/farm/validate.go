package farm

import (
	"strings"

	"krishimitra/entities"
)

// CropInput is the crop form as submitted. Dates are "YYYY-MM-DD".
type CropInput struct {
	Name         string   `json:"name"`
	CropType     string   `json:"crop_type,omitempty"`
	PlantingDate string   `json:"planting_date"`
	HarvestDate  string   `json:"harvest_date,omitempty"`
	Area         *float64 `json:"area"`
	SoilType     string   `json:"soil_type,omitempty"`
}

type cropFields struct {
	name     string
	cropType string
	planting entities.Date
	harvest  *entities.Date
	area     float64
	soil     entities.SoilType
}

// Validate checks every field and reports all failures at once.
func (in CropInput) Validate() error {
	_, err := in.parse()
	return err
}

func (in CropInput) parse() (cropFields, error) {
	errs := map[string]string{}
	out := cropFields{
		name:     strings.TrimSpace(in.Name),
		cropType: strings.TrimSpace(in.CropType),
		soil:     entities.SoilType(strings.TrimSpace(in.SoilType)),
	}
	if out.name == "" {
		errs["name"] = MsgRequired
	}
	switch {
	case in.Area == nil, *in.Area <= 0:
		errs["area"] = MsgInvalidArea
	default:
		out.area = *in.Area
	}

	plantingOK := false
	if s := strings.TrimSpace(in.PlantingDate); s == "" {
		errs["planting_date"] = MsgRequired
	} else if d, err := entities.ParseDate(s); err != nil {
		errs["planting_date"] = MsgInvalidDate
	} else {
		out.planting = d
		plantingOK = true
	}
	if s := strings.TrimSpace(in.HarvestDate); s != "" {
		d, err := entities.ParseDate(s)
		switch {
		case err != nil:
			errs["harvest_date"] = MsgInvalidDate
		case plantingOK && !d.After(out.planting):
			errs["harvest_date"] = MsgInvalidDate
		default:
			out.harvest = &d
		}
	}

	if out.soil == "" {
		out.soil = entities.SoilLoamy
	} else if !out.soil.Valid() {
		errs["soil_type"] = MsgInvalidSoil
	}

	if len(errs) > 0 {
		return cropFields{}, &ValidationError{Fields: errs}
	}
	return out, nil
}
