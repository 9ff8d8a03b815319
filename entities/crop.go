package entities

import "time"

type SoilType string

const (
	SoilClay  SoilType = "Clay"
	SoilSandy SoilType = "Sandy"
	SoilLoamy SoilType = "Loamy"
	SoilOther SoilType = "Other"
)

var SoilTypes = []SoilType{SoilLoamy, SoilClay, SoilSandy, SoilOther}

func (s SoilType) Valid() bool {
	for _, k := range SoilTypes {
		if k == s {
			return true
		}
	}
	return false
}

type Crop struct {
	UserID       string   `gorm:"primaryKey" json:"-"`
	CropID       string   `gorm:"primaryKey" json:"id"`
	Name         string   `json:"name"`
	NameKey      string   `json:"name_key,omitempty"` // set for predefined crops only
	CropType     string   `gorm:"index" json:"crop_type,omitempty"`
	PlantingDate Date     `gorm:"type:text" json:"planting_date"`
	HarvestDate  *Date    `gorm:"type:text" json:"harvest_date,omitempty"`
	Area         float64  `json:"area"`
	SoilType     SoilType `json:"soil_type"`
	Ordinal      int      `json:"-"`

	Tasks []FarmTask `gorm:"-" json:"tasks"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Predefined reports whether the display name is derived from a translation key.
func (c *Crop) Predefined() bool { return c.NameKey != "" }
