package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krishimitra/entities"
	"krishimitra/pkg/i18n"
	"krishimitra/pkg/schedule"
	"krishimitra/pkg/schedule/controller"
)

type schedCtrl struct {
	reg *schedule.Registry
	cat *i18n.Catalog
}

func New(reg *schedule.Registry, cat *i18n.Catalog) controller.ScheduleController {
	return &schedCtrl{reg, cat}
}

type templateView struct {
	CropType string                      `json:"crop_type"`
	Name     string                      `json:"name"`
	Tasks    int                         `json:"tasks"`
	Offsets  map[entities.TaskType][]int `json:"offsets"`
}

// List shows every registered schedule, named in ?lang or the browser's language.
func (h *schedCtrl) List(c echo.Context) error {
	lang, _ := c.Get("accept_lang").(string)
	if q := c.QueryParam("lang"); q != "" {
		l, err := h.cat.Normalize(q)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		lang = l
	}
	if lang == "" {
		lang = h.cat.Fallback()
	}
	out := make([]templateView, 0, h.reg.Len())
	for _, typ := range h.reg.Types() {
		tmpl, _ := h.reg.Get(typ)
		name := h.cat.T(lang, schedule.KeyFor(typ))
		if name == schedule.KeyFor(typ) {
			name = typ
		}
		out = append(out, templateView{CropType: typ, Name: name, Tasks: tmpl.Count(), Offsets: tmpl})
	}
	return c.JSON(http.StatusOK, out)
}
