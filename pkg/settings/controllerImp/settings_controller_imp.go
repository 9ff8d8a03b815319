package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krishimitra/pkg/apierr"
	"krishimitra/pkg/crop/service"
	"krishimitra/pkg/settings/controller"
)

type settingsCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) controller.SettingsController { return &settingsCtrl{svc} }

func (h *settingsCtrl) Get(c echo.Context) error {
	s, err := h.svc.State(apierr.UID(c))
	if err != nil {
		return apierr.Respond(c, err, h.svc.Labels(), "")
	}
	return c.JSON(http.StatusOK, map[string]string{"uid": apierr.UID(c), "language": s.Language})
}

// SetLanguage switches the farm's language and relabels predefined crops.
func (h *settingsCtrl) SetLanguage(c echo.Context) error {
	var body struct {
		Language string `json:"language"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := h.svc.SetLanguage(apierr.UID(c), body.Language)
	if err != nil {
		return apierr.Respond(c, err, h.svc.Labels(), s.Language)
	}
	return c.JSON(http.StatusOK, map[string]string{"uid": apierr.UID(c), "language": s.Language})
}

func (h *settingsCtrl) Languages(c echo.Context) error {
	cat := h.svc.Labels()
	suggested, _ := c.Get("accept_lang").(string)
	if suggested == "" {
		suggested = cat.Fallback()
	}
	return c.JSON(http.StatusOK, map[string]any{
		"languages": cat.Languages(),
		"default":   cat.Fallback(),
		"suggested": suggested,
	})
}
