package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"krishimitra/pkg/apierr"
	"krishimitra/pkg/crop/service"
	"krishimitra/pkg/farm"
	"krishimitra/pkg/phase/controller"
)

type phaseCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) controller.PhaseController { return &phaseCtrl{svc} }

func (h *phaseCtrl) Progress(c echo.Context) error {
	s, err := h.svc.State(apierr.UID(c))
	if err != nil {
		return apierr.Respond(c, err, h.svc.Labels(), "")
	}
	return h.progress(c, s, c.Param("id"))
}

func (h *phaseCtrl) progress(c echo.Context, s farm.State, id string) error {
	crop, ok := s.Crop(id)
	if !ok {
		return apierr.Respond(c, farm.ErrCropNotFound, h.svc.Labels(), s.Language)
	}
	return c.JSON(http.StatusOK, farm.PhaseProgress(crop.Tasks, h.svc.Labels(), s.Language))
}

// Advance handles a click on a phase step.
func (h *phaseCtrl) Advance(c echo.Context) error {
	return h.apply(c, func(id string, idx int) farm.Command { return farm.AdvancePhase{CropID: id, Index: idx} })
}

// Retreat handles a double click on a phase step.
func (h *phaseCtrl) Retreat(c echo.Context) error {
	return h.apply(c, func(id string, idx int) farm.Command { return farm.RetreatPhase{CropID: id, Index: idx} })
}

func (h *phaseCtrl) apply(c echo.Context, cmd func(string, int) farm.Command) error {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid phase index"})
	}
	id := c.Param("id")
	s, _, err := h.svc.Dispatch(apierr.UID(c), cmd(id, idx))
	if err != nil {
		return apierr.Respond(c, err, h.svc.Labels(), s.Language)
	}
	return h.progress(c, s, id)
}
