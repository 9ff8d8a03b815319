package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krishimitra/entities"
	"krishimitra/pkg/apierr"
	"krishimitra/pkg/crop/service"
	"krishimitra/pkg/farm"
	"krishimitra/pkg/task/controller"
)

type taskCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) controller.TaskController { return &taskCtrl{svc} }

func (h *taskCtrl) crop(c echo.Context) (farm.State, entities.Crop, error) {
	s, err := h.svc.State(apierr.UID(c))
	if err != nil {
		return s, entities.Crop{}, err
	}
	crop, ok := s.Crop(c.Param("id"))
	if !ok {
		return s, entities.Crop{}, farm.ErrCropNotFound
	}
	return s, crop, nil
}

// List returns a crop's tasks, optionally narrowed by ?from, ?to (YYYY-MM-DD) and ?type.
func (h *taskCtrl) List(c echo.Context) error {
	s, crop, err := h.crop(c)
	if err != nil {
		return apierr.Respond(c, err, h.svc.Labels(), s.Language)
	}
	var from, to entities.Date
	if v := c.QueryParam("from"); v != "" {
		if from, err = entities.ParseDate(v); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid from"})
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if to, err = entities.ParseDate(v); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid to"})
		}
	}
	tt := entities.TaskType(c.QueryParam("type"))
	if tt != "" && !tt.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid type"})
	}
	return c.JSON(http.StatusOK, farm.FilterTasks(crop.Tasks, from, to, tt))
}

// Groups returns the irrigation and fertilizer lists split into pending and completed.
func (h *taskCtrl) Groups(c echo.Context) error {
	s, crop, err := h.crop(c)
	if err != nil {
		return apierr.Respond(c, err, h.svc.Labels(), s.Language)
	}
	labels := h.svc.Labels()
	today := h.svc.Today()
	type group struct {
		Title string `json:"title"`
		farm.TaskGroup
	}
	return c.JSON(http.StatusOK, map[string]any{
		"completed_title": labels.T(s.Language, "completed_tasks"),
		"overdue_label":   labels.T(s.Language, "overdue"),
		"groups": []group{
			{labels.T(s.Language, "irrigation_tasks"), farm.GroupTasks(crop.Tasks, entities.TaskIrrigation, today)},
			{labels.T(s.Language, "fertilizer_tasks"), farm.GroupTasks(crop.Tasks, entities.TaskFertilizer, today)},
		},
	})
}

func (h *taskCtrl) Toggle(c echo.Context) error {
	cropID := c.Param("id")
	s, _, err := h.svc.Dispatch(apierr.UID(c), farm.ToggleTask{CropID: cropID, TaskID: c.Param("task_id")})
	if err != nil {
		return apierr.Respond(c, err, h.svc.Labels(), s.Language)
	}
	crop, _ := s.Crop(cropID)
	for _, t := range crop.Tasks {
		if t.TaskID == c.Param("task_id") {
			return c.JSON(http.StatusOK, t)
		}
	}
	return apierr.Respond(c, farm.ErrTaskNotFound, h.svc.Labels(), s.Language)
}
