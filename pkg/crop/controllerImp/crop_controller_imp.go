package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krishimitra/pkg/apierr"
	"krishimitra/pkg/crop/controller"
	"krishimitra/pkg/crop/service"
	"krishimitra/pkg/farm"
)

type cropCtrl struct{ svc service.FarmService }

func New(svc service.FarmService) controller.CropController { return &cropCtrl{svc} }

func (h *cropCtrl) fail(c echo.Context, err error, lang string) error {
	return apierr.Respond(c, err, h.svc.Labels(), lang)
}

func (h *cropCtrl) List(c echo.Context) error {
	s, err := h.svc.State(apierr.UID(c))
	if err != nil {
		return h.fail(c, err, "")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"language":       s.Language,
		"pending_delete": s.PendingDelete,
		"crops":          farm.Cards(s, h.svc.Labels(), h.svc.Today()),
	})
}

func (h *cropCtrl) Get(c echo.Context) error {
	s, err := h.svc.State(apierr.UID(c))
	if err != nil {
		return h.fail(c, err, "")
	}
	return h.card(c, http.StatusOK, s, c.Param("id"))
}

func (h *cropCtrl) card(c echo.Context, status int, s farm.State, id string) error {
	crop, ok := s.Crop(id)
	if !ok {
		return h.fail(c, farm.ErrCropNotFound, s.Language)
	}
	return c.JSON(status, farm.NewCard(crop, h.svc.Labels(), s.Language, h.svc.Today()))
}

func (h *cropCtrl) Create(c echo.Context) error { return h.save(c, "", http.StatusCreated) }

func (h *cropCtrl) Update(c echo.Context) error { return h.save(c, c.Param("id"), http.StatusOK) }

func (h *cropCtrl) save(c echo.Context, id string, status int) error {
	var in farm.CropInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	uid := apierr.UID(c)
	s, cropID, err := h.svc.Dispatch(uid, farm.SaveCrop{ID: id, Input: in})
	if err != nil {
		return h.fail(c, err, s.Language)
	}
	return h.card(c, status, s, cropID)
}

func (h *cropCtrl) RequestDelete(c echo.Context) error {
	s, id, err := h.svc.Dispatch(apierr.UID(c), farm.RequestDelete{CropID: c.Param("id")})
	if err != nil {
		return h.fail(c, err, s.Language)
	}
	crop, _ := s.Crop(id)
	labels := h.svc.Labels()
	return c.JSON(http.StatusOK, map[string]string{
		"crop_id": id,
		"name":    crop.Name,
		"title":   labels.T(s.Language, "delete_crop_title"),
		"text":    labels.T(s.Language, "delete_crop_text"),
	})
}

func (h *cropCtrl) CancelDelete(c echo.Context) error {
	s, _, err := h.svc.Dispatch(apierr.UID(c), farm.CancelDelete{CropID: c.Param("id")})
	if err != nil {
		return h.fail(c, err, s.Language)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *cropCtrl) ConfirmDelete(c echo.Context) error {
	s, id, err := h.svc.Dispatch(apierr.UID(c), farm.ConfirmDelete{CropID: c.Param("id")})
	if err != nil {
		return h.fail(c, err, s.Language)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted", "crop_id": id})
}
