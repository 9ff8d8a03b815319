package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"krishimitra/pkg/apierr"
	"krishimitra/pkg/auth/controller"
	"krishimitra/pkg/crop/service"
	"krishimitra/pkg/middleware"
)

type authCtrl struct {
	svc service.FarmService
}

func NewAuthController(svc service.FarmService) controller.AuthController {
	return &authCtrl{svc: svc}
}

type session struct {
	UID      string `json:"uid"`
	Language string `json:"language"`
	Crops    int    `json:"crops"`
}

// DevLogin sets the session cookie and opens the user's farm, seeding it on a first visit.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = middleware.DefaultDevUID
	}
	c.SetCookie(&http.Cookie{Name: middleware.CookieName, Value: uid, Path: "/"})
	return h.respond(c, uid)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	return h.respond(c, apierr.UID(c))
}

func (h *authCtrl) respond(c echo.Context, uid string) error {
	s, err := h.svc.State(uid)
	if err != nil {
		return apierr.Respond(c, err, h.svc.Labels(), h.svc.Labels().Fallback())
	}
	return c.JSON(http.StatusOK, session{UID: uid, Language: s.Language, Crops: len(s.Crops)})
}
