package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authCtrl "krishimitra/pkg/auth/controller"
	cropCtrl "krishimitra/pkg/crop/controller"
	"krishimitra/pkg/i18n"
	"krishimitra/pkg/middleware"
	phaseCtrl "krishimitra/pkg/phase/controller"
	schedCtrl "krishimitra/pkg/schedule/controller"
	settingsCtrl "krishimitra/pkg/settings/controller"
	taskCtrl "krishimitra/pkg/task/controller"
)

type Controllers struct {
	Auth     authCtrl.AuthController
	Crop     cropCtrl.CropController
	Task     taskCtrl.TaskController
	Phase    phaseCtrl.PhaseController
	Settings settingsCtrl.SettingsController
	Schedule schedCtrl.ScheduleController
	Health   interface{ Health(echo.Context) error }
}

type Options struct {
	RequireAuth bool
	Catalog     *i18n.Catalog
	Logger      *zap.Logger
}

func New(e *echo.Echo, ctl Controllers, opts Options) *echo.Echo {
	if opts.Logger != nil {
		e.Use(middleware.RequestLogger(opts.Logger))
	}
	e.Use(middleware.PreferredLanguage(opts.Catalog))
	e.GET("/health", ctl.Health.Health)
	e.GET("/i18n/languages", ctl.Settings.Languages)
	e.GET("/templates", ctl.Schedule.List)

	api := e.Group("")
	if opts.RequireAuth {
		api.Use(middleware.RequireUser())
	} else {
		api.Use(middleware.DevLogin())
		api.GET("/devlogin", ctl.Auth.DevLogin)
	}
	api.GET("/whoami", ctl.Auth.WhoAmI)

	api.GET("/settings", ctl.Settings.Get)
	api.PUT("/settings/language", ctl.Settings.SetLanguage)

	api.GET("/crops", ctl.Crop.List)
	api.POST("/crops", ctl.Crop.Create)
	api.GET("/crops/:id", ctl.Crop.Get)
	api.PUT("/crops/:id", ctl.Crop.Update)
	api.POST("/crops/:id/delete-request", ctl.Crop.RequestDelete)
	api.DELETE("/crops/:id/delete-request", ctl.Crop.CancelDelete)
	api.POST("/crops/:id/delete-confirm", ctl.Crop.ConfirmDelete)

	g := api.Group("/crops/:id")
	g.GET("/tasks", ctl.Task.List)
	g.GET("/task-groups", ctl.Task.Groups)
	g.PATCH("/tasks/:task_id/toggle", ctl.Task.Toggle)
	g.GET("/phases", ctl.Phase.Progress)
	g.POST("/phases/:index/advance", ctl.Phase.Advance)
	g.POST("/phases/:index/retreat", ctl.Phase.Retreat)
	return e
}
