package controller

import "github.com/labstack/echo/v4"

type SettingsController interface {
	Get(c echo.Context) error
	SetLanguage(c echo.Context) error
	Languages(c echo.Context) error
}
