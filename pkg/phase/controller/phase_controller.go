package controller

import "github.com/labstack/echo/v4"

type PhaseController interface {
	Progress(c echo.Context) error
	Advance(c echo.Context) error
	Retreat(c echo.Context) error
}
