package controller

import "github.com/labstack/echo/v4"

type TaskController interface {
	List(c echo.Context) error
	Groups(c echo.Context) error
	Toggle(c echo.Context) error
}
