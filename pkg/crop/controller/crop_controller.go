package controller

import "github.com/labstack/echo/v4"

type CropController interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	RequestDelete(c echo.Context) error
	CancelDelete(c echo.Context) error
	ConfirmDelete(c echo.Context) error
}
