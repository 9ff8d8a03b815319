package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	CookieName    = "KM_UID"
	DefaultDevUID = "U_DEV_DEFAULT"
)

// DevLogin assigns a user id from the cookie, the uid query parameter, or a
// shared default, and remembers it in a cookie.
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(CookieName); err == nil {
				uid = ck.Value
			}
			if q := c.QueryParam("uid"); q != "" {
				uid = q
			}
			if uid == "" {
				uid = DefaultDevUID
			}
			c.SetCookie(&http.Cookie{Name: CookieName, Value: uid, Path: "/"})
			c.Set("uid", uid)
			return next(c)
		}
	}
}
