package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireUser reads the user id from the X-User-Id header or the session cookie
// and answers 401 when neither is present.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := c.Request().Header.Get("X-User-Id")
			if uid == "" {
				if ck, err := c.Cookie(CookieName); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user id"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

const headerAcceptLanguage = "Accept-Language"

// Languager picks a supported language from an Accept-Language value.
type Languager interface {
	Match(accept string) string
}

// PreferredLanguage stores the browser's preferred supported language under "accept_lang".
func PreferredLanguage(l Languager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("accept_lang", l.Match(c.Request().Header.Get(headerAcceptLanguage)))
			return next(c)
		}
	}
}
