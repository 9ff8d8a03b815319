package apierr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"krishimitra/pkg/farm"
	"krishimitra/pkg/i18n"
)

// Status maps a domain error onto an HTTP status.
func Status(err error) int {
	var ve *farm.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, farm.ErrCropNotFound), errors.Is(err, farm.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, farm.ErrPhaseOutOfRange), errors.Is(err, i18n.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	case errors.Is(err, farm.ErrNoPendingDelete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as {"error": ...}. Validation failures also carry a
// "fields" map translated into lang.
func Respond(c echo.Context, err error, labels farm.Labeler, lang string) error {
	status := Status(err)
	var ve *farm.ValidationError
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve.Fields))
		for k, key := range ve.Fields {
			fields[k] = labels.T(lang, key)
		}
		return c.JSON(status, map[string]any{"error": "validation failed", "fields": fields})
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// UID reads the user id the auth middleware stored on the context.
func UID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}
