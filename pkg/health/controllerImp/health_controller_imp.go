package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"krishimitra/pkg/i18n"
	"krishimitra/pkg/schedule"
)

var appStart = time.Now()

type HealthCtrl struct {
	db  *gorm.DB
	cat *i18n.Catalog
	reg *schedule.Registry
}

func NewHealthCtrl(db *gorm.DB, cat *i18n.Catalog, reg *schedule.Registry) *HealthCtrl {
	return &HealthCtrl{db: db, cat: cat, reg: reg}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := sub{OK: true}
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			db = sub{Err: "db.DB(): " + err.Error()}
		} else if err := sqlDB.PingContext(ctx); err != nil {
			db = sub{Err: "ping: " + err.Error()}
		}
	} else {
		db = sub{Err: "gorm db is nil"}
	}

	labels := sub{OK: h.cat != nil && len(h.cat.Languages()) > 0}
	if !labels.OK {
		labels.Err = "no label catalog"
	}
	templates := sub{OK: h.reg != nil && h.reg.Len() > 0}
	if !templates.OK {
		templates.Err = "no schedule templates"
	}

	allOK := db.OK && labels.OK && templates.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":  db,
			"catalog":   labels,
			"templates": templates,
		},
		"time": time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
