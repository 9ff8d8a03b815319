package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"krishimitra/config"
	"krishimitra/database"
	"krishimitra/pkg/i18n"
	"krishimitra/pkg/logger"
	"krishimitra/pkg/schedule"
	"krishimitra/router"

	// Auth
	authCtrlImp "krishimitra/pkg/auth/controllerImp"

	// Crops, tasks, phases
	cropCtrlImp "krishimitra/pkg/crop/controllerImp"
	cropRepoImp "krishimitra/pkg/crop/repositoryImp"
	cropSvcImp "krishimitra/pkg/crop/serviceImp"
	phaseCtrlImp "krishimitra/pkg/phase/controllerImp"
	taskCtrlImp "krishimitra/pkg/task/controllerImp"

	// Settings + templates
	schedCtrlImp "krishimitra/pkg/schedule/controllerImp"
	settingsCtrlImp "krishimitra/pkg/settings/controllerImp"
	settingsRepoImp "krishimitra/pkg/settings/repositoryImp"

	// Health
	healthCtrlImp "krishimitra/pkg/health/controllerImp"
)

var (
	cfg config.AppConfig
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "krishimitra",
	Short:         "Krishi Mitra farm task tracker",
	Long:          "Serves the My Farm API: crops, dated task schedules and phase progress.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		if log, err = logger.New(cfg.LogLevel, cfg.LogFormat); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, templatesCmd, previewCmd)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadTemplates() (*schedule.Registry, error) {
	reg, err := schedule.LoadFromFiles(cfg.ScheduleCSV, cfg.ScheduleXLSX)
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}
	return reg, nil
}

func serve(ctx context.Context) error {
	// 1) Catalog + schedule templates
	cat := i18n.Default()
	lang, err := cat.Normalize(cfg.DefaultLang)
	if err != nil {
		log.Warn("unsupported DEFAULT_LANG, using fallback", zap.String("lang", cfg.DefaultLang), zap.String("fallback", cat.Fallback()))
		lang = cat.Fallback()
	}
	reg, err := loadTemplates()
	if err != nil {
		return err
	}
	log.Info("schedules loaded", zap.Strings("crop_types", reg.Types()))

	// 2) DB (sqlite) + automigrate
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}

	// 3) Repos/Service
	svc := cropSvcImp.NewFarmService(
		cropRepoImp.New(db),
		settingsRepoImp.New(db),
		reg,
		cat,
		log,
		cropSvcImp.Options{DefaultLang: lang, SeedDemo: cfg.SeedDemo, Location: cfg.Location()},
	)

	// 4) Echo + router
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	router.New(e, router.Controllers{
		Auth:     authCtrlImp.NewAuthController(svc),
		Crop:     cropCtrlImp.New(svc),
		Task:     taskCtrlImp.New(svc),
		Phase:    phaseCtrlImp.New(svc),
		Settings: settingsCtrlImp.New(svc),
		Schedule: schedCtrlImp.New(reg, cat),
		Health:   healthCtrlImp.NewHealthCtrl(db, cat, reg),
	}, router.Options{RequireAuth: cfg.RequireAuth, Catalog: cat, Logger: log})

	// 5) Start
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Port), zap.String("db", cfg.DBPath), zap.Bool("require_auth", cfg.RequireAuth))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}
