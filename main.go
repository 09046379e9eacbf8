package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/wailsapp/wails/v2"

	"waitingtodo/internal/app"
	"waitingtodo/internal/config"
	"waitingtodo/internal/devserver"
	apperrors "waitingtodo/internal/infrastructure/errors"
	"waitingtodo/internal/infrastructure/logging"
	"waitingtodo/internal/platform"
	"waitingtodo/internal/resources"
)

const predecessorTimeout = 10 * time.Second

func main() {
	exeDir, err := resources.ExecutableDir()
	if err != nil {
		log.Fatalf("locate executable: %v", err)
	}

	cfg, err := config.Load(exeDir)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Options{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	apperrors.UseLogger(logger)

	// A relaunched shell must not race its predecessor for the single-instance lock
	if !platform.WaitForPredecessor(predecessorTimeout) {
		err := apperrors.HandleTimeoutError("wait_for_predecessor", predecessorTimeout.String())
		logger.Warn("Previous instance still running after relaunch", "error", err)
	}

	bundle, err := resources.Resolve(exeDir, cfg)
	if err != nil {
		fatal(logger, err, "resolve_resources")
	}

	if cfg.IsDevelopment() && cfg.DevServerProbeTries > 0 {
		page, err := devserver.NewProber(logger, cfg.DevServerProbeTries).Probe(context.Background(), cfg.DevServerURL)
		if err != nil {
			// The window still opens; the page shows the server error until it comes up.
			logging.LogShellError(logger, err, "dev_server_probe", nil)
		} else if page.Title != "" {
			cfg.Title = page.Title
		}
	}

	application, err := app.NewApp(cfg, bundle, logger)
	if err != nil {
		fatal(logger, err, "new_app")
	}

	opts, err := application.WailsOptions()
	if err != nil {
		fatal(logger, err, "wails_options")
	}

	if err := wails.Run(opts); err != nil {
		fatal(logger, err, "run")
	}
}

func fatal(logger *logging.ZapLogger, err error, operation string) {
	logging.LogShellError(logger, err, operation, nil)
	_ = logger.Sync()
	os.Exit(1)
}
