package app

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"

	"waitingtodo/internal/bridge"
	"waitingtodo/internal/config"
	"waitingtodo/internal/desktop"
	apperrors "waitingtodo/internal/infrastructure/errors"
	"waitingtodo/internal/infrastructure/logging"
	"waitingtodo/internal/platform"
	"waitingtodo/internal/resources"
	"waitingtodo/internal/shell"
)

const (
	// SingleInstanceID identifies the app for the Wails single-instance lock
	SingleInstanceID = "io.waitingtodo.shell"

	hideNoticeMessage = "程序仍在后台运行，点击托盘图标可重新打开窗口"
)

// App binds the shell controller to the Wails lifecycle callbacks
type App struct {
	ctx     context.Context
	cfg     *config.Config
	bundle  *resources.Bundle
	logger  logging.Logger
	bridge  *bridge.Bridge
	content shell.ContentSource

	policy     platform.ExitPolicy
	relauncher desktop.Relauncher
	notifier   shell.Notifier
	trays      shell.TrayFactory
	newRuntime func(context.Context) desktop.Runtime
	exit       func(int)

	mu         sync.RWMutex
	controller *shell.Controller
	runtime    desktop.Runtime
}

// NewApp creates the application from the loaded config and resolved resources
func NewApp(cfg *config.Config, bundle *resources.Bundle, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewDefaultLogger()
	}
	if cfg == nil || bundle == nil {
		return nil, apperrors.HandleValidationError("new_app", "config", "nil", "config and resources are required")
	}

	relauncher, err := platform.NewRelauncher()
	if err != nil {
		return nil, apperrors.NewShellError("new_app", err, apperrors.ErrCodeRelaunch)
	}

	a := &App{
		cfg:        cfg,
		bundle:     bundle,
		logger:     log,
		bridge:     bridge.New(platform.Current()),
		content:    shell.SelectContent(cfg.Mode, cfg.DevServerURL, bundle.EntryPath),
		policy:     platform.DefaultExitPolicy(),
		relauncher: relauncher,
		trays:      desktop.NewTrays(log),
		newRuntime: desktop.NewRuntime,
		exit:       os.Exit,
	}
	if cfg.NotifyOnHide {
		a.notifier = desktop.NewNotifier(cfg.Title, bundle.IconPath)
	}
	return a, nil
}

// Content returns the source the window loads
func (a *App) Content() shell.ContentSource {
	return a.content
}

// WailsOptions builds the options passed to wails.Run
func (a *App) WailsOptions() (*options.App, error) {
	assets, err := desktop.AssetOptions(a.content)
	if err != nil {
		return nil, apperrors.NewShellErrorWithContext("wails_options", err, apperrors.ErrCodeConfig, map[string]string{
			"location": a.content.Location,
		})
	}

	return &options.App{
		Title:              a.cfg.Title,
		Width:              a.cfg.Width,
		Height:             a.cfg.Height,
		AssetServer:        assets,
		Menu:               nil,
		Logger:             logging.NewWailsLoggerAdapter(a.logger),
		LogLevel:           wailsLogLevel(a.cfg.LogLevel),
		LogLevelProduction: wailsLogLevel(a.cfg.LogLevel),
		OnStartup:          a.Startup,
		OnDomReady:         a.DomReady,
		OnBeforeClose:      a.BeforeClose,
		OnShutdown:         a.Shutdown,
		Bind: []interface{}{
			a.bridge,
		},
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               SingleInstanceID,
			OnSecondInstanceLaunch: a.OnSecondInstanceLaunch,
		},
		// The Windows window icon is the executable's icon resource
		Windows: &windows.Options{
			Theme:             windows.SystemDefault,
			ZoomFactor:        1.0,
			DisableWindowIcon: false,
			OnSuspend:         func() { a.logger.Info("System suspending") },
			OnResume:          func() { a.logger.Info("System resumed") },
		},
		Linux: &linux.Options{
			Icon: a.bundle.Icon,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title: a.cfg.Title,
				Icon:  a.bundle.Icon,
			},
		},
	}, nil
}

func (a *App) shellOptions() shell.Options {
	opts := shell.Options{
		Window: shell.WindowSpec{
			Title:  a.cfg.Title,
			Width:  a.cfg.Width,
			Height: a.cfg.Height,
		},
		Content: a.content,
		Tray: shell.TraySpec{
			Icon:    a.bundle.Icon,
			Tooltip: a.cfg.TrayTooltip,
			Menu:    shell.NewMenu(a.cfg.QuitLabel, a.cfg.RestartLabel),
		},
	}
	if a.cfg.NotifyOnHide {
		opts.HideNotice = &shell.Notice{Title: a.cfg.Title, Message: hideNoticeMessage}
	}
	return opts
}

// Startup is called at application startup. A window or tray that cannot be
// created is fatal.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	rt := a.newRuntime(ctx)

	ctrl, err := shell.NewController(shell.Dependencies{
		Windows:  desktop.NewWindows(rt),
		Trays:    a.trays,
		Process:  desktop.NewProcess(rt, a.relauncher, a.logger),
		Policy:   a.policy,
		Notifier: a.notifier,
		Logger:   a.logger,
	}, a.shellOptions())
	if err == nil {
		err = ctrl.Start(ctx)
	}
	if err != nil {
		logging.LogShellError(a.logger, err, "startup", nil)
		a.exit(1)
		return
	}

	a.mu.Lock()
	a.controller = ctrl
	a.runtime = rt
	a.mu.Unlock()

	a.logger.Info("Application started",
		"mode", string(a.cfg.Mode),
		"platform", a.bridge.Platform(),
		"session_id", ctrl.SessionID())
}

func (a *App) current() (*shell.Controller, desktop.Runtime) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.controller, a.runtime
}

// DomReady installs the bridge and runs the preload module in the page
func (a *App) DomReady(ctx context.Context) {
	_, rt := a.current()
	if rt == nil {
		return
	}

	rt.WindowExecJS(a.bridge.Script())
	if strings.TrimSpace(a.bundle.Preload) != "" {
		rt.WindowExecJS(a.bundle.Preload)
	}
	a.logger.Debug("Preload injected", "path", a.bundle.PreloadPath)
}

// BeforeClose is called when the window is asked to close; returning true keeps it open
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	ctrl, _ := a.current()
	if ctrl == nil {
		return false
	}
	return ctrl.RequestClose()
}

// OnSecondInstanceLaunch brings the existing window back instead of starting another shell
func (a *App) OnSecondInstanceLaunch(data options.SecondInstanceData) {
	ctrl, _ := a.current()
	if ctrl == nil {
		return
	}

	a.logger.Info("Second instance launched",
		"args", data.Args,
		"working_directory", data.WorkingDirectory)
	ctrl.Activate()
	ctrl.SecondInstance()
}

// Shutdown is called at application termination
func (a *App) Shutdown(ctx context.Context) {
	if ctrl, _ := a.current(); ctrl != nil {
		ctrl.Stop()
	}
	a.logger.Info("Application shutdown completed")
	if s, ok := a.logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func wailsLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.DEBUG
	case "warn", "warning":
		return logger.WARNING
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}
