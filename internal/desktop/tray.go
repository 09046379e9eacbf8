package desktop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/energye/systray"

	apperrors "waitingtodo/internal/infrastructure/errors"
	"waitingtodo/internal/infrastructure/logging"
	"waitingtodo/internal/shell"
)

const defaultTrayReadyTimeout = 5 * time.Second

var errTrayExists = errors.New("tray icon already created")

// Trays creates the process-wide tray icon with energye/systray
type Trays struct {
	log          logging.Logger
	readyTimeout time.Duration
	created      atomic.Bool
}

// NewTrays creates the tray factory
func NewTrays(logger logging.Logger) *Trays {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Trays{
		log:          logging.With(logger, "component", "tray"),
		readyTimeout: defaultTrayReadyTimeout,
	}
}

func (t *Trays) CreateTray(ctx context.Context, spec shell.TraySpec, handlers shell.TrayHandlers) (shell.Tray, error) {
	icon, err := trayIconBytes(spec.Icon)
	if err != nil {
		return nil, apperrors.NewShellError("tray_icon", err, apperrors.ErrCodeTray)
	}
	if !t.created.CompareAndSwap(false, true) {
		return nil, errTrayExists
	}

	ready := make(chan struct{})
	start, end := systray.RunWithExternalLoop(func() {
		systray.SetIcon(icon)
		systray.SetTooltip(spec.Tooltip)

		// Handlers run off the tray thread; they may block until the controller replies.
		systray.SetOnClick(func(systray.IMenu) {
			go handlers.OnClick()
		})
		systray.SetOnRClick(func(menu systray.IMenu) {
			if err := menu.ShowMenu(); err != nil {
				t.log.Warn("Failed to show tray menu", "error", err)
			}
		})

		for _, item := range spec.Menu.Items() {
			action := item.Action
			systray.AddMenuItem(item.Label, item.Label).Click(func() {
				go handlers.OnSelect(action)
			})
		}
		close(ready)
	}, func() {
		t.log.Debug("Tray loop exited")
	})

	startOnMainThread(start)

	select {
	case <-ready:
	case <-ctx.Done():
		end()
		return nil, ctx.Err()
	case <-time.After(t.readyTimeout):
		end()
		return nil, fmt.Errorf("tray not ready after %v", t.readyTimeout)
	}

	t.log.Info("Tray created", "tooltip", spec.Tooltip, "entries", len(spec.Menu.Items()))
	return &Tray{end: end}, nil
}

// Tray is the running tray icon
type Tray struct {
	end  func()
	once sync.Once
}

// Destroy removes the tray icon; safe to call more than once
func (t *Tray) Destroy() {
	t.once.Do(t.end)
}
