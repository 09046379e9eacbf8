package shell

import (
	"context"
	"slices"
)

// WindowSpec describes the shell window
type WindowSpec struct {
	Title  string
	Width  int
	Height int
}

// Window is the native top-level window
type Window interface {
	Load(source ContentSource) error
	Show()
	Hide()
	Destroy()
}

// WindowFactory creates the shell window; the returned window is visible
type WindowFactory interface {
	CreateWindow(ctx context.Context, spec WindowSpec) (Window, error)
}

// Action is a tray menu action
type Action int

const (
	ActionQuit Action = iota
	ActionRestart
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// MenuItem is one tray menu entry
type MenuItem struct {
	Label  string
	Action Action
}

// Menu is the immutable tray menu: Quit then Restart
type Menu struct {
	items []MenuItem
}

// NewMenu builds the tray menu with the given labels
func NewMenu(quitLabel, restartLabel string) Menu {
	return Menu{items: []MenuItem{
		{Label: quitLabel, Action: ActionQuit},
		{Label: restartLabel, Action: ActionRestart},
	}}
}

// Items returns a copy of the entries in display order
func (m Menu) Items() []MenuItem {
	return slices.Clone(m.items)
}

// TraySpec describes the tray icon
type TraySpec struct {
	Icon    []byte
	Tooltip string
	Menu    Menu
}

// TrayHandlers receive tray input; they may be called from any goroutine
type TrayHandlers struct {
	OnClick  func()
	OnSelect func(Action)
}

// Tray is the system tray icon
type Tray interface {
	Destroy()
}

// TrayFactory creates the tray icon and its menu
type TrayFactory interface {
	CreateTray(ctx context.Context, spec TraySpec, handlers TrayHandlers) (Tray, error)
}

// Process controls the lifetime of the running process
type Process interface {
	// RequestQuit asks the runtime to shut down gracefully; it must not block
	RequestQuit()
	// Relaunch starts a successor process
	Relaunch() error
	Exit(code int)
}

// Notifier shows a desktop notification
type Notifier interface {
	Notify(title, message string) error
}
