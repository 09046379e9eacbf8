package desktop

import (
	"context"
	"errors"
	"sync"

	"waitingtodo/internal/shell"
)

var (
	errWindowExists    = errors.New("a shell window already exists")
	errWindowDestroyed = errors.New("window has been destroyed")
)

// Windows hands out the single Wails window. Wails owns exactly one native
// window for the life of the process, so a destroyed window is only hidden and
// a later CreateWindow brings the same native window back at the configured
// title and size with fresh content. The first window takes both from the
// Wails options.
type Windows struct {
	rt Runtime

	mu      sync.Mutex
	current *Window
	created int
}

// NewWindows creates the factory for the window bound to rt
func NewWindows(rt Runtime) *Windows {
	return &Windows{rt: rt}
}

func (f *Windows) CreateWindow(ctx context.Context, spec shell.WindowSpec) (shell.Window, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current != nil && !f.current.isDestroyed() {
		return nil, errWindowExists
	}

	w := &Window{rt: f.rt, reload: f.created > 0}
	if w.reload {
		f.rt.WindowSetTitle(spec.Title)
		if spec.Width > 0 && spec.Height > 0 {
			f.rt.WindowSetSize(spec.Width, spec.Height)
		}
		w.Show()
	}
	f.created++
	f.current = w
	return w, nil
}

// Window is the Wails-backed shell window
type Window struct {
	rt     Runtime
	reload bool

	mu        sync.Mutex
	destroyed bool
	source    shell.ContentSource
}

// Load records the content source. The first window is served by the asset
// server configured from the same source; a recreated window reloads it.
func (w *Window) Load(source shell.ContentSource) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return errWindowDestroyed
	}
	w.source = source
	if w.reload {
		w.rt.WindowReloadApp()
	}
	return nil
}

func (w *Window) Show() {
	w.rt.WindowShow()
	w.rt.WindowUnminimise()
}

func (w *Window) Hide() {
	w.rt.WindowHide()
}

// Destroy hides the native window and retires this handle
func (w *Window) Destroy() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return
	}
	w.destroyed = true
	w.rt.WindowHide()
}

// Source returns the last loaded content source
func (w *Window) Source() shell.ContentSource {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.source
}

func (w *Window) isDestroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}
