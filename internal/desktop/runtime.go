package desktop

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Runtime is the subset of the Wails runtime the shell drives
type Runtime interface {
	WindowShow()
	WindowHide()
	WindowUnminimise()
	WindowSetTitle(title string)
	WindowSetSize(width, height int)
	WindowReloadApp()
	WindowExecJS(js string)
	Quit()
}

type wailsRuntime struct {
	ctx context.Context
}

// NewRuntime binds the Wails runtime to the context passed to OnStartup
func NewRuntime(ctx context.Context) Runtime {
	return &wailsRuntime{ctx: ctx}
}

func (r *wailsRuntime) WindowShow()                 { runtime.WindowShow(r.ctx) }
func (r *wailsRuntime) WindowHide()                 { runtime.WindowHide(r.ctx) }
func (r *wailsRuntime) WindowUnminimise()           { runtime.WindowUnminimise(r.ctx) }
func (r *wailsRuntime) WindowSetTitle(title string) { runtime.WindowSetTitle(r.ctx, title) }
func (r *wailsRuntime) WindowSetSize(width, height int) {
	runtime.WindowSetSize(r.ctx, width, height)
}
func (r *wailsRuntime) WindowReloadApp()            { runtime.WindowReloadApp(r.ctx) }
func (r *wailsRuntime) WindowExecJS(js string)      { runtime.WindowExecJS(r.ctx, js) }
func (r *wailsRuntime) Quit()                       { runtime.Quit(r.ctx) }
