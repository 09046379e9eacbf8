package shell

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	apperrors "waitingtodo/internal/infrastructure/errors"
	"waitingtodo/internal/infrastructure/logging"
	"waitingtodo/internal/platform"
)

var (
	// ErrAlreadyStarted is returned by a second call to Start
	ErrAlreadyStarted = errors.New("shell controller already started")
	// ErrNotRunning is returned when the dispatch loop is not serving requests
	ErrNotRunning = errors.New("shell controller not running")
)

// Dependencies are the collaborators the controller drives
type Dependencies struct {
	Windows  WindowFactory
	Trays    TrayFactory
	Process  Process
	Policy   platform.ExitPolicy // defaults to the running platform
	Notifier Notifier            // optional
	Logger   logging.Logger
}

// Notice is a desktop notification
type Notice struct {
	Title   string
	Message string
}

// Options configure the window, the tray and what the window loads
type Options struct {
	Window  WindowSpec
	Content ContentSource
	Tray    TraySpec

	// HideNotice is shown once, the first time a close request hides the window. Nil disables it.
	HideNotice *Notice
}

type request struct {
	event    Event
	action   Action
	isAction bool
	reply    chan result
}

type result struct {
	outcome Outcome
	err     error
}

// Controller owns the shell window and tray icon and serializes every event
// through a single dispatch goroutine.
type Controller struct {
	deps      Dependencies
	opts      Options
	log       logging.Logger
	sessionID string

	// Touched only by Start and the dispatch goroutine
	ctx      context.Context
	window   Window
	tray     Tray
	notified bool

	mu    sync.RWMutex
	state Snapshot

	quitting atomic.Bool
	started  atomic.Bool
	stopped  atomic.Bool

	requests chan request
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewController validates the dependencies and builds an idle controller
func NewController(deps Dependencies, opts Options) (*Controller, error) {
	switch {
	case deps.Windows == nil:
		return nil, apperrors.HandleValidationError("new_controller", "windows", "nil", "window factory is required")
	case deps.Trays == nil:
		return nil, apperrors.HandleValidationError("new_controller", "trays", "nil", "tray factory is required")
	case deps.Process == nil:
		return nil, apperrors.HandleValidationError("new_controller", "process", "nil", "process is required")
	case len(opts.Tray.Menu.items) == 0:
		return nil, apperrors.HandleValidationError("new_controller", "menu", "empty", "tray menu is required")
	}

	if deps.Policy == nil {
		deps.Policy = platform.DefaultExitPolicy()
	}
	if deps.Logger == nil {
		deps.Logger = logging.NewDefaultLogger()
	}

	sessionID := uuid.NewString()
	return &Controller{
		deps:      deps,
		opts:      opts,
		log:       logging.With(deps.Logger, "component", "shell", "session_id", sessionID),
		sessionID: sessionID,
		requests:  make(chan request),
		done:      make(chan struct{}),
	}, nil
}

// SessionID identifies this run in every log line
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Start creates the window, loads its content, creates the tray and starts
// serving events. It may be called once.
func (c *Controller) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return apperrors.HandleStateError("start", "started", ErrAlreadyStarted)
	}
	begin := time.Now()
	c.ctx = ctx

	if err := c.createWindow(); err != nil {
		c.Stop()
		return err
	}

	tray, err := c.deps.Trays.CreateTray(ctx, c.opts.Tray, TrayHandlers{
		OnClick:  c.TrayClicked,
		OnSelect: func(a Action) {
			// Relaunch failures are already logged by runAction
			if err := c.Select(a); err != nil && !apperrors.IsRelaunch(err) {
				c.log.Warn("Tray action failed", "action", a.String(), "error", err)
			}
		},
	})
	if err != nil {
		c.Stop()
		return apperrors.NewShellErrorWithContext("create_tray", err, apperrors.ErrCodeTray, map[string]string{
			"tooltip": c.opts.Tray.Tooltip,
		})
	}
	c.tray = tray

	c.wg.Add(1)
	go c.loop()

	logging.LogOperation(c.log, "start", time.Since(begin), map[string]interface{}{
		"source":   c.opts.Content.Kind.String(),
		"location": c.opts.Content.Location,
	})
	return nil
}

// Stop ends the dispatch loop and removes the tray icon
func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)
		close(c.done)
		c.wg.Wait()
		if c.tray != nil {
			c.tray.Destroy()
		}
		c.log.Info("Shell stopped")
	})
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.state
	s.Quitting = c.quitting.Load()
	return s
}

func (c *Controller) setState(s Snapshot) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Dispatch evaluates ev on the dispatch goroutine and waits for the outcome.
// A close request during an explicit quit is answered without waiting.
func (c *Controller) Dispatch(ev Event) Outcome {
	if ev == EventCloseRequested && c.quitting.Load() {
		return Outcome{Next: c.Snapshot()}
	}

	res, err := c.send(request{event: ev})
	if err != nil {
		c.log.Warn("Event dropped", "event", ev.String(), "error", err)
		return Outcome{
			Next:           c.Snapshot(),
			PreventDefault: ev == EventCloseRequested && !c.stopped.Load(),
		}
	}
	return res.outcome
}

// RequestClose handles a native close request and reports whether the close must be prevented
func (c *Controller) RequestClose() bool {
	return c.Dispatch(EventCloseRequested).PreventDefault
}

// TrayClicked toggles the window
func (c *Controller) TrayClicked() {
	c.Dispatch(EventTrayClicked)
}

// Activate recreates the window if none exists
func (c *Controller) Activate() {
	c.Dispatch(EventActivate)
}

// SecondInstance brings the window back when the app is launched again
func (c *Controller) SecondInstance() {
	c.Dispatch(EventSecondInstance)
}

// DestroyWindow destroys the window outside the close interceptor and applies the exit policy
func (c *Controller) DestroyWindow() {
	c.Dispatch(EventWindowDestroyed)
}

// Select runs a tray menu action. It returns only if the process was not terminated.
func (c *Controller) Select(a Action) error {
	res, err := c.send(request{action: a, isAction: true})
	if err != nil {
		return apperrors.NewShellError("select_"+a.String(), err, apperrors.ErrCodeState)
	}
	return res.err
}

func (c *Controller) send(req request) (result, error) {
	if !c.started.Load() {
		return result{}, ErrNotRunning
	}
	req.reply = make(chan result, 1)

	select {
	case c.requests <- req:
	case <-c.done:
		return result{}, ErrNotRunning
	}

	select {
	case res := <-req.reply:
		return res, nil
	case <-c.done:
		return result{}, ErrNotRunning
	}
}

func (c *Controller) loop() {
	defer c.wg.Done()
	for {
		select {
		case req := <-c.requests:
			var res result
			if req.isAction {
				res.err = c.runAction(req.action)
				res.outcome = Outcome{Next: c.Snapshot()}
			} else {
				res.outcome = c.handle(req.event)
			}
			req.reply <- res
		case <-c.done:
			return
		}
	}
}

func (c *Controller) handle(ev Event) Outcome {
	prev := c.Snapshot()
	out := Transition(prev, ev, c.deps.Policy.KeepAliveWithoutWindows())

	if err := c.apply(ev, out.Effect); err != nil {
		logging.LogShellError(c.log, err, ev.String(), map[string]interface{}{"effect": out.Effect.String()})
		out.Next = prev
		out.Effect = EffectNone
		return out
	}
	c.setState(out.Next)

	c.log.Debug("Shell event handled",
		"event", ev.String(),
		"from", prev.Visibility.String(),
		"to", out.Next.Visibility.String(),
		"has_window", out.Next.HasWindow,
		"effect", out.Effect.String(),
		"prevent_default", out.PreventDefault)

	if out.Effect == EffectDestroyWindow {
		c.handle(EventAllWindowsClosed)
	}
	return out
}

func (c *Controller) apply(ev Event, effect Effect) error {
	switch effect {
	case EffectHide:
		c.window.Hide()
		if ev == EventCloseRequested {
			c.noticeHidden()
		}
	case EffectShow:
		c.window.Show()
	case EffectCreateWindow:
		return c.createWindow()
	case EffectDestroyWindow:
		c.window.Destroy()
		c.window = nil
	case EffectQuit:
		c.quitting.Store(true)
		c.log.Info("No windows left, quitting")
		c.deps.Process.RequestQuit()
	}
	return nil
}

func (c *Controller) createWindow() error {
	spec := c.opts.Window
	w, err := c.deps.Windows.CreateWindow(c.ctx, spec)
	if err != nil {
		return apperrors.NewShellErrorWithContext("create_window", err, apperrors.ErrCodeWindow, map[string]string{
			"title": spec.Title,
		})
	}

	source := c.opts.Content
	if err := w.Load(source); err != nil {
		w.Destroy()
		return apperrors.NewShellErrorWithContext("load_content", err, apperrors.ErrCodeWindow, map[string]string{
			"source":   source.Kind.String(),
			"location": source.Location,
		})
	}

	c.window = w
	c.setState(Snapshot{Visibility: Visible, HasWindow: true})
	c.log.Info("Window created",
		"width", spec.Width,
		"height", spec.Height,
		"source", source.Kind.String(),
		"location", source.Location)
	return nil
}

func (c *Controller) noticeHidden() {
	if c.notified || c.opts.HideNotice == nil || c.deps.Notifier == nil {
		return
	}
	c.notified = true

	notice := *c.opts.HideNotice
	go func() {
		if err := c.deps.Notifier.Notify(notice.Title, notice.Message); err != nil {
			c.log.Warn("Failed to show notification", "error", err)
		}
	}()
}

func (c *Controller) runAction(a Action) error {
	switch a {
	case ActionQuit:
		c.quitting.Store(true)
		c.log.Info("Quit selected", "visibility", c.Snapshot().Visibility.String())
		c.deps.Process.RequestQuit()
		c.deps.Process.Exit(0)
		return nil

	case ActionRestart:
		c.log.Info("Restart selected")
		if err := c.deps.Process.Relaunch(); err != nil {
			if !apperrors.IsRelaunch(err) {
				err = apperrors.HandleRelaunchError("relaunch", "", err)
			}
			logging.LogShellError(c.log, err, "restart", nil)
			return err
		}
		c.quitting.Store(true)
		c.deps.Process.Exit(0)
		return nil

	default:
		return apperrors.HandleValidationError("select", "action", a.String(), "unknown tray action")
	}
}
