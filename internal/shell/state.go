package shell

// Visibility of the shell window
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

func (v Visibility) String() string {
	if v == Visible {
		return "visible"
	}
	return "hidden"
}

// Event is an OS or user signal handled by the controller
type Event int

const (
	EventCloseRequested Event = iota
	EventTrayClicked
	EventActivate
	EventSecondInstance
	EventWindowDestroyed
	EventAllWindowsClosed
)

func (e Event) String() string {
	switch e {
	case EventCloseRequested:
		return "close-requested"
	case EventTrayClicked:
		return "tray-clicked"
	case EventActivate:
		return "activate"
	case EventSecondInstance:
		return "second-instance"
	case EventWindowDestroyed:
		return "window-destroyed"
	case EventAllWindowsClosed:
		return "all-windows-closed"
	default:
		return "unknown"
	}
}

// Effect is the side effect the controller performs after a transition
type Effect int

const (
	EffectNone Effect = iota
	EffectHide
	EffectShow
	EffectCreateWindow
	EffectDestroyWindow
	EffectQuit
)

func (e Effect) String() string {
	switch e {
	case EffectHide:
		return "hide"
	case EffectShow:
		return "show"
	case EffectCreateWindow:
		return "create-window"
	case EffectDestroyWindow:
		return "destroy-window"
	case EffectQuit:
		return "quit"
	default:
		return "none"
	}
}

// Snapshot is the controller state a transition is evaluated against
type Snapshot struct {
	Visibility Visibility
	HasWindow  bool
	Quitting   bool
}

// Outcome of a transition. PreventDefault is only meaningful for EventCloseRequested.
type Outcome struct {
	Next           Snapshot
	Effect         Effect
	PreventDefault bool
}

// Transition computes the next state for ev. It has no side effects;
// keepAlive is the platform exit policy for EventAllWindowsClosed.
func Transition(s Snapshot, ev Event, keepAlive bool) Outcome {
	out := Outcome{Next: s}

	switch ev {
	case EventCloseRequested:
		// A close issued by an explicit quit goes through; every other close hides.
		if s.Quitting {
			return out
		}
		out.PreventDefault = true
		if s.HasWindow && s.Visibility == Visible {
			out.Next.Visibility = Hidden
			out.Effect = EffectHide
		}

	case EventTrayClicked:
		if s.Quitting {
			return out
		}
		switch {
		case !s.HasWindow:
			out = created(s)
		case s.Visibility == Visible:
			out.Next.Visibility = Hidden
			out.Effect = EffectHide
		default:
			out.Next.Visibility = Visible
			out.Effect = EffectShow
		}

	case EventActivate:
		if !s.Quitting && !s.HasWindow {
			out = created(s)
		}

	case EventSecondInstance:
		if s.Quitting {
			return out
		}
		if !s.HasWindow {
			return created(s)
		}
		out.Next.Visibility = Visible
		out.Effect = EffectShow

	case EventWindowDestroyed:
		if s.HasWindow {
			out.Next.HasWindow = false
			out.Next.Visibility = Hidden
			out.Effect = EffectDestroyWindow
		}

	case EventAllWindowsClosed:
		if s.HasWindow || s.Quitting || keepAlive {
			return out
		}
		out.Next.Quitting = true
		out.Effect = EffectQuit
	}

	return out
}

func created(s Snapshot) Outcome {
	s.HasWindow = true
	s.Visibility = Visible
	return Outcome{Next: s, Effect: EffectCreateWindow}
}
