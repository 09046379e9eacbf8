package desktop

import (
	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications through beeep
type Notifier struct {
	iconPath string
	notify   func(title, message, icon string) error
}

// NewNotifier sets the application name shown by the OS and uses iconPath for notifications
func NewNotifier(appName, iconPath string) *Notifier {
	if appName != "" {
		beeep.AppName = appName
	}
	return &Notifier{
		iconPath: iconPath,
		notify:   func(title, message, icon string) error { return beeep.Notify(title, message, icon) },
	}
}

func (n *Notifier) Notify(title, message string) error {
	return n.notify(title, message, n.iconPath)
}
