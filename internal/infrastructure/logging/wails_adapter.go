package logging

import wailslogger "github.com/wailsapp/wails/v2/pkg/logger"

var _ wailslogger.Logger = (*WailsLoggerAdapter)(nil)

// WailsLoggerAdapter sends Wails runtime output through the shell logger
type WailsLoggerAdapter struct {
	logger Logger
}

// NewWailsLoggerAdapter wraps logger; nil falls back to the default logger
func NewWailsLoggerAdapter(logger Logger) *WailsLoggerAdapter {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &WailsLoggerAdapter{logger: With(logger, "source", "wails")}
}

func (w *WailsLoggerAdapter) Print(message string) {
	w.logger.Info(message)
}

func (w *WailsLoggerAdapter) Trace(message string) {
	w.logger.Debug(message, "level", "trace")
}

func (w *WailsLoggerAdapter) Debug(message string) {
	w.logger.Debug(message)
}

func (w *WailsLoggerAdapter) Info(message string) {
	w.logger.Info(message)
}

func (w *WailsLoggerAdapter) Warning(message string) {
	w.logger.Warn(message)
}

func (w *WailsLoggerAdapter) Error(message string) {
	w.logger.Error(message)
}

// Fatal is logged at error level; process exit is decided by the shell, not the runtime logger
func (w *WailsLoggerAdapter) Fatal(message string) {
	w.logger.Error(message, "level", "fatal")
}
