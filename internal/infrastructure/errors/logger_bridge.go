package errors

import (
	"fmt"

	"waitingtodo/internal/infrastructure/logging"
)

// LoggerBridge routes retry progress into the structured logger
type LoggerBridge struct {
	logger logging.Logger
}

// NewLoggerBridge creates a RetryLogger backed by logger
func NewLoggerBridge(logger logging.Logger) RetryLogger {
	return &LoggerBridge{logger: logger}
}

// Printf formats the retry message and logs it at info level under the "retry" component
func (b *LoggerBridge) Printf(format string, v ...interface{}) {
	if b.logger != nil {
		b.logger.Info(fmt.Sprintf(format, v...), "component", "retry")
	}
}

// UseLogger installs logger as the package-level retry logger
func UseLogger(logger logging.Logger) {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	SetRetryLogger(NewLoggerBridge(logger))
}
