package logging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger used across the shell
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// Options configures NewLogger
type Options struct {
	Level       string   // debug, info, warn, error
	Development bool     // console encoder, caller and stack traces on warn
	OutputPaths []string // defaults to stderr
}

// ZapLogger implements Logger on top of a zap SugaredLogger
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewDefaultLogger creates a production JSON logger at info level writing to stderr
func NewDefaultLogger() Logger {
	logger, err := NewLogger(Options{Level: "info"})
	if err != nil {
		return NewZapLogger(zap.NewNop())
	}
	return logger
}

// NewLogger builds a zap-backed logger from options
func NewLogger(opts Options) (*ZapLogger, error) {
	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if len(opts.OutputPaths) > 0 {
		cfg.OutputPaths = opts.OutputPaths
	}

	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return NewZapLogger(base), nil
}

// NewZapLogger wraps an existing zap logger
func NewZapLogger(base *zap.Logger) *ZapLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &ZapLogger{sugar: base.Sugar()}
}

// ParseLevel maps a level name to a zap level; empty means info
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// normalizeFields turns the variadic fields slice into well-formed key/value pairs.
// Expected format: key1, value1, key2, value2, ...
func normalizeFields(fields []interface{}) []interface{} {
	result := make([]interface{}, 0, len(fields)+1)

	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			if key, ok := fields[i].(string); ok {
				result = append(result, key, fields[i+1])
			} else {
				result = append(result,
					fmt.Sprintf("field_%d", i/2), fields[i],
					fmt.Sprintf("field_%d_value", i/2), fields[i+1])
			}
		} else {
			result = append(result, fmt.Sprintf("field_%d", i/2), fields[i])
		}
	}

	return result
}

func (l *ZapLogger) Debug(msg string, fields ...interface{}) {
	l.sugar.Debugw(msg, normalizeFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields ...interface{}) {
	l.sugar.Infow(msg, normalizeFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields ...interface{}) {
	l.sugar.Warnw(msg, normalizeFields(fields)...)
}

func (l *ZapLogger) Error(msg string, fields ...interface{}) {
	l.sugar.Errorw(msg, normalizeFields(fields)...)
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() error {
	return l.sugar.Sync()
}

// With returns a logger that adds fields to every entry
func With(logger Logger, fields ...interface{}) Logger {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if zl, ok := logger.(*ZapLogger); ok {
		return &ZapLogger{sugar: zl.sugar.With(normalizeFields(fields)...)}
	}
	return &fieldLogger{next: logger, fields: normalizeFields(fields)}
}

type fieldLogger struct {
	next   Logger
	fields []interface{}
}

func (f *fieldLogger) merge(fields []interface{}) []interface{} {
	merged := make([]interface{}, 0, len(f.fields)+len(fields))
	merged = append(merged, f.fields...)
	return append(merged, fields...)
}

func (f *fieldLogger) Debug(msg string, fields ...interface{}) { f.next.Debug(msg, f.merge(fields)...) }
func (f *fieldLogger) Info(msg string, fields ...interface{})  { f.next.Info(msg, f.merge(fields)...) }
func (f *fieldLogger) Warn(msg string, fields ...interface{})  { f.next.Warn(msg, f.merge(fields)...) }
func (f *fieldLogger) Error(msg string, fields ...interface{}) { f.next.Error(msg, f.merge(fields)...) }

// ShellError is the subset of errors.ShellError used for logging (avoids an import cycle)
type ShellError interface {
	Error() string
	GetCode() string
	IsRetryable() bool
	GetContext() map[string]string
	GetTimestamp() time.Time
}

// LogShellError logs an error with its classification and context
func LogShellError(logger Logger, err error, operation string, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if err == nil {
		return
	}

	var shellErr ShellError
	if errors.As(err, &shellErr) {
		fields := []interface{}{
			"operation", operation,
			"error_code", shellErr.GetCode(),
			"retryable", shellErr.IsRetryable(),
			"timestamp", shellErr.GetTimestamp(),
		}

		for k, v := range shellErr.GetContext() {
			fields = append(fields, k, v)
		}
		for k, v := range context {
			fields = append(fields, k, v)
		}

		logger.Error(fmt.Sprintf("Shell error: %s", err.Error()), fields...)
		return
	}

	fields := []interface{}{
		"operation", operation,
		"error_type", fmt.Sprintf("%T", err),
	}
	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Error(fmt.Sprintf("Unexpected error: %s", err.Error()), fields...)
}

// LogOperation logs a completed shell operation with its duration
func LogOperation(logger Logger, operation string, duration time.Duration, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	fields := []interface{}{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}
	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Info(fmt.Sprintf("Shell operation completed: %s", operation), fields...)
}
