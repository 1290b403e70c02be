// Package log provides a simple leveled logger built on top of the standard library's slog package.
//
// By default, it configures a global logger writing JSON (or text if LOG_FORMAT=text)
// to os.Stderr. The log level is controlled globally via SetLevel() and is
// initialized from the --log-level / --debug flags in cmd/jsonimg.
//
// Use the SetOutput() function to redirect log output, primarily for testing purposes.
// It replaces the default os.Stderr writer and returns a function to restore it.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Log level constants matching slog and environment variable values.
const (
	levelDebugStr = "DEBUG"
	levelInfoStr  = "INFO"
	levelWarnStr  = "WARN"
	levelErrorStr = "ERROR"
)

var (
	mu            sync.RWMutex
	logger        *slog.Logger
	globalLeveler           = &slog.LevelVar{}
	outputWriter  io.Writer = os.Stderr
	// ErrInvalidLogLevel indicates an invalid log level string was provided.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")
	// includeTimestampsForTest forces the time attribute into JSON output.
	// Set only through SetTestModeWithTimestamps.
	includeTimestampsForTest bool
)

func init() {
	globalLeveler.Set(slog.LevelInfo)
	configureLogger()
}

// configureLogger rebuilds the handler from the current writer and LOG_FORMAT.
func configureLogger() {
	format := strings.ToLower(os.Getenv("LOG_FORMAT"))
	opts := &slog.HandlerOptions{Level: globalLeveler}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(outputWriter, opts)
	} else {
		opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
			if !includeTimestampsForTest && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
		handler = slog.NewJSONHandler(outputWriter, opts)
	}

	mu.Lock()
	logger = slog.New(handler)
	mu.Unlock()
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetOutput changes the output destination for the logger.
// It returns a function that can be called to restore the original output writer.
// This is primarily intended for testing.
func SetOutput(w io.Writer) (restore func()) {
	originalWriter := outputWriter
	outputWriter = w
	configureLogger()
	return func() {
		outputWriter = originalWriter
		configureLogger()
	}
}

// Debug logs a debug message with optional key-value pairs
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Debugf logs a printf-style debug message.
func Debugf(format string, args ...any) {
	if !IsDebugEnabled() {
		return
	}
	current().Debug(fmt.Sprintf(format, args...))
}

// Infof logs a printf-style info message.
func Infof(format string, args ...any) {
	current().Info(fmt.Sprintf(format, args...))
}

// Warnf logs a printf-style warning message.
func Warnf(format string, args ...any) {
	current().Warn(fmt.Sprintf(format, args...))
}

// Errorf logs a printf-style error message.
func Errorf(format string, args ...any) {
	current().Error(fmt.Sprintf(format, args...))
}

// IsDebugEnabled reports whether debug messages are currently emitted.
func IsDebugEnabled() bool {
	return globalLeveler.Level() <= slog.LevelDebug
}

// SetLevel allows changing the log level at runtime using the global LevelVar.
func SetLevel(level interface{}) {
	var targetSlogLevel slog.Level
	switch v := level.(type) {
	case slog.Level:
		targetSlogLevel = v
	case Level:
		targetSlogLevel = slog.Level(v)
	default:
		panic(fmt.Sprintf("SetLevel: unsupported level type %T", level))
	}
	globalLeveler.Set(targetSlogLevel)
}

// CurrentLevel returns the current slog.Level from the LevelVar
func CurrentLevel() slog.Level {
	return globalLeveler.Level()
}

// Level is a log level type compatible with slog.Level.
type Level int8

// Log level definitions.
const (
	// LevelDebug defines the debug log level.
	LevelDebug Level = Level(slog.LevelDebug)
	// LevelInfo defines the info log level.
	LevelInfo Level = Level(slog.LevelInfo)
	// LevelWarn defines the warn log level.
	LevelWarn Level = Level(slog.LevelWarn)
	// LevelError defines the error log level.
	LevelError Level = Level(slog.LevelError)
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return levelDebugStr
	case LevelInfo:
		return levelInfoStr
	case LevelWarn:
		return levelWarnStr
	case LevelError:
		return levelErrorStr
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string and returns the corresponding Level.
// Unknown strings return LevelInfo together with an error wrapping ErrInvalidLogLevel.
func ParseLevel(levelStr string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case levelDebugStr:
		return LevelDebug, nil
	case levelInfoStr:
		return LevelInfo, nil
	case levelWarnStr, "WARNING":
		return LevelWarn, nil
	case levelErrorStr:
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLogLevel, levelStr)
	}
}

// SetTestModeWithTimestamps controls whether timestamps are included in JSON logs.
// This is intended ONLY for use by test helpers (e.g., testutil.CaptureJSONLogs).
func SetTestModeWithTimestamps(enabled bool) {
	includeTimestampsForTest = enabled
	configureLogger()
}
