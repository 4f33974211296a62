// Package logger provides the shared structured logger for guestexpect.
package logger

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance. Diagnostic output goes to stderr so
// it never interleaves with the reporter's stdout lines.
var Logger *log.Logger

func init() {
	Logger = log.New(os.Stderr)
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.WarnLevel)
}

// Configure sets the log level. The CLI flag takes precedence over the
// GUESTEXPECT_LOG_LEVEL environment variable.
func Configure(logLevel string) {
	level := logLevel
	if level == "" {
		level = os.Getenv("GUESTEXPECT_LOG_LEVEL")
	}
	Logger.SetLevel(parseLogLevel(level))
}

func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
