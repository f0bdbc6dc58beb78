// Package log provides a thread-safe, structured logging infrastructure with filesystem-based persistence.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/reelctl/reelctl/filesystem"
	"github.com/reelctl/reelctl/key"
	"github.com/reelctl/reelctl/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// enabled indicates the persistent logging state for the active application instance.
// It is read from engine and dispatch goroutines, hence atomic.
var enabled atomic.Bool

// discard swallows entries built while logging is disabled.
var discard = &logrus.Logger{Out: io.Discard, Formatter: new(logrus.TextFormatter), Hooks: make(logrus.LevelHooks), Level: logrus.PanicLevel}

// Setup initializes the logging subsystem, including file handles, formatting, and severity levels based on global configuration.
// Inoperative state: If logging is disabled, all subsequent log emissions are silently discarded.
func Setup() error {
	enabled.Store(viper.GetBool(key.LogsWrite))
	if !enabled.Load() {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))

	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{PrettyPrint: true})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	parsed, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return nil
}

// Fields is an alias so callers do not need to import logrus for structured entries.
type Fields = logrus.Fields

// WithFields returns an entry carrying the given fields. The entry discards everything
// while logging is disabled.
func WithFields(fields Fields) *logrus.Entry {
	if enabled.Load() {
		return logrus.WithFields(fields)
	}
	return discard.WithFields(fields)
}

// Severity-Specific Log Emissions - these functions proxy messages to the configured backend when logging is enabled.

func Error(args ...interface{}) {
	if enabled.Load() {
		logrus.Error(args...)
	}
}
func Errorf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Errorf(format, args...)
	}
}
func Warn(args ...interface{}) {
	if enabled.Load() {
		logrus.Warn(args...)
	}
}
func Warnf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Warnf(format, args...)
	}
}
func Info(args ...interface{}) {
	if enabled.Load() {
		logrus.Info(args...)
	}
}
func Infof(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Infof(format, args...)
	}
}
func Debug(args ...interface{}) {
	if enabled.Load() {
		logrus.Debug(args...)
	}
}
func Debugf(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Debugf(format, args...)
	}
}
func Tracef(format string, args ...interface{}) {
	if enabled.Load() {
		logrus.Tracef(format, args...)
	}
}
