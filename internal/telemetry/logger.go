// Package telemetry provides the structured logger used by cmd/pjonctl.
// The strategy implementations do not log. The bus core itself never imports this
// package — it only ever calls the user's error callback (spec §4.8) — so
// wiring a logging library here does not leak into the wire-protocol core.
package telemetry

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger is the small structured-logging surface this module depends on,
// grounded on rigado-ble's log.go Logger interface.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	WithFields(fields map[string]interface{}) Logger
}

var (
	logger   Logger
	loggerMu sync.Mutex
)

// SetLogger installs a process-wide Logger.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

// GetLogger returns the process-wide Logger, building a default logrus one
// on first use.
func GetLogger() Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if logger == nil {
		logger = buildDefaultLogger()
	}
	return logger
}

type defaultLogger struct {
	*logrus.Entry
}

func buildDefaultLogger() Logger {
	l := &logrus.Logger{
		Formatter: &logrus.TextFormatter{DisableTimestamp: true},
		Level:     logrus.InfoLevel,
		Out:       os.Stderr,
		Hooks:     make(logrus.LevelHooks),
	}
	return &defaultLogger{Entry: l.WithFields(logrus.Fields{})}
}

func (d *defaultLogger) WithFields(fields map[string]interface{}) Logger {
	return &defaultLogger{Entry: d.Entry.WithFields(fields)}
}
