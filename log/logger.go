// Package log is the armature package logger. It wraps any unilogger.LeveledLogger; until one is set with Default(),
// New() or SetLogger(), nothing is logged at all.
package log

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/neuronlabs/uni-logger"
)

const (
	// LDEBUG is the logger DEBUG level.
	LDEBUG = unilogger.DEBUG
	// LINFO is the logger INFO level.
	LINFO = unilogger.INFO
	// LWARNING is the logger WARNING level.
	LWARNING = unilogger.WARNING
	// LERROR is the logger ERROR level.
	LERROR = unilogger.ERROR
	// LUNKNOWN is the unspecified logger level.
	LUNKNOWN = unilogger.UNKNOWN
)

// ErrUnknownLevel is returned when trying to set a level that unilogger doesn't know.
var ErrUnknownLevel = errors.New("log: unknown logger level")

var (
	logger       unilogger.LeveledLogger
	currentLevel = LINFO
)

// Default creates and sets a new unilogger.BasicLogger writing to os.Stderr.
func Default() {
	New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

// New creates a new unilogger.BasicLogger that writes to the provided 'out' io.Writer
// with the given 'prefix' and standard library 'flags', and sets it as the current logger.
func New(out io.Writer, prefix string, flags int) {
	basic := unilogger.NewBasicLogger(out, prefix, flags)
	basic.SetOutputDepth(4)
	SetLogger(basic)
}

// SetLogger sets 'l' as the current logger. Passing nil silences logging.
func SetLogger(l unilogger.LeveledLogger) {
	logger = l
	if l == nil {
		return
	}

	if lvlSetter, ok := l.(unilogger.LevelSetter); ok {
		lvlSetter.SetLevel(currentLevel)
	}

	Debugf("New logger set with level: %s", currentLevel.String())
}

// Logger returns the current logger, or nil if none is set.
func Logger() unilogger.LeveledLogger {
	return logger
}

// Level returns the current logger Level.
func Level() unilogger.Level {
	return currentLevel
}

// SetLevel sets the level for the current and any later logger.
func SetLevel(level unilogger.Level) error {
	if level == LUNKNOWN {
		return ErrUnknownLevel
	}
	currentLevel = level

	if lvlSetter, ok := logger.(unilogger.LevelSetter); ok {
		lvlSetter.SetLevel(level)
	}
	return nil
}

// ParseLevel parses a level name ("debug", "info", "warning" / "warn", "error"), case-insensitively.
func ParseLevel(name string) unilogger.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LDEBUG
	case "info":
		return LINFO
	case "warning", "warn":
		return LWARNING
	case "error":
		return LERROR
	}
	return LUNKNOWN
}

// Debugf writes the formatted LDEBUG level log.
func Debugf(format string, args ...interface{}) {
	if logger != nil {
		logger.Debugf(format, args...)
	}
}

// Infof writes the formatted LINFO level log.
func Infof(format string, args ...interface{}) {
	if logger != nil {
		logger.Infof(format, args...)
	}
}

// Warningf writes the formatted LWARNING level log.
func Warningf(format string, args ...interface{}) {
	if logger != nil {
		logger.Warningf(format, args...)
	}
}

// Errorf writes the formatted LERROR level log.
func Errorf(format string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(format, args...)
	}
}
