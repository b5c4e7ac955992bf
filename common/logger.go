package common

import (
	"fmt"
	"os"
)

// Logger represents a minimal levelled logger
type Logger interface {
	// Debugf handles debug level messages
	Debugf(format string, args ...interface{})
	// Infof handles info level messages
	Infof(format string, args ...interface{})
	// Warnf handles warn level messages
	Warnf(format string, args ...interface{})
	// Errorf handles error level messages
	Errorf(format string, args ...interface{})
	// Fatalf handles fatal level messages, and must exit the application
	Fatalf(format string, args ...interface{})
	// Panicf handles debug level messages, and must panic the application
	Panicf(format string, args ...interface{})
}

// StubLogger satisfies the Logger interface, and simply does nothing with
// received messages
type StubLogger struct{}

// Debugf handles debug level messages
func (l *StubLogger) Debugf(format string, args ...interface{}) {}

// Infof handles info level messages
func (l *StubLogger) Infof(format string, args ...interface{}) {}

// Warnf handles warn level messages
func (l *StubLogger) Warnf(format string, args ...interface{}) {}

// Errorf handles error level messages
func (l *StubLogger) Errorf(format string, args ...interface{}) {}

// Fatalf handles fatal level messages, exits the application
func (l *StubLogger) Fatalf(format string, args ...interface{}) {
	os.Exit(1)
}

// Panicf handles debug level messages, and panics the application
func (l *StubLogger) Panicf(format string, args ...interface{}) {
	panic(fmt.Sprintf(format, args...))
}

type logPrefixer struct {
	log    Logger
	prefix string
}

// Debugf handles debug level messages, prefixing them
func (l *logPrefixer) Debugf(format string, args ...interface{}) {
	l.log.Debugf(l.prefix+format, args...)
}

// Infof handles info level messages, prefixing them
func (l *logPrefixer) Infof(format string, args ...interface{}) {
	l.log.Infof(l.prefix+format, args...)
}

// Warnf handles warn level messages, prefixing them
func (l *logPrefixer) Warnf(format string, args ...interface{}) {
	l.log.Warnf(l.prefix+format, args...)
}

// Errorf handles error level messages, prefixing them
func (l *logPrefixer) Errorf(format string, args ...interface{}) {
	l.log.Errorf(l.prefix+format, args...)
}

// Fatalf handles fatal level messages, prefixing them
func (l *logPrefixer) Fatalf(format string, args ...interface{}) {
	l.log.Fatalf(l.prefix+format, args...)
}

// Panicf handles debug level messages, prefixing them
func (l *logPrefixer) Panicf(format string, args ...interface{}) {
	l.log.Panicf(l.prefix+format, args...)
}

// Prefixed wraps logger so that every message is tagged with `[prefix] `.  A
// nil logger is replaced with a StubLogger.
func Prefixed(logger Logger, prefix string) Logger {
	if logger == nil {
		logger = new(StubLogger)
	}
	return &logPrefixer{log: logger, prefix: `[` + prefix + `] `}
}

// LoggerOrStub returns logger, or a StubLogger when logger is nil
func LoggerOrStub(logger Logger) Logger {
	if logger == nil {
		return new(StubLogger)
	}
	return logger
}
