// Package ulogger defines the logger used across the node and its implementations.
package ulogger

// Logger is implemented by the zerolog and gocore backends and by the test loggers.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	LogLevel() int
	SetLogLevel(level string)

	// New returns a logger for another service sharing this logger's settings.
	New(service string, options ...Option) Logger
	Duplicate(options ...Option) Logger
}

// New returns a logger of the type selected by WithLoggerType. Anything other
// than "gocore" gets the zerolog implementation.
func New(service string, options ...Option) Logger {
	if resolveOptions(options).loggerType == "gocore" {
		return NewGoCoreLogger(service, options...)
	}

	return NewZeroLogger(service, options...)
}
