package ulogger

import (
	"sync"
	"testing"
)

// TestLogger discards everything. Use it where a test does not care about log output.
type TestLogger struct{}

func (l TestLogger) LogLevel() int {
	return 0
}

func (l TestLogger) SetLogLevel(string) {}

func (l TestLogger) Debugf(string, ...interface{}) {}

func (l TestLogger) Infof(string, ...interface{}) {}

func (l TestLogger) Warnf(string, ...interface{}) {}

func (l TestLogger) Errorf(string, ...interface{}) {}

func (l TestLogger) Fatalf(string, ...interface{}) {}

func (l TestLogger) New(string, ...Option) Logger {
	return l
}

func (l TestLogger) Duplicate(...Option) Logger {
	return l
}

// VerboseTestLogger sends every line to t.Logf so it shows up with -v.
type VerboseTestLogger struct {
	t     *testing.T
	mutex sync.Mutex
}

func NewVerboseTestLogger(t *testing.T) *VerboseTestLogger {
	return &VerboseTestLogger{t: t}
}

func (l *VerboseTestLogger) LogLevel() int {
	return 0
}

func (l *VerboseTestLogger) SetLogLevel(string) {}

func (l *VerboseTestLogger) New(string, ...Option) Logger {
	return l
}

func (l *VerboseTestLogger) Duplicate(...Option) Logger {
	return l
}

func (l *VerboseTestLogger) Debugf(format string, args ...interface{}) {
	l.log("[DEBUG] "+format, args...)
}

func (l *VerboseTestLogger) Infof(format string, args ...interface{}) {
	l.log("[INFO] "+format, args...)
}

func (l *VerboseTestLogger) Warnf(format string, args ...interface{}) {
	l.log("[WARN] "+format, args...)
}

func (l *VerboseTestLogger) Errorf(format string, args ...interface{}) {
	l.log("[ERROR] "+format, args...)
}

// Fatalf fails the test instead of exiting the process.
func (l *VerboseTestLogger) Fatalf(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.t.Fatalf("[FATAL] "+format, args...)
}

func (l *VerboseTestLogger) log(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.t.Logf(format, args...)
}
