package ulogger

import (
	"github.com/ordishs/gocore"
)

// GoCoreLogger adapts the gocore logger to the Logger interface. gocore fixes
// the level when a logger is created, so SetLogLevel does nothing.
type GoCoreLogger struct {
	*gocore.Logger
}

func NewGoCoreLogger(service string, options ...Option) *GoCoreLogger {
	if service == "" {
		service = defaultService
	}

	level := gocore.NewLogLevelFromString(resolveOptions(options).logLevel)

	return &GoCoreLogger{gocore.Log(service, level)}
}

// New keeps the level of g; level options are ignored.
func (g *GoCoreLogger) New(service string, _ ...Option) Logger {
	return &GoCoreLogger{gocore.Log(service, g.GetLogLevel())}
}

func (g *GoCoreLogger) Duplicate(_ ...Option) Logger {
	return &GoCoreLogger{g.Logger}
}

func (g *GoCoreLogger) SetLogLevel(_ string) {}
