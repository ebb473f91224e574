package ulogger

import (
	"io"
	"os"
)

type Options struct {
	logLevel   string
	loggerType string
	writer     io.Writer
	skip       int
}

type Option func(*Options)

const defaultService = "stynode"

func DefaultOptions() *Options {
	return &Options{
		logLevel:   "INFO",
		loggerType: "zerolog",
		writer:     os.Stdout,
		skip:       0,
	}
}

func WithLevel(level string) Option {
	return func(o *Options) {
		o.logLevel = level
	}
}

func WithLoggerType(loggerType string) Option {
	return func(o *Options) {
		o.loggerType = loggerType
	}
}

func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.writer = w
	}
}

// WithSkipFrame sets the number of extra caller frames to skip when reporting the log site.
func WithSkipFrame(skip int) Option {
	return func(o *Options) {
		o.skip = skip
	}
}

func resolveOptions(options []Option) *Options {
	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return opts
}
