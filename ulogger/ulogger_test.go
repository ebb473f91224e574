package ulogger_test

import (
	"bytes"
	"testing"

	"github.com/ordishs/gocore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stycoin/stynode/ulogger"
)

func TestNew_DefaultsToZerolog(t *testing.T) {
	logger := ulogger.New("test")

	_, ok := logger.(*ulogger.ZLoggerWrapper)
	require.True(t, ok, "expected zerolog implementation, got %T", logger)
}

func TestNew_GoCore(t *testing.T) {
	logger := ulogger.New("test", ulogger.WithLoggerType("gocore"))

	_, ok := logger.(*ulogger.GoCoreLogger)
	require.True(t, ok, "expected gocore implementation, got %T", logger)
}

func TestGoCoreLogger_LevelFixedAtCreation(t *testing.T) {
	logger := ulogger.NewGoCoreLogger("gocore-level", ulogger.WithLevel("DEBUG"))
	require.Equal(t, int(gocore.DEBUG), logger.LogLevel())

	logger.SetLogLevel("ERROR")
	assert.Equal(t, int(gocore.DEBUG), logger.LogLevel())

	child := logger.New("gocore-level-child", ulogger.WithLevel("ERROR"))
	assert.IsType(t, &ulogger.GoCoreLogger{}, child)
	assert.Equal(t, int(gocore.DEBUG), child.LogLevel())

	dup := logger.Duplicate()
	assert.Equal(t, logger.Logger, dup.(*ulogger.GoCoreLogger).Logger)
}

func TestZeroLogger_WritesToWriter(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.NewZeroLogger("chain", ulogger.WithWriter(&buf), ulogger.WithLevel("INFO"))

	logger.Infof("genesis hash %s", "000059b0")
	logger.Debugf("hidden at info level")

	out := buf.String()
	assert.Contains(t, out, "genesis hash 000059b0")
	assert.Contains(t, out, "chain")
	assert.NotContains(t, out, "hidden at info level")
}

func TestZeroLogger_SetLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected int
	}{
		{"DEBUG", int(gocore.DEBUG)},
		{"info", int(gocore.INFO)},
		{"WARN", int(gocore.WARN)},
		{"ERROR", int(gocore.ERROR)},
		{"FATAL", int(gocore.FATAL)},
		{"nonsense", int(gocore.INFO)},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := ulogger.NewZeroLogger("test", ulogger.WithWriter(&bytes.Buffer{}))
			logger.SetLogLevel(tt.level)
			assert.Equal(t, tt.expected, logger.LogLevel())
		})
	}
}

func TestZeroLogger_NewInheritsLevelAndWriter(t *testing.T) {
	var buf bytes.Buffer

	parent := ulogger.NewZeroLogger("parent", ulogger.WithWriter(&buf), ulogger.WithLevel("DEBUG"))
	child := parent.New("child")

	child.Debugf("from the child")

	assert.Equal(t, parent.LogLevel(), child.LogLevel())
	assert.Contains(t, buf.String(), "from the child")

	dup := parent.Duplicate()
	assert.Equal(t, parent.LogLevel(), dup.LogLevel())
}

func TestVerboseTestLogger(t *testing.T) {
	logger := ulogger.NewVerboseTestLogger(t)

	logger.Infof("visible with -v: %d", 1)
	assert.Equal(t, logger, logger.New("other"))
}
