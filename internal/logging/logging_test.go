package logging

import (
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"
)

func Test_Name2Level(
	t *testing.T,
) {

	assert.Equal(t, slog.PanicLevel, Name2Level("panic"))
	assert.Equal(t, slog.FatalLevel, Name2Level("fatal"))
	assert.Equal(t, slog.ErrorLevel, Name2Level("err"))
	assert.Equal(t, slog.ErrorLevel, Name2Level("error"))
	assert.Equal(t, slog.WarnLevel, Name2Level("warn"))
	assert.Equal(t, slog.WarnLevel, Name2Level("warning"))
	assert.Equal(t, slog.NoticeLevel, Name2Level("notice"))
	assert.Equal(t, VerboseLevel, Name2Level("verbose"))
	assert.Equal(t, slog.DebugLevel, Name2Level("debug"))
	assert.Equal(t, slog.TraceLevel, Name2Level("trace"))
	assert.Equal(t, slog.InfoLevel, Name2Level("anything_else"))
	assert.Equal(t, slog.TraceLevel, Name2Level("TRACE"))
}

func Test_New_Logger(
	t *testing.T,
) {

	logger := NewLogger("TestLogger")
	assert.NotNil(t, logger)
	assert.Equal(t, "TestLogger", logger.name)
	assert.Equal(t, slog.InfoLevel, logger.level)
}

func Test_Set_Default_Level_Applies_To_New_Loggers(
	t *testing.T,
) {

	SetDefaultLevel("debug")
	defer SetDefaultLevel("info")

	logger := NewLogger("DebugLogger")
	assert.Equal(t, slog.DebugLevel, logger.level)

	SetDefaultLevel("info")
	logger = NewLogger("InfoLogger")
	assert.Equal(t, slog.InfoLevel, logger.level)
}

func Test_Verbose_Level_Registered(
	t *testing.T,
) {

	NewLogger("Bootstrapper")
	assert.Equal(t, "VERBOSE", slog.LevelNames[VerboseLevel])
	assert.Contains(t, slog.AllLevels, VerboseLevel)
	assert.Contains(t, slog.NormalLevels, VerboseLevel)
}
