package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("catalog loaded", slog.Int("rows", 3))
		logger.Error("export failed", slog.String("stage", "export"))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("catalog loaded"))
		assert.True(t, handler.ContainsAttr("stage", "export"))
		assert.True(t, handler.ContainsAttr("rows", int64(3)))
	})

	t.Run("filters by level", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Debug("debug")
		logger.Info("info")
		logger.Warn("warn")
		logger.Error("error")

		assert.Len(t, handler.GetRecordsByLevel(slog.LevelInfo), 1)
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
		assert.Len(t, handler.GetRecords(), 4)
	})

	t.Run("derived loggers share the sink", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With(slog.String("mode", "full")).WithGroup("stage").Info("done", slog.String("name", "report"))

		rec, ok := handler.FindMessage("done")
		require.True(t, ok)
		assert.Equal(t, "full", rec.Attrs["mode"])
		assert.Equal(t, "report", rec.Attrs["stage.name"])
	})

	t.Run("clear", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.Info("one")
		logger.Info("two")
		require.Equal(t, 2, handler.Count())

		handler.Clear()
		assert.Zero(t, handler.Count())
	})
}

func TestAssertNoErrorsPasses(t *testing.T) {
	logger, handler := NewTestLogger(t)
	logger.Warn("only a warning")
	AssertNoErrors(t, handler)
	AssertLogContains(t, handler, slog.LevelWarn, "warning")
}
