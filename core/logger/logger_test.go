package logger_test

import (
	"testing"

	"poewikibot/core/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("ProductionJSON", func(t *testing.T) {
		log, err := logger.New(&logger.Config{Level: "info", Format: "json"})
		assert.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("DevelopmentConsole", func(t *testing.T) {
		log, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
		assert.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("WarnLevel", func(t *testing.T) {
		log, err := logger.New(&logger.Config{Level: "warn", Format: "json"})
		assert.NoError(t, err)
		assert.False(t, log.Core().Enabled(zap.InfoLevel))
		assert.True(t, log.Core().Enabled(zap.WarnLevel))
	})

	t.Run("UnknownLevelFallsBack", func(t *testing.T) {
		log, err := logger.New(&logger.Config{Level: "chatty", Format: "json"})
		assert.NoError(t, err)
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
	})
}
