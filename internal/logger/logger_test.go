package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("Should enable debug when requested", func(t *testing.T) {
		lg := New("debug")
		assert.True(t, lg.Desugar().Core().Enabled(zap.DebugLevel))
	})
	t.Run("Should default to info", func(t *testing.T) {
		lg := New("verbose")
		assert.False(t, lg.Desugar().Core().Enabled(zap.DebugLevel))
		assert.True(t, lg.Desugar().Core().Enabled(zap.InfoLevel))
	})
}
