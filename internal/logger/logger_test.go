package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, mode := range []string{"development", "production", "PROD", ""} {
		t.Run(mode, func(t *testing.T) {
			log, err := New(mode)
			require.NoError(t, err)
			require.NotNil(t, log.SugaredLogger)
		})
	}
}

func TestNewLevels(t *testing.T) {
	dev, err := New("development")
	require.NoError(t, err)
	assert.True(t, dev.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))

	prod, err := New("production")
	require.NoError(t, err)
	assert.False(t, prod.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))
	assert.True(t, prod.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel))
}

func TestWithAndFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := FromCore(core).With("component", "test")

	log.Warn("orphan answers dropped", "count", 2)
	log.Debug("debug line")

	require.Equal(t, 2, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "orphan answers dropped", entry.Message)
	assert.Equal(t, zap.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "test", fields["component"])
	assert.Equal(t, int64(2), fields["count"])
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("discarded", "k", "v")
	log.Error("discarded")
	log.Sync()
}
