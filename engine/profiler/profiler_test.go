package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProfiler_ReportsOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewProfiler(zap.New(core))
	start := p.lastTime

	for i := 1; i < 60; i++ {
		assert.False(t, p.tickAt(start.Add(time.Duration(i)*10*time.Millisecond)))
	}
	require.True(t, p.tickAt(start.Add(time.Second)))
	assert.InDelta(t, 60.0, p.FPS(), 0.001)

	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "profiler", entries[0].LoggerName)
	assert.Contains(t, entries[0].ContextMap(), "heap_mb")
}

func TestProfiler_SetInterval(t *testing.T) {
	p := NewProfiler(nil)
	p.SetInterval(0)
	assert.Equal(t, time.Second, p.updateInterval)

	p.SetInterval(100 * time.Millisecond)
	assert.True(t, p.tickAt(p.lastTime.Add(100*time.Millisecond)))
}
