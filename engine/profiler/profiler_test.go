package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	common.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { common.SetLogger(nil) })

	clock := time.Unix(0, 0)
	p := NewProfiler(time.Second)
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	for range 29 {
		clock = clock.Add(10 * time.Millisecond)
		require.False(t, p.Tick())
	}
	assert.Zero(t, p.Last().FPS)

	clock = clock.Add(710 * time.Millisecond)
	require.True(t, p.Tick())
	assert.InDelta(t, 30.0, p.Last().FPS, 1e-6)
	assert.Contains(t, buf.String(), "[Profiler]")
	assert.Contains(t, buf.String(), "fps=30")

	// counters restart after a report
	clock = clock.Add(time.Second / 2)
	assert.False(t, p.Tick())
}

func TestNewProfilerDefaultsInterval(t *testing.T) {
	p := NewProfiler(0)
	assert.Equal(t, time.Second, p.updateInterval)
}
