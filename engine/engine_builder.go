package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-flipper/engine/packet"
	"github.com/Carmen-Shannon/oxy-flipper/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flipper/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfilerInterval sets how often the profiler reports.
//
// Parameters:
//   - interval: the reporting interval (default 1s)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithWindow sets the window driving the frame loop.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithPacket registers a packet at the given z-index key during engine construction.
// Packets are rendered in ascending key order.
//
// Parameters:
//   - key: the z-index determining render order (lower renders first)
//   - p: the Packet to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPacket(key int, p packet.Packet) EngineBuilderOption {
	return func(e *engine) {
		e.packets[key] = p
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameDuration(fps)
	}
}
