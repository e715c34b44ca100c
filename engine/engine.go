package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine/input"
	"github.com/Carmen-Shannon/oxy-flipper/engine/packet"
	"github.com/Carmen-Shannon/oxy-flipper/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flipper/engine/window"
)

// engine implements the Engine interface.
// Runs input, tick, render and present on the window's thread, one frame per
// message loop iteration.
type engine struct {
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32, state input.State)
	renderCallback func(deltaTime float32)

	packets map[int]packet.Packet

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastFrame time.Time
	quit      bool
	frames    uint64
}

// Engine is the main entry point for the engine.
// It orchestrates the frame loop and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame before rendering.
	// Use this for input handling and entity updates.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds and the input snapshot of the frame
	SetTickCallback(callback func(deltaTime float32, state input.State))

	// SetRenderCallback registers the function called after all packets are rendered
	// and before the frame is presented.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddPacket registers a packet at the given z-index key.
	// Packets are rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - p: the Packet to register
	AddPacket(key int, p packet.Packet)

	// RemovePacket removes the packet at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the packet to remove
	RemovePacket(key int)

	// Packet retrieves the packet registered at the given z-index key.
	// Returns nil if no packet exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the packet to retrieve
	//
	// Returns:
	//   - packet.Packet: the packet at the key, or nil if not found
	Packet(key int) packet.Packet

	// Packets returns a copy of all registered packets keyed by z-index.
	//
	// Returns:
	//   - map[int]packet.Packet: a copy of the packets map
	Packets() map[int]packet.Packet

	// Frames returns the number of frames completed since Run started.
	Frames() uint64

	// Run starts the frame loop on the calling goroutine, which must be the one that
	// created the window. Blocks until the window closes or Quit is called.
	//
	// Returns:
	//   - error: error if the loop panicked or the window failed to close
	Run() error

	// Quit stops the loop after the current frame. Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Panics if no window is supplied.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, packets, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		packets:  make(map[int]packet.Packet),
		profiler: profiler.NewProfiler(time.Second),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		panic("engine: NewEngine requires a window (use WithWindow)")
	}
	e.window.SetResizeCallback(e.resize)

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("render loop recovered from panic", "panic", r)
			err = fmt.Errorf("render loop panic: %v", r)
		}
		if cerr := e.window.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close window: %w", cerr)
		}
	}()

	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(func() {
		now := time.Now()
		dt := float32(now.Sub(e.lastFrame).Seconds())
		e.lastFrame = now

		e.frame(dt)
		if e.quit {
			e.window.RequestClose()
			return
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
	return nil
}

func (e *engine) Quit() {
	e.quit = true
}

// frame runs one iteration: snapshot input, tick, render active packets in key
// order, submit, present, profile.
func (e *engine) frame(dt float32) {
	state := e.window.Input().Snapshot()
	if e.tickCallback != nil {
		e.tickCallback(dt, state)
	}

	active := e.activePackets()
	if len(active) > 0 {
		// the first active packet's renderer owns the framebuffer clear and submit
		active[0].Renderer().BeginFrame(e.window.Width(), e.window.Height())
		for _, p := range active {
			if err := p.Render(dt); err != nil {
				common.Logger().Error("packet render failed", "packet", p.Name(), "error", err)
			}
		}
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if len(active) > 0 {
		if err := active[0].Renderer().EndFrame(); err != nil {
			common.Logger().Error("frame submit failed", "packet", active[0].Name(), "error", err)
		}
	}
	e.window.SwapBuffers()
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// activePackets returns the active packets in ascending key order.
func (e *engine) activePackets() []packet.Packet {
	keys := make([]int, 0, len(e.packets))
	for k := range e.packets {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var active []packet.Packet
	for _, k := range keys {
		if p := e.packets[k]; p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// resize keeps every packet camera's aspect ratio in step with the framebuffer.
func (e *engine) resize(width, height int) {
	for _, p := range e.packets {
		p.Camera().Resize(float32(width), float32(height))
	}
	common.Logger().Debug("framebuffer resized", "width", width, "height", height)
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32, state input.State)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddPacket(key int, p packet.Packet) {
	e.packets[key] = p
}

func (e *engine) RemovePacket(key int) {
	delete(e.packets, key)
}

func (e *engine) Packet(key int) packet.Packet {
	return e.packets[key]
}

func (e *engine) Packets() map[int]packet.Packet {
	cp := make(map[int]packet.Packet, len(e.packets))
	for k, v := range e.packets {
		cp[k] = v
	}
	return cp
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
