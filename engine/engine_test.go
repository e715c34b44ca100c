package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine/camera"
	"github.com/Carmen-Shannon/oxy-flipper/engine/entity"
	"github.com/Carmen-Shannon/oxy-flipper/engine/input"
	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/Carmen-Shannon/oxy-flipper/engine/packet"
	"github.com/Carmen-Shannon/oxy-flipper/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flipper/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	tracker  *input.Tracker
	update   func()
	resize   func(width, height int)
	running  bool
	closed   bool
	swaps    int
	captured bool
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{tracker: input.NewTracker(800, 600), running: true}
}

func (w *fakeWindow) SetUpdateCallback(callback func())                  { w.update = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.resize = callback }
func (w *fakeWindow) Input() *input.Tracker                              { return w.tracker }
func (w *fakeWindow) SetCursorCaptured(captured bool)                    { w.captured = captured }
func (w *fakeWindow) SwapBuffers()                                       { w.swaps++ }
func (w *fakeWindow) IsRunning() bool                                    { return w.running }
func (w *fakeWindow) RequestClose()                                      { w.running = false }
func (w *fakeWindow) Width() int                                         { return 800 }
func (w *fakeWindow) Height() int                                        { return 600 }
func (w *fakeWindow) GraphicsAPI() window.GraphicsAPI                    { return window.GraphicsAPIOpenGL }
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor         { return nil }

func (w *fakeWindow) Close() error {
	w.running = false
	w.closed = true
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for w.running {
		if w.update != nil {
			w.update()
		}
	}
}

type logRenderer struct {
	name string
	log  *[]string
}

func (r *logRenderer) SetView(mgl32.Mat4) error       { return nil }
func (r *logRenderer) SetProjection(mgl32.Mat4) error { return nil }
func (r *logRenderer) SetModel(mgl32.Mat4) error      { return nil }
func (r *logRenderer) BackendType() renderer.RendererBackendType {
	return renderer.BackendTypeGL
}
func (r *logRenderer) DrawCount() int { return 0 }
func (r *logRenderer) Release()       {}

func (r *logRenderer) BeginFrame(width, height int) {
	*r.log = append(*r.log, "begin:"+r.name)
}

func (r *logRenderer) EndFrame() error {
	*r.log = append(*r.log, "end:"+r.name)
	return nil
}

func (r *logRenderer) Draw(m mesh.Mesh) error {
	*r.log = append(*r.log, "draw:"+r.name)
	return nil
}

func newLoggedPacket(name string, log *[]string) packet.Packet {
	cube := entity.NewEntity(entity.WithMesh(mesh.NewCube("cube")))
	return packet.NewPacket(name, camera.NewCamera(), &logRenderer{name: name, log: log}, packet.WithEntities(cube))
}

func TestNewEnginePanicsWithoutWindow(t *testing.T) {
	assert.Panics(t, func() { NewEngine() })
}

func TestFrameRendersActivePacketsInKeyOrder(t *testing.T) {
	var log []string
	w := newFakeWindow()
	hidden := newLoggedPacket("hidden", &log)
	hidden.SetActive(false)

	e := NewEngine(
		WithWindow(w),
		WithPacket(5, newLoggedPacket("front", &log)),
		WithPacket(-1, newLoggedPacket("back", &log)),
		WithPacket(2, hidden),
	).(*engine)

	var got input.State
	e.SetTickCallback(func(dt float32, state input.State) {
		got = state
		log = append(log, "tick")
	})
	e.SetRenderCallback(func(dt float32) {
		log = append(log, "render")
	})

	w.tracker.KeyDown(common.KeyW)
	e.frame(0.016)

	assert.True(t, got.Pressed(common.KeyW))
	assert.Equal(t, []string{"tick", "begin:back", "draw:back", "draw:front", "render", "end:back"}, log)
	assert.Equal(t, 1, w.swaps)
	assert.Equal(t, uint64(1), e.Frames())
}

func TestRunStopsOnQuit(t *testing.T) {
	w := newFakeWindow()
	e := NewEngine(WithWindow(w), WithRenderFrameLimit(0))

	ticks := 0
	e.SetTickCallback(func(dt float32, state input.State) {
		ticks++
		assert.GreaterOrEqual(t, dt, float32(0))
		if ticks == 3 {
			e.Quit()
		}
	})

	require.NoError(t, e.Run())
	assert.Equal(t, 3, ticks)
	assert.Equal(t, uint64(3), e.Frames())
	assert.True(t, w.closed)
}

func TestRunRecoversFromPanic(t *testing.T) {
	w := newFakeWindow()
	e := NewEngine(WithWindow(w))
	e.SetTickCallback(func(dt float32, state input.State) {
		panic("boom")
	})

	err := e.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, w.closed)
}

func TestResizeUpdatesPacketCameras(t *testing.T) {
	var log []string
	w := newFakeWindow()
	p := newLoggedPacket("main", &log)
	NewEngine(WithWindow(w), WithPacket(0, p))

	require.NotNil(t, w.resize)
	w.resize(1920, 1080)
	assert.Equal(t, float32(1920), p.Camera().Width())
	assert.Equal(t, float32(1080), p.Camera().Height())
}

func TestPacketRegistry(t *testing.T) {
	var log []string
	e := NewEngine(WithWindow(newFakeWindow()))
	p := newLoggedPacket("main", &log)

	e.AddPacket(3, p)
	assert.Same(t, p, e.Packet(3))

	cp := e.Packets()
	delete(cp, 3)
	assert.NotNil(t, e.Packet(3))

	e.RemovePacket(3)
	assert.Nil(t, e.Packet(3))
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Zero(t, frameDuration(-10))
	assert.InDelta(t, 16666666, int64(frameDuration(60)), 1)
}
