package renderer

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	view, projection, model []mgl32.Mat4
	err                     error
}

func (s *recordingSink) SetView(m mgl32.Mat4) error {
	s.view = append(s.view, m)
	return s.err
}

func (s *recordingSink) SetProjection(m mgl32.Mat4) error {
	s.projection = append(s.projection, m)
	return s.err
}

func (s *recordingSink) SetModel(m mgl32.Mat4) error {
	s.model = append(s.model, m)
	return s.err
}

type fakeBackend struct {
	recordingSink
	drawn    []string
	frames   int
	ended    int
	released bool
	drawErr  error
	endErr   error
}

func (b *fakeBackend) Draw(m mesh.Mesh) error {
	if b.drawErr != nil {
		return b.drawErr
	}
	b.drawn = append(b.drawn, m.Name())
	return nil
}

func (b *fakeBackend) BeginFrame(width, height int) {
	b.frames++
}

func (b *fakeBackend) EndFrame() error {
	b.ended++
	return b.endErr
}

func (b *fakeBackend) Release() {
	b.released = true
}

type write struct {
	offset uint64
	data   []byte
}

type fakeQueue struct {
	writes []write
	err    error
}

func (q *fakeQueue) WriteBuffer(_ *wgpu.Buffer, offset uint64, data []byte) error {
	if q.err != nil {
		return q.err
	}
	q.writes = append(q.writes, write{offset: offset, data: append([]byte(nil), data...)})
	return nil
}

func decodeMat4(t *testing.T, data []byte) mgl32.Mat4 {
	t.Helper()
	require.Len(t, data, 64)
	var m mgl32.Mat4
	for i := range m {
		m[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return m
}

func TestNewRendererPanicsWithoutBackend(t *testing.T) {
	assert.Panics(t, func() { NewRenderer(BackendTypeGL, nil) })
}

func TestRendererForwardsToBackendAndMirrors(t *testing.T) {
	backend := &fakeBackend{}
	mirror := &recordingSink{}
	r := NewRenderer(BackendTypeGL, backend, WithUniformMirror(mirror), WithUniformMirror(nil))

	view := mgl32.Translate3D(0, 0, -3)
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	model := mgl32.Scale3D(2, 2, 2)

	require.NoError(t, r.SetView(view))
	require.NoError(t, r.SetProjection(proj))
	require.NoError(t, r.SetModel(model))

	assert.Equal(t, []mgl32.Mat4{view}, backend.view)
	assert.Equal(t, []mgl32.Mat4{proj}, backend.projection)
	assert.Equal(t, []mgl32.Mat4{model}, backend.model)
	assert.Equal(t, []mgl32.Mat4{view}, mirror.view)
	assert.Equal(t, []mgl32.Mat4{proj}, mirror.projection)
	assert.Equal(t, []mgl32.Mat4{model}, mirror.model)
	assert.Equal(t, "gl", r.BackendType().String())
}

func TestRendererMirrorErrorStillUploadsToBackend(t *testing.T) {
	backend := &fakeBackend{}
	mirror := &recordingSink{err: errors.New("device lost")}
	r := NewRenderer(BackendTypeGL, backend, WithUniformMirror(mirror))

	err := r.SetView(mgl32.Ident4())
	require.Error(t, err)
	assert.ErrorIs(t, err, mirror.err)
	assert.Len(t, backend.view, 1)
}

func TestRendererDrawCount(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(BackendTypeGL, backend)
	cube := mesh.NewCube("cube")

	r.BeginFrame(800, 600)
	require.NoError(t, r.Draw(cube))
	require.NoError(t, r.Draw(cube))
	assert.Equal(t, 2, r.DrawCount())
	assert.Equal(t, []string{"cube", "cube"}, backend.drawn)

	r.BeginFrame(800, 600)
	assert.Zero(t, r.DrawCount())
	assert.Equal(t, 2, backend.frames)

	assert.Error(t, r.Draw(nil))

	backend.drawErr = errors.New("no vao")
	err := r.Draw(cube)
	assert.ErrorIs(t, err, backend.drawErr)
	assert.Zero(t, r.DrawCount())

	r.Release()
	assert.True(t, backend.released)
}

func TestWGPUUniformSinkLayout(t *testing.T) {
	q := &fakeQueue{}
	sink := NewWGPUUniformSink(q, nil)

	view := mgl32.Translate3D(1, 2, 3)
	proj := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 100)
	model := mgl32.Scale3D(2, 3, 4)

	require.NoError(t, sink.SetView(view))
	require.NoError(t, sink.SetProjection(proj))
	require.NoError(t, sink.SetModel(model))

	require.Len(t, q.writes, 3)
	assert.Equal(t, ViewOffset, q.writes[0].offset)
	assert.Equal(t, ProjectionOffset, q.writes[1].offset)
	assert.Equal(t, ModelOffset, q.writes[2].offset)
	assert.Equal(t, uint64(192), UniformBlockSize)

	assert.Equal(t, view, decodeMat4(t, q.writes[0].data))
	assert.True(t, common.WebGPUClipCorrection.Mul4(proj).ApproxEqual(decodeMat4(t, q.writes[1].data)))
	assert.Equal(t, model, decodeMat4(t, q.writes[2].data))
}

func TestWGPUUniformSinkWrapsErrors(t *testing.T) {
	q := &fakeQueue{err: errors.New("queue closed")}
	sink := NewWGPUUniformSink(q, nil)

	err := sink.SetModel(mgl32.Ident4())
	require.Error(t, err)
	assert.ErrorIs(t, err, q.err)
	assert.Contains(t, err.Error(), "offset 128")
}

func TestBackendTypeString(t *testing.T) {
	assert.Equal(t, "wgpu", BackendTypeWGPU.String())
	assert.Equal(t, "unknown", RendererBackendType(42).String())
}

func TestRendererEndFrameWrapsBackendError(t *testing.T) {
	backend := &fakeBackend{}
	r := NewRenderer(BackendTypeWGPU, backend)

	require.NoError(t, r.EndFrame())

	backend.endErr = errors.New("surface lost")
	err := r.EndFrame()
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.endErr)
	assert.Equal(t, 2, backend.ended)
}
