package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexBufferLayoutFromCube(t *testing.T) {
	layout, err := vertexBufferLayout(mesh.NewCube("cube"))
	require.NoError(t, err)

	assert.Equal(t, uint64(mesh.TexturedStride*4), layout.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, layout.StepMode)
	assert.Equal(t, []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 2},
	}, layout.Attributes)
}

func TestVertexBufferLayoutRejectsMissingInputs(t *testing.T) {
	tests := []struct {
		name string
		m    mesh.Mesh
	}{
		{
			name: "empty",
			m:    mesh.NewMesh(mesh.WithName("empty")),
		},
		{
			name: "position only",
			m: mesh.NewMesh(
				mesh.WithName("tri"),
				mesh.WithVertices([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, 3),
				mesh.WithAttributes(mesh.PositionAttribute),
			),
		},
		{
			name: "unsupported size",
			m: mesh.NewMesh(
				mesh.WithName("wide"),
				mesh.WithVertices(make([]float32, 10), 5),
				mesh.WithAttributes(mesh.Attribute{Index: 0, Size: 5, Offset: 0}),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := vertexBufferLayout(tt.m)
			assert.Error(t, err)
		})
	}
}

func TestVertexLayoutKeyDistinguishesLayouts(t *testing.T) {
	cube, err := vertexBufferLayout(mesh.NewCube("cube"))
	require.NoError(t, err)

	padded := mesh.NewMesh(
		mesh.WithName("padded"),
		mesh.WithVertices(make([]float32, 12), 6),
		mesh.WithAttributes(mesh.PositionAttribute, mesh.TexCoordAttribute),
	)
	other, err := vertexBufferLayout(padded)
	require.NoError(t, err)

	assert.Equal(t, vertexLayoutKey(cube), vertexLayoutKey(cube))
	assert.NotEqual(t, vertexLayoutKey(cube), vertexLayoutKey(other))
}

func TestChoosePresentMode(t *testing.T) {
	both := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeImmediate}

	assert.Equal(t, wgpu.PresentModeFifo, choosePresentMode(true, both))
	assert.Equal(t, wgpu.PresentModeImmediate, choosePresentMode(false, both))
	assert.Equal(t, wgpu.PresentModeFifo, choosePresentMode(false, []wgpu.PresentMode{wgpu.PresentModeFifo}))
}

func TestUniformSlots(t *testing.T) {
	assert.LessOrEqual(t, UniformBlockSize, uniformSlotStride)
	assert.Equal(t, uint64(0), slotOffset(0))
	assert.Equal(t, uint64(768), slotOffset(3))
	assert.Equal(t, uint64(3*256+192), uniformBufferSize(4))
	assert.Equal(t, UniformBlockSize, uniformBufferSize(0))
}

func TestWGPUUniformSinkWritesAtSlotBase(t *testing.T) {
	q := &fakeQueue{}
	sink := &wgpuUniformSink{queue: q, base: slotOffset(2)}

	require.NoError(t, sink.SetView(mgl32.Ident4()))
	require.NoError(t, sink.SetModel(mgl32.Translate3D(1, 0, 0)))

	require.Len(t, q.writes, 2)
	assert.Equal(t, uint64(512), q.writes[0].offset)
	assert.Equal(t, uint64(512+128), q.writes[1].offset)
	assert.Equal(t, mgl32.Translate3D(1, 0, 0), decodeMat4(t, q.writes[1].data))
}

func TestWGPUBackendOutsideFrame(t *testing.T) {
	b := &wgpuRendererBackend{}

	model := mgl32.Scale3D(2, 2, 2)
	require.NoError(t, b.SetModel(model))
	assert.Equal(t, model, b.model)

	assert.ErrorIs(t, b.Draw(mesh.NewCube("cube")), errNoFrame)
	assert.NoError(t, b.EndFrame())
}
