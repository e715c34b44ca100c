package renderer

import (
	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeGL selects the OpenGL 4.1 core backend.
	BackendTypeGL RendererBackendType = iota

	// BackendTypeWGPU selects the WebGPU backend.
	BackendTypeWGPU
)

// String returns the backend name.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeGL:
		return "gl"
	case BackendTypeWGPU:
		return "wgpu"
	default:
		return "unknown"
	}
}

// UniformSink receives the per-frame camera matrices and the per-draw model matrix.
// Matrices are column-major as produced by mgl32.
type UniformSink interface {
	// SetView uploads the view matrix.
	SetView(m mgl32.Mat4) error

	// SetProjection uploads the projection matrix, built with OpenGL clip conventions.
	SetProjection(m mgl32.Mat4) error

	// SetModel uploads the model matrix of the next draw.
	SetModel(m mgl32.Mat4) error
}

// Drawer issues the draw call of a mesh using the uniforms last uploaded.
type Drawer interface {
	// Draw renders the mesh, uploading its vertex data on first use.
	//
	// Parameters:
	//   - m: the mesh to draw
	//
	// Returns:
	//   - error: error if the mesh cannot be uploaded or drawn
	Draw(m mesh.Mesh) error
}

// RendererBackend is a complete GPU backend: it accepts uniforms, draws meshes,
// prepares the framebuffer at the start of a frame and submits it at the end.
type RendererBackend interface {
	UniformSink
	Drawer

	// BeginFrame sets the viewport and clears the color and depth buffers.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	BeginFrame(width, height int)

	// EndFrame submits the frame's draws. Backends that present through a surface
	// present here; OpenGL presents with the window's SwapBuffers instead.
	//
	// Returns:
	//   - error: error if the frame could not be submitted
	EndFrame() error

	// Release frees all GPU resources owned by the backend.
	Release()
}
