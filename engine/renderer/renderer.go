package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backendType RendererBackendType
	backend     RendererBackend

	// mirrors receive a copy of every uniform upload after the backend.
	mirrors []UniformSink

	drawCount int
}

// Renderer is the frame-level rendering API used by packets.
//
// It forwards uniforms and draw calls to the selected backend and fans uniform uploads
// out to any mirror sinks, such as a WebGPU uniform buffer shared with other passes.
type Renderer interface {
	UniformSink
	Drawer

	// BackendType returns the type of the active backend.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// BeginFrame prepares the framebuffer and resets the per-frame draw counter.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	BeginFrame(width, height int)

	// EndFrame submits the frame to the backend.
	//
	// Returns:
	//   - error: error if the backend failed to submit or present
	EndFrame() error

	// DrawCount returns the number of successful draws since the last BeginFrame.
	//
	// Returns:
	//   - int: the draw count
	DrawCount() int

	// Release frees the backend's GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer over the given backend.
// Panics if backend is nil.
//
// Parameters:
//   - backendType: the type of the backend
//   - backend: the backend implementation
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(backendType RendererBackendType, backend RendererBackend, options ...RendererBuilderOption) Renderer {
	if backend == nil {
		panic("renderer: backend must not be nil")
	}
	r := &renderer{
		backendType: backendType,
		backend:     backend,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) BeginFrame(width, height int) {
	r.drawCount = 0
	r.backend.BeginFrame(width, height)
}

func (r *renderer) EndFrame() error {
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}

func (r *renderer) DrawCount() int {
	return r.drawCount
}

func (r *renderer) SetView(m mgl32.Mat4) error {
	return r.upload("view", m, UniformSink.SetView)
}

func (r *renderer) SetProjection(m mgl32.Mat4) error {
	return r.upload("projection", m, UniformSink.SetProjection)
}

func (r *renderer) SetModel(m mgl32.Mat4) error {
	return r.upload("model", m, UniformSink.SetModel)
}

func (r *renderer) Draw(m mesh.Mesh) error {
	if m == nil {
		return fmt.Errorf("draw: mesh is nil")
	}
	if err := r.backend.Draw(m); err != nil {
		return fmt.Errorf("draw %q: %w", m.Name(), err)
	}
	r.drawCount++
	return nil
}

func (r *renderer) Release() {
	r.backend.Release()
}

// upload sends m to the backend, then to every mirror. The first error is returned
// after all sinks have been tried.
func (r *renderer) upload(name string, m mgl32.Mat4, set func(UniformSink, mgl32.Mat4) error) error {
	var first error
	if err := set(r.backend, m); err != nil {
		first = fmt.Errorf("upload %s: %w", name, err)
	}
	for _, mirror := range r.mirrors {
		if err := set(mirror, m); err != nil && first == nil {
			first = fmt.Errorf("upload %s to mirror: %w", name, err)
		}
	}
	return first
}
