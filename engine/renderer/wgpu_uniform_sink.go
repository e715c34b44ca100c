package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Byte layout of the WebGPU camera/model uniform block:
//
//	struct Uniforms {
//	    view: mat4x4<f32>,       // offset 0
//	    projection: mat4x4<f32>, // offset 64
//	    model: mat4x4<f32>,      // offset 128
//	}
const (
	mat4Size uint64 = 64

	ViewOffset       uint64 = 0
	ProjectionOffset uint64 = ViewOffset + mat4Size
	ModelOffset      uint64 = ProjectionOffset + mat4Size

	// UniformBlockSize is the minimum size of the target uniform buffer.
	UniformBlockSize uint64 = ModelOffset + mat4Size
)

// QueueWriter is the subset of *wgpu.Queue used by the uniform sink.
type QueueWriter interface {
	WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error
}

// wgpuUniformSink writes camera and model matrices into a WebGPU uniform buffer.
type wgpuUniformSink struct {
	queue  QueueWriter
	buffer *wgpu.Buffer

	// base is the byte offset of the block inside buffer; the WebGPU backend moves it
	// to a new slot for every draw.
	base uint64
}

var _ UniformSink = &wgpuUniformSink{}

// NewWGPUUniformSink creates a UniformSink that writes into buffer through queue.
// Projections are converted from OpenGL clip depth [-1, 1] to the WebGPU range [0, 1]
// before upload. The buffer must be at least UniformBlockSize bytes with
// wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst.
//
// Parameters:
//   - queue: the device queue (a *wgpu.Queue)
//   - buffer: the target uniform buffer
//
// Returns:
//   - UniformSink: the sink
func NewWGPUUniformSink(queue QueueWriter, buffer *wgpu.Buffer) UniformSink {
	return &wgpuUniformSink{
		queue:  queue,
		buffer: buffer,
	}
}

func (s *wgpuUniformSink) SetView(m mgl32.Mat4) error {
	return s.write(ViewOffset, m)
}

func (s *wgpuUniformSink) SetProjection(m mgl32.Mat4) error {
	return s.write(ProjectionOffset, common.WebGPUClipCorrection.Mul4(m))
}

func (s *wgpuUniformSink) SetModel(m mgl32.Mat4) error {
	return s.write(ModelOffset, m)
}

func (s *wgpuUniformSink) write(offset uint64, m mgl32.Mat4) error {
	if err := s.queue.WriteBuffer(s.buffer, s.base+offset, common.SliceToBytes(m[:])); err != nil {
		return fmt.Errorf("write uniform at offset %d: %w", s.base+offset, err)
	}
	return nil
}
