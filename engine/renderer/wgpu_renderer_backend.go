package renderer

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// uniformSlotStride is the distance between per-draw uniform blocks. 256 bytes is
	// the largest minUniformBufferOffsetAlignment WebGPU permits, so every adapter accepts it.
	uniformSlotStride uint64 = 256

	// DefaultMaxDrawsPerFrame is the number of per-draw uniform slots allocated by
	// NewWGPUBackend.
	DefaultMaxDrawsPerFrame = 1024
)

// errNoFrame is returned by Draw outside BeginFrame/EndFrame, or when BeginFrame
// could not acquire a surface texture.
var errNoFrame = errors.New("no frame in progress")

// wgpuMesh is the GPU copy of a mesh.
type wgpuMesh struct {
	buffer      *wgpu.Buffer
	vertexCount uint32
	layout      wgpu.VertexBufferLayout
	layoutKey   string
}

// wgpuRendererBackend draws meshes with one WGSL shader into a GLFW window surface.
//
// Every draw gets its own uniform slot: the view, projection and model matrices are
// written through a wgpuUniformSink at slot*uniformSlotStride and bound with a
// dynamic offset, so writes queued during the frame never overwrite each other
// before the single submit in EndFrame.
type wgpuRendererBackend struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	presentMode   wgpu.PresentMode
	width, height int
	depthTexture  *wgpu.Texture
	depthView     *wgpu.TextureView
	clearColor    wgpu.Color

	shader          *wgpu.ShaderModule
	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	pipelines       map[string]*wgpu.RenderPipeline

	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup
	uniforms      *wgpuUniformSink
	maxDraws      int
	slot          int

	view, projection, model mgl32.Mat4

	meshes map[string]wgpuMesh

	// Frame state for batching all draw calls into a single submission.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackend{}

// NewWGPUBackend creates a WebGPU device for the given window surface, configures the
// surface, and builds the uniform buffer, bind group and shader used by every draw.
// Must be called on the thread that owns the window.
//
// Parameters:
//   - surfaceDescriptor: the window's surface descriptor (window.Window.SurfaceDescriptor)
//   - width, height: initial framebuffer size in pixels
//   - clearColor: RGBA color used to clear each frame
//   - vsync: present with FIFO when true, immediate when supported otherwise
//
// Returns:
//   - RendererBackend: the WebGPU backend
//   - error: error if no adapter, device or pipeline resource could be created
func NewWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, clearColor mgl32.Vec4, vsync bool) (RendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("wgpu backend: nil surface descriptor (window must be created with GraphicsAPIWebGPU)")
	}
	runtime.LockOSThread()

	b := &wgpuRendererBackend{
		instance:   wgpu.CreateInstance(nil),
		clearColor: wgpu.Color{R: float64(clearColor[0]), G: float64(clearColor[1]), B: float64(clearColor[2]), A: float64(clearColor[3])},
		pipelines:  make(map[string]*wgpu.RenderPipeline),
		meshes:     make(map[string]wgpuMesh),
		maxDraws:   DefaultMaxDrawsPerFrame,
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		model:      mgl32.Ident4(),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Flipper Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 || len(capabilities.AlphaModes) == 0 {
		b.Release()
		return nil, errors.New("surface is not compatible with the adapter")
	}
	b.surfaceFormat = capabilities.Formats[0]
	b.alphaMode = capabilities.AlphaModes[0]
	b.presentMode = choosePresentMode(vsync, capabilities.PresentModes)

	if err := b.configureSurface(width, height); err != nil {
		b.Release()
		return nil, err
	}
	if err := b.createUniforms(); err != nil {
		b.Release()
		return nil, err
	}
	if err := b.createShader(DefaultWGSLShader); err != nil {
		b.Release()
		return nil, err
	}

	common.Logger().Info("WebGPU initialized",
		"format", b.surfaceFormat,
		"present_mode", b.presentMode,
		"width", width,
		"height", height,
	)
	return b, nil
}

func (b *wgpuRendererBackend) BeginFrame(width, height int) {
	b.slot = 0
	if b.frameSurface != nil {
		common.Logger().Error("wgpu begin frame: previous frame surface not yet presented")
		return
	}
	if width > 0 && height > 0 && (width != b.width || height != b.height) {
		if err := b.configureSurface(width, height); err != nil {
			common.Logger().Error("wgpu resize failed", "width", width, "height", height, "error", err)
			return
		}
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		common.Logger().Error("wgpu acquire surface texture", "error", err)
		return
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		common.Logger().Error("wgpu create surface view", "error", err)
		return
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		common.Logger().Error("wgpu create command encoder", "error", err)
		return
	}

	b.framePass = encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: b.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view
}

func (b *wgpuRendererBackend) SetView(m mgl32.Mat4) error {
	b.view = m
	return nil
}

func (b *wgpuRendererBackend) SetProjection(m mgl32.Mat4) error {
	b.projection = m
	return nil
}

func (b *wgpuRendererBackend) SetModel(m mgl32.Mat4) error {
	b.model = m
	return nil
}

func (b *wgpuRendererBackend) Draw(m mesh.Mesh) error {
	if b.framePass == nil {
		return errNoFrame
	}
	if b.slot >= b.maxDraws {
		return fmt.Errorf("draw limit of %d per frame reached", b.maxDraws)
	}

	wm, err := b.uploadMesh(m)
	if err != nil {
		return err
	}
	pipeline, err := b.pipelineFor(wm)
	if err != nil {
		return err
	}

	b.uniforms.base = slotOffset(b.slot)
	if err := b.uniforms.SetView(b.view); err != nil {
		return err
	}
	if err := b.uniforms.SetProjection(b.projection); err != nil {
		return err
	}
	if err := b.uniforms.SetModel(b.model); err != nil {
		return err
	}

	b.framePass.SetPipeline(pipeline)
	b.framePass.SetBindGroup(0, b.bindGroup, []uint32{uint32(b.uniforms.base)})
	b.framePass.SetVertexBuffer(0, wm.buffer, 0, wgpu.WholeSize)
	b.framePass.Draw(wm.vertexCount, 1, 0, 0)
	b.slot++
	return nil
}

func (b *wgpuRendererBackend) EndFrame() error {
	if b.framePass == nil {
		return nil
	}
	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameSurface()
		return fmt.Errorf("finish command encoder: %w", err)
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	b.releaseFrameSurface()
	return nil
}

func (b *wgpuRendererBackend) Release() {
	for name, wm := range b.meshes {
		wm.buffer.Release()
		delete(b.meshes, name)
	}
	for key, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, key)
	}
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.uniformBuffer != nil {
		b.uniformBuffer.Release()
		b.uniformBuffer = nil
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
		b.pipelineLayout = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	if b.shader != nil {
		b.shader.Release()
		b.shader = nil
	}
	b.releaseDepth()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// configureSurface (re)configures the swapchain and rebuilds the depth texture for
// the given framebuffer size.
func (b *wgpuRendererBackend) configureSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   b.alphaMode,
	})

	b.releaseDepth()
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		return fmt.Errorf("create depth view: %w", err)
	}
	b.depthTexture = depthTexture
	b.depthView = depthView
	b.width, b.height = width, height
	return nil
}

// createUniforms allocates the per-draw uniform slots and the bind group that exposes
// one UniformBlockSize window of them at a dynamic offset.
func (b *wgpuRendererBackend) createUniforms() error {
	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Uniforms Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
					MinBindingSize:   UniformBlockSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	b.bindGroupLayout = layout

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Flipper Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	b.uniformBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Uniforms Buffer",
		Size:  uniformBufferSize(b.maxDraws),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create uniform buffer: %w", err)
	}

	b.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Uniforms Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  b.uniformBuffer,
				Offset:  0,
				Size:    UniformBlockSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}

	b.uniforms = &wgpuUniformSink{queue: b.queue, buffer: b.uniformBuffer}
	return nil
}

func (b *wgpuRendererBackend) createShader(source string) error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Flipper Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	b.shader = module
	return nil
}

// uploadMesh returns the cached GPU copy of m, creating its vertex buffer on first use.
func (b *wgpuRendererBackend) uploadMesh(m mesh.Mesh) (wgpuMesh, error) {
	if wm, ok := b.meshes[m.Name()]; ok {
		return wm, nil
	}
	layout, err := vertexBufferLayout(m)
	if err != nil {
		return wgpuMesh{}, err
	}

	data := common.SliceToBytes(m.Vertices())
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Vertex Buffer",
		Size:  uint64(len(data)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return wgpuMesh{}, fmt.Errorf("create vertex buffer: %w", err)
	}
	if err := b.queue.WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return wgpuMesh{}, fmt.Errorf("write vertex buffer: %w", err)
	}

	wm := wgpuMesh{
		buffer:      buf,
		vertexCount: uint32(m.VertexCount()),
		layout:      layout,
		layoutKey:   vertexLayoutKey(layout),
	}
	b.meshes[m.Name()] = wm
	return wm, nil
}

// pipelineFor returns the render pipeline for the mesh's vertex layout, creating it on
// first use.
func (b *wgpuRendererBackend) pipelineFor(wm wgpuMesh) (*wgpu.RenderPipeline, error) {
	if p, ok := b.pipelines[wm.layoutKey]; ok {
		return p, nil
	}

	p, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Flipper Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     b.shader,
			EntryPoint: wgslVertexEntry,
			Buffers:    []wgpu.VertexBufferLayout{wm.layout},
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.shader,
			EntryPoint: wgslFragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	b.pipelines[wm.layoutKey] = p
	return p, nil
}

func (b *wgpuRendererBackend) releaseDepth() {
	if b.depthView != nil {
		b.depthView.Release()
		b.depthView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackend) releaseFrameSurface() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

// slotOffset returns the byte offset of a per-draw uniform slot.
func slotOffset(slot int) uint64 {
	return uint64(slot) * uniformSlotStride
}

// uniformBufferSize returns the size of a uniform buffer holding maxDraws slots. The
// last slot only needs room for one block.
func uniformBufferSize(maxDraws int) uint64 {
	if maxDraws < 1 {
		maxDraws = 1
	}
	return slotOffset(maxDraws-1) + UniformBlockSize
}

// choosePresentMode maps the vsync setting to a present mode the surface supports.
// FIFO is always available, so it is the fallback.
func choosePresentMode(vsync bool, supported []wgpu.PresentMode) wgpu.PresentMode {
	if vsync {
		return wgpu.PresentModeFifo
	}
	for _, mode := range supported {
		if mode == wgpu.PresentModeImmediate {
			return mode
		}
	}
	return wgpu.PresentModeFifo
}

// vertexFormat maps an attribute's float component count to a WebGPU vertex format.
func vertexFormat(size int32) (wgpu.VertexFormat, error) {
	switch size {
	case 1:
		return wgpu.VertexFormatFloat32, nil
	case 2:
		return wgpu.VertexFormatFloat32x2, nil
	case 3:
		return wgpu.VertexFormatFloat32x3, nil
	case 4:
		return wgpu.VertexFormatFloat32x4, nil
	default:
		return 0, fmt.Errorf("unsupported attribute size %d", size)
	}
}

// vertexBufferLayout converts the mesh's interleaved float layout into a WebGPU
// vertex buffer layout. The mesh must provide the position (location 0, 3 floats)
// and texture coordinate (location 2, 2 floats) inputs of DefaultWGSLShader.
func vertexBufferLayout(m mesh.Mesh) (wgpu.VertexBufferLayout, error) {
	if m.VertexCount() == 0 {
		return wgpu.VertexBufferLayout{}, fmt.Errorf("mesh %q has no vertices", m.Name())
	}

	inputs := map[uint32]int32{}
	attrs := make([]wgpu.VertexAttribute, 0, len(m.Attributes()))
	for _, a := range m.Attributes() {
		format, err := vertexFormat(a.Size)
		if err != nil {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("mesh %q location %d: %w", m.Name(), a.Index, err)
		}
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.Offset) * 4,
			ShaderLocation: a.Index,
		})
		inputs[a.Index] = a.Size
	}
	if inputs[wgslPositionLocation] != 3 || inputs[wgslTexCoordLocation] != 2 {
		return wgpu.VertexBufferLayout{}, fmt.Errorf("mesh %q needs a vec3 position at location %d and a vec2 texture coordinate at location %d",
			m.Name(), wgslPositionLocation, wgslTexCoordLocation)
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(m.Stride()) * 4,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}

// vertexLayoutKey identifies a vertex layout for pipeline caching.
func vertexLayoutKey(layout wgpu.VertexBufferLayout) string {
	key := fmt.Sprintf("stride=%d", layout.ArrayStride)
	for _, a := range layout.Attributes {
		key += fmt.Sprintf(";%d:%d@%d", a.ShaderLocation, a.Format, a.Offset)
	}
	return key
}
