package renderer

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names shared by every program used with the GL backend.
const (
	UniformView       = "view"
	UniformProjection = "projection"
	UniformModel      = "model"
)

// glMesh is the GPU copy of a mesh.
type glMesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// glRendererBackend draws meshes with a single OpenGL program.
type glRendererBackend struct {
	program    uint32
	locations  map[string]int32
	meshes     map[string]glMesh
	clearColor mgl32.Vec4
}

var _ RendererBackend = &glRendererBackend{}

// NewGLBackend initializes the OpenGL bindings for the current context, compiles and
// links the given shader sources, and enables depth testing. The GL context must be
// current on the calling thread.
//
// Parameters:
//   - vertexSource: GLSL vertex shader source
//   - fragmentSource: GLSL fragment shader source
//   - clearColor: RGBA color used by BeginFrame
//
// Returns:
//   - RendererBackend: the GL backend
//   - error: error if GL initialization or program creation fails
func NewGLBackend(vertexSource, fragmentSource string, clearColor mgl32.Vec4) (RendererBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	common.Logger().Info("OpenGL initialized", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	program, err := newProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	gl.Enable(gl.DEPTH_TEST)

	return &glRendererBackend{
		program:    program,
		locations:  make(map[string]int32),
		meshes:     make(map[string]glMesh),
		clearColor: clearColor,
	}, nil
}

func (b *glRendererBackend) BeginFrame(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(b.clearColor[0], b.clearColor[1], b.clearColor[2], b.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(b.program)
}

func (b *glRendererBackend) EndFrame() error {
	return nil
}

func (b *glRendererBackend) SetView(m mgl32.Mat4) error {
	return b.setMat4(UniformView, m)
}

func (b *glRendererBackend) SetProjection(m mgl32.Mat4) error {
	return b.setMat4(UniformProjection, m)
}

func (b *glRendererBackend) SetModel(m mgl32.Mat4) error {
	return b.setMat4(UniformModel, m)
}

func (b *glRendererBackend) Draw(m mesh.Mesh) error {
	gm, ok := b.meshes[m.Name()]
	if !ok {
		var err error
		if gm, err = uploadMesh(m); err != nil {
			return err
		}
		b.meshes[m.Name()] = gm
	}
	gl.BindVertexArray(gm.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, gm.vertexCount)
	gl.BindVertexArray(0)
	return nil
}

func (b *glRendererBackend) Release() {
	for name, gm := range b.meshes {
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteVertexArrays(1, &gm.vao)
		delete(b.meshes, name)
	}
	if b.program != 0 {
		gl.DeleteProgram(b.program)
		b.program = 0
	}
}

// setMat4 uploads a column-major matrix to the named uniform, caching its location.
func (b *glRendererBackend) setMat4(name string, m mgl32.Mat4) error {
	loc, ok := b.locations[name]
	if !ok {
		loc = gl.GetUniformLocation(b.program, gl.Str(name+"\x00"))
		b.locations[name] = loc
	}
	if loc < 0 {
		return fmt.Errorf("uniform %q not found in program", name)
	}
	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
	return nil
}

// uploadMesh copies the mesh vertices into a new VAO/VBO pair and configures its
// attribute pointers.
func uploadMesh(m mesh.Mesh) (glMesh, error) {
	if m.VertexCount() == 0 {
		return glMesh{}, fmt.Errorf("mesh %q has no vertices", m.Name())
	}
	data := m.Vertices()
	stride := int32(m.Stride() * 4)

	var gm glMesh
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)

	gl.GenBuffers(1, &gm.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	for _, attr := range m.Attributes() {
		gl.VertexAttribPointer(attr.Index, attr.Size, gl.FLOAT, false, stride, gl.PtrOffset(attr.Offset*4))
		gl.EnableVertexAttribArray(attr.Index)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gm.vertexCount = int32(m.VertexCount())
	return gm, nil
}

func newProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, fmt.Errorf("fragment shader: %w", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", logText)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
