package mesh

// Attribute describes one interleaved vertex attribute, in floats.
type Attribute struct {
	// Index is the shader attribute location.
	Index uint32
	// Size is the number of float components (e.g. 3 for a position).
	Size int32
	// Offset is the attribute offset inside a vertex, in floats.
	Offset int
}

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name           string
	vertices       []float32
	stride         int
	attributes     []Attribute
	textures       []string
	boundingRadius float32
}

// Mesh is the CPU-side description of a renderable vertex buffer: interleaved float
// data, its attribute layout and the names of the textures sampled by the shader.
// Entities hold a Mesh; the renderer owns the GPU copy.
type Mesh interface {
	// Name retrieves the mesh identifier. Renderers key their GPU resources by name.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Vertices returns the interleaved vertex data.
	//
	// Returns:
	//   - []float32: the vertex data
	Vertices() []float32

	// Stride returns the number of floats per vertex.
	//
	// Returns:
	//   - int: floats per vertex
	Stride() int

	// VertexCount returns the number of complete vertices in the buffer.
	//
	// Returns:
	//   - int: the vertex count, 0 if the stride is unset
	VertexCount() int

	// Attributes returns the vertex attribute layout.
	//
	// Returns:
	//   - []Attribute: the attribute layout
	Attributes() []Attribute

	// Textures returns the texture names bound in order to texture units 0..n.
	// The names are metadata for an external texture loader; the renderer
	// backends shade procedurally and never decode them.
	//
	// Returns:
	//   - []string: the texture names
	Textures() []string

	// BoundingRadius returns the bounding sphere radius, measured as the maximum
	// vertex distance from the local origin. Used by frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh with the given options. When no bounding radius is set
// it is computed from the position attribute (the attribute at index 0).
//
// Parameters:
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the newly created mesh
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{}
	for _, option := range options {
		option(m)
	}
	if m.boundingRadius == 0 {
		m.boundingRadius = m.computeBoundingRadius()
	}
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []float32 {
	return m.vertices
}

func (m *mesh) Stride() int {
	return m.stride
}

func (m *mesh) VertexCount() int {
	if m.stride <= 0 {
		return 0
	}
	return len(m.vertices) / m.stride
}

func (m *mesh) Attributes() []Attribute {
	return m.attributes
}

func (m *mesh) Textures() []string {
	return m.textures
}

func (m *mesh) BoundingRadius() float32 {
	return m.boundingRadius
}

// computeBoundingRadius returns the largest distance of a position from the origin.
func (m *mesh) computeBoundingRadius() float32 {
	var pos *Attribute
	for i := range m.attributes {
		if m.attributes[i].Index == 0 {
			pos = &m.attributes[i]
			break
		}
	}
	if pos == nil || pos.Size < 3 {
		return 0
	}

	var maxSq float32
	for v := 0; v < m.VertexCount(); v++ {
		base := v*m.stride + pos.Offset
		x, y, z := m.vertices[base], m.vertices[base+1], m.vertices[base+2]
		if d := x*x + y*y + z*z; d > maxSq {
			maxSq = d
		}
	}
	return sqrt32(maxSq)
}
