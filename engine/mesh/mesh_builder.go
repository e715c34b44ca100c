package mesh

import "github.com/chewxy/math32"

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithName sets the mesh identifier.
//
// Parameters:
//   - name: the mesh name
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithVertices sets the interleaved vertex data and its stride.
//
// Parameters:
//   - data: interleaved float data
//   - stride: floats per vertex
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertex data to a mesh
func WithVertices(data []float32, stride int) MeshBuilderOption {
	return func(m *mesh) {
		m.vertices = data
		m.stride = stride
	}
}

// WithAttributes sets the vertex attribute layout.
//
// Parameters:
//   - attributes: the attribute layout
//
// Returns:
//   - MeshBuilderOption: a function that applies the layout to a mesh
func WithAttributes(attributes ...Attribute) MeshBuilderOption {
	return func(m *mesh) {
		m.attributes = attributes
	}
}

// WithTextures sets the texture names, bound in order to texture units 0..n.
func WithTextures(names ...string) MeshBuilderOption {
	return func(m *mesh) {
		m.textures = names
	}
}

// WithBoundingRadius overrides the computed bounding sphere radius.
func WithBoundingRadius(radius float32) MeshBuilderOption {
	return func(m *mesh) {
		m.boundingRadius = radius
	}
}

func sqrt32(v float32) float32 {
	return math32.Sqrt(v)
}
