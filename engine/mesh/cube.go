package mesh

// Attribute layout of the textured primitives: position at location 0, texture
// coordinates at location 2.
var (
	PositionAttribute = Attribute{Index: 0, Size: 3, Offset: 0}
	TexCoordAttribute = Attribute{Index: 2, Size: 2, Offset: 3}
)

// TexturedStride is the float count of a position + uv vertex.
const TexturedStride = 5

// CubeVertices returns a unit cube centered on the origin as 12 triangles
// (6 faces * 2 triangles * 3 vertices = 36 vertices), position + uv interleaved.
//
// Returns:
//   - []float32: the vertex data
func CubeVertices() []float32 {
	return []float32{
		// back
		-0.5, -0.5, -0.5, 0.0, 0.0,
		0.5, -0.5, -0.5, 1.0, 0.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		-0.5, 0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 0.0,
		// front
		-0.5, -0.5, 0.5, 0.0, 0.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 1.0,
		0.5, 0.5, 0.5, 1.0, 1.0,
		-0.5, 0.5, 0.5, 0.0, 1.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,
		// left
		-0.5, 0.5, 0.5, 1.0, 0.0,
		-0.5, 0.5, -0.5, 1.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,
		-0.5, 0.5, 0.5, 1.0, 0.0,
		// right
		0.5, 0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, 0.5, 0.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		// bottom
		-0.5, -0.5, -0.5, 0.0, 1.0,
		0.5, -0.5, -0.5, 1.0, 1.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		0.5, -0.5, 0.5, 1.0, 0.0,
		-0.5, -0.5, 0.5, 0.0, 0.0,
		-0.5, -0.5, -0.5, 0.0, 1.0,
		// top
		-0.5, 0.5, -0.5, 0.0, 1.0,
		0.5, 0.5, -0.5, 1.0, 1.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		0.5, 0.5, 0.5, 1.0, 0.0,
		-0.5, 0.5, 0.5, 0.0, 0.0,
		-0.5, 0.5, -0.5, 0.0, 1.0,
	}
}

// NewCube builds a textured unit cube mesh.
//
// Parameters:
//   - name: the mesh name
//   - textures: texture names sampled by the shader
//
// Returns:
//   - Mesh: the cube mesh
func NewCube(name string, textures ...string) Mesh {
	return NewMesh(
		WithName(name),
		WithVertices(CubeVertices(), TexturedStride),
		WithAttributes(PositionAttribute, TexCoordAttribute),
		WithTextures(textures...),
	)
}
