package entity

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityDefaults(t *testing.T) {
	e := NewEntity(WithID(7))

	assert.Equal(t, uint64(7), e.ID())
	assert.True(t, e.Enabled())
	assert.Nil(t, e.Mesh())
	require.NotNil(t, e.Pose())
	assertMat4(t, mgl32.Ident4(), e.ModelMatrix())
}

func TestEntityWithMeshAndPose(t *testing.T) {
	cube := mesh.NewCube("cube")
	p := NewPose(WithOrigin(mgl32.Vec3{0, 1, 0}))
	e := NewEntity(WithMesh(cube), WithPose(p), WithEnabled(false))

	assert.Same(t, cube, e.Mesh())
	assert.Same(t, p, e.Pose())
	assert.False(t, e.Enabled())

	e.SetEnabled(true)
	assert.True(t, e.Enabled())
	assertMat4(t, mgl32.Translate3D(0, 1, 0), e.ModelMatrix())
}

func TestExpulse(t *testing.T) {
	e := NewEntity(WithPose(NewPose(WithScaleFactor(mgl32.Vec3{2, 2, 2}))))
	e.Expulse(0.5, mgl32.Vec3{0, 0, -4})

	assert.Equal(t, mgl32.Vec3{0, 0, -2}, e.Pose().Origin())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, e.Pose().ScaleFactor())
	assertMat4(t, mgl32.Translate3D(0, 0, -2).Mul4(mgl32.Scale3D(2, 2, 2)), e.ModelMatrix())
}
