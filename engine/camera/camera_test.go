package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func assertVec3(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], tol, "component %d of %v vs %v", i, expected, actual)
	}
}

func assertOrthonormal(t *testing.T, c Camera) {
	t.Helper()
	d, r, u := c.Direction(), c.Right(), c.Up()
	assert.InDelta(t, 1.0, d.Len(), tol)
	assert.InDelta(t, 1.0, r.Len(), tol)
	assert.InDelta(t, 1.0, u.Len(), tol)
	assert.InDelta(t, 0.0, d.Dot(r), tol)
	assert.InDelta(t, 0.0, d.Dot(u), tol)
	assert.InDelta(t, 0.0, r.Dot(u), tol)
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assertVec3(t, mgl32.Vec3{0, 0, 3}, c.Position())
	assertVec3(t, mgl32.Vec3{0, 0, 1}, c.Direction())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.Equal(t, float32(45), c.Fov())
	assert.Equal(t, float32(800), c.Width())
	assert.Equal(t, float32(600), c.Height())

	expected := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)
	assert.True(t, expected.ApproxEqualThreshold(c.ProjectionMatrix(), tol))
}

func TestBasisIsOrthonormal(t *testing.T) {
	c := NewCamera()
	pairs := [][2]mgl32.Vec3{
		{{0, 0, 3}, {0, 0, 0}},
		{{5, 2, -1}, {0, 1, 0}},
		{{-3, 7, 4}, {1, -2, 0.5}},
		{{0.1, 0.1, 0.1}, {10, -10, 3}},
	}
	for _, p := range pairs {
		c.LookAt(p[0], p[1])
		assertOrthonormal(t, c)
		dir := p[0].Sub(p[1]).Normalize()
		assertVec3(t, dir, c.Direction())

		c.RefreshView()
		assertOrthonormal(t, c)
	}
}

func TestCreateViewMapsTargetOntoViewAxis(t *testing.T) {
	c := NewCamera(WithPosition(4, 3, 2), WithTarget(-1, 0, 1))
	view := c.CreateView()

	assert.True(t, mgl32.LookAtV(c.Position(), c.Target(), c.UpHint()).ApproxEqualThreshold(view, tol))

	eye := view.Mul4x1(c.Position().Vec4(1)).Vec3()
	assertVec3(t, mgl32.Vec3{}, eye)

	tgt := view.Mul4x1(c.Target().Vec4(1)).Vec3()
	assert.InDelta(t, 0.0, tgt.X(), tol)
	assert.InDelta(t, 0.0, tgt.Y(), tol)
	assert.Less(t, tgt.Z(), float32(0), "target lies in front of the camera on -Z")
}

func TestFovClamp(t *testing.T) {
	c := NewCamera()

	c.SetProjection(800, 600, 0.1, 100, 90)
	assert.Equal(t, MaxFov, c.Fov())

	c.SetProjection(800, 600, 0.1, 100, 0)
	assert.Equal(t, MinFov, c.Fov())

	c.Zoom(90)
	assert.Equal(t, MaxFov, c.Fov())

	c.Zoom(0)
	assert.Equal(t, MinFov, c.Fov())

	c.Zoom(60)
	assert.Equal(t, float32(60), c.Fov())

	assert.Equal(t, MaxFov, NewCamera(WithFov(120)).Fov())
}

func TestSetProjectionStoresParameters(t *testing.T) {
	c := NewCamera()
	proj := c.SetProjection(1920, 1080, 0.5, 500, 60)

	assert.Equal(t, float32(1920), c.Width())
	assert.Equal(t, float32(1080), c.Height())
	assert.Equal(t, float32(0.5), c.Near())
	assert.Equal(t, float32(500), c.Far())
	expected := mgl32.Perspective(mgl32.DegToRad(60), 1920.0/1080.0, 0.5, 500)
	assert.True(t, expected.ApproxEqualThreshold(proj, tol))
	assert.Equal(t, proj, c.ProjectionMatrix())

	// zoom reuses the stored viewport and clip planes
	c.Zoom(30)
	expected = mgl32.Perspective(mgl32.DegToRad(30), 1920.0/1080.0, 0.5, 500)
	assert.True(t, expected.ApproxEqualThreshold(c.ProjectionMatrix(), tol))

	c.Resize(1000, 1000)
	expected = mgl32.Perspective(mgl32.DegToRad(30), 1, 0.5, 500)
	assert.True(t, expected.ApproxEqualThreshold(c.ProjectionMatrix(), tol))
}

func TestMoveForwardBackwardRoundTrip(t *testing.T) {
	for _, mode := range []MoveMode{MoveModeNormal, MoveModeFPS} {
		t.Run(mode.String(), func(t *testing.T) {
			c := NewCamera(WithPosition(2, 3, 4), WithTarget(0, 0, 0), WithSpeed(2.5))
			pos, tgt := c.Position(), c.Target()

			c.MoveForward(0.3, mode)
			assert.False(t, pos.ApproxEqualThreshold(c.Position(), tol))
			c.MoveBackward(0.3, mode)

			assertVec3(t, pos, c.Position())
			assertVec3(t, tgt, c.Target())
		})
	}
}

func TestMoveForwardNormalFollowsDirection(t *testing.T) {
	c := NewCamera(WithPosition(0, 3, 3), WithTarget(0, 0, 0), WithSpeed(2))
	dir := c.Direction()

	c.MoveForward(0.5, MoveModeNormal)

	assertVec3(t, mgl32.Vec3{0, 3, 3}.Sub(dir), c.Position())
	assertVec3(t, dir.Mul(-1), c.Target())
	assertVec3(t, dir, c.Position().Sub(c.Target()).Normalize())
}

func TestMoveForwardFPSKeepsHeight(t *testing.T) {
	c := NewCamera(WithPosition(0, 3, 3), WithTarget(0, 0, 0))

	c.MoveForward(1, MoveModeFPS)

	assert.InDelta(t, 3.0, c.Position().Y(), tol)
	assert.InDelta(t, 0.0, c.Target().Y(), tol)
	assertVec3(t, mgl32.Vec3{0, 3, 2}, c.Position())
}

func TestMoveForwardFPSLookingStraightDown(t *testing.T) {
	c := NewCamera(WithPosition(0, 5, 0), WithTarget(0, 0, 0), WithUp(0, 0, -1))
	pos := c.Position()

	c.MoveForward(1, MoveModeFPS)

	assertVec3(t, pos, c.Position())
}

func TestStrafePreservesDirection(t *testing.T) {
	c := NewCamera(WithSpeed(1))
	dir := c.Direction()

	c.MoveRight(1)
	assertVec3(t, mgl32.Vec3{1, 0, 3}, c.Position())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Target())
	assertVec3(t, dir, c.Position().Sub(c.Target()).Normalize())

	c.MoveLeft(2)
	assertVec3(t, mgl32.Vec3{-1, 0, 3}, c.Position())
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, c.Target())
}

func TestSpinIsAbsolute(t *testing.T) {
	c := NewCamera()

	c.Spin(90, 0)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Direction())
	assertVec3(t, mgl32.Vec3{-1, 0, 3}, c.Target())
	assertOrthonormal(t, c)

	c.Spin(90, 0)
	assertVec3(t, mgl32.Vec3{-1, 0, 3}, c.Target(), "same angles give the same orientation")

	c.Spin(0, 30)
	s := float32(math.Sin(math.Pi / 6))
	co := float32(math.Cos(math.Pi / 6))
	assertVec3(t, mgl32.Vec3{0, s, co}, c.Direction())
	assertVec3(t, c.Position().Sub(c.Direction()), c.Target())
}

func TestNodOscillatesWithinLimit(t *testing.T) {
	c := NewCamera(WithRotationSpeed(10))

	expected := []float32{10, 20, 30, 20, 10, 0, -10, -20, -30, -20, -10, 0, 10}
	for i, want := range expected {
		c.Nod(1, 30)
		assert.InDelta(t, want, c.NodPitch(), tol, "call %d", i+1)
		assertOrthonormal(t, c)
	}
}

func TestNodTiltsUpwardFirst(t *testing.T) {
	c := NewCamera(WithRotationSpeed(10))
	c.Nod(1, 30)

	assert.Greater(t, c.Target().Y(), c.Position().Y())
	assert.InDelta(t, 0.0, c.Direction().X(), tol, "yaw is preserved")
}

func TestNodZeroLimitFlipsEveryCall(t *testing.T) {
	c := NewCamera(WithRotationSpeed(5))

	expected := []float32{-5, 0, -5, 0}
	for i, want := range expected {
		c.Nod(1, 0)
		assert.InDelta(t, want, c.NodPitch(), tol, "call %d", i+1)
	}
}

func TestDegenerateLookAtKeepsBasis(t *testing.T) {
	c := NewCamera()
	dir, right, up := c.Direction(), c.Right(), c.Up()

	c.LookAt(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})

	assert.Equal(t, dir, c.Direction())
	assert.Equal(t, right, c.Right())
	assert.Equal(t, up, c.Up())
}

func TestLookAlongUpHint(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 3), WithTarget(0, 0, 0))

	c.LookAt(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, 0, 0})

	require.False(t, math.IsNaN(float64(c.Right().X())))
	assertOrthonormal(t, c)
}

func TestFrustumContainsTarget(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	f := c.Frustum()

	assert.True(t, f.ContainsSphere(mgl32.Vec3{}, 1))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 20}, 1))
}
