package camera

import (
	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Field of view bounds in degrees. Every assignment to the fov is clamped to this range.
const (
	MinFov float32 = 1.0
	MaxFov float32 = 80.0
)

// MoveMode selects how forward/backward movement treats the vertical axis.
type MoveMode int

const (
	// MoveModeNormal moves along the full 3D view direction (free-fly).
	MoveModeNormal MoveMode = iota
	// MoveModeFPS drops the vertical component of the view direction so the camera keeps its height.
	MoveModeFPS
)

func (m MoveMode) String() string {
	switch m {
	case MoveModeNormal:
		return "normal"
	case MoveModeFPS:
		return "fps"
	default:
		return "unknown"
	}
}

type cameraImpl struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	upHint   mgl32.Vec3

	// derived basis, direction = normalize(position - target)
	direction mgl32.Vec3
	right     mgl32.Vec3
	up        mgl32.Vec3

	width  float32
	height float32
	near   float32
	far    float32
	fov    float32 // degrees

	speed         float32
	rotationSpeed float32 // degrees per second, used by Nod

	nodSign  float32
	nodPitch float32 // degrees

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// Camera defines the view transform: a position/target pair with a fixed world up
// hint, a perspective projection, and movement/orientation primitives driven by input.
// All matrices are column-major and can be uploaded to a shader uniform directly.
//
// Callers must keep position != target; a degenerate pair leaves the previous basis in place.
// A Camera is owned by a single goroutine (the render loop) and is not safe for concurrent use.
type Camera interface {
	// Position returns the camera location in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// UpHint returns the fixed world up reference given at construction.
	//
	// Returns:
	//   - mgl32.Vec3: the up hint
	UpHint() mgl32.Vec3

	// Direction returns normalize(position - target), i.e. the camera's backward axis.
	//
	// Returns:
	//   - mgl32.Vec3: unit direction vector
	Direction() mgl32.Vec3

	// Right returns the camera's right axis.
	//
	// Returns:
	//   - mgl32.Vec3: unit right vector
	Right() mgl32.Vec3

	// Up returns the camera's up axis, orthogonal to Direction and Right.
	//
	// Returns:
	//   - mgl32.Vec3: unit up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees, within [MinFov, MaxFov]
	Fov() float32

	// Width returns the viewport width used for the aspect ratio.
	Width() float32

	// Height returns the viewport height used for the aspect ratio.
	Height() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Speed returns the translation speed in world units per second.
	Speed() float32

	// RotationSpeed returns the nod speed in degrees per second.
	RotationSpeed() float32

	// NodPitch returns the accumulated nod pitch in degrees.
	NodPitch() float32

	// ViewMatrix returns the cached view matrix. It is only refreshed by
	// CreateView, LookAt and RefreshView.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the cached perspective projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view from the cached matrices.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum extracts the culling planes from the cached view and projection.
	//
	// Returns:
	//   - common.Frustum: normalized frustum planes
	Frustum() common.Frustum

	// CreateView builds a right-handed look-at matrix from position, target and the up hint.
	// The result is cached; the derived basis is not touched.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	CreateView() mgl32.Mat4

	// SetProjection stores the viewport size, clip planes and fov, and rebuilds the projection.
	// The fov is silently clamped to [MinFov, MaxFov].
	//
	// Parameters:
	//   - width, height: viewport size used for the aspect ratio
	//   - near, far: clip plane distances
	//   - fov: vertical field of view in degrees
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	SetProjection(width, height, near, far, fov float32) mgl32.Mat4

	// Resize updates the viewport size and rebuilds the projection with the stored fov and clip planes.
	//
	// Parameters:
	//   - width, height: new viewport size
	Resize(width, height float32)

	// LookAt overwrites position and target, recomputes the derived basis and returns the new view matrix.
	//
	// Parameters:
	//   - position: new camera position
	//   - target: new look-at point
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	LookAt(position, target mgl32.Vec3) mgl32.Mat4

	// RefreshView recomputes the view matrix and the derived basis from the current position and target.
	// Call once per frame after movement.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	RefreshView() mgl32.Mat4

	// MoveRight translates position and target along the right axis by speed*dt.
	MoveRight(dt float32)

	// MoveLeft translates position and target against the right axis by speed*dt.
	MoveLeft(dt float32)

	// MoveForward translates position and target toward the target by speed*dt.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//   - mode: MoveModeFPS keeps the camera height constant
	MoveForward(dt float32, mode MoveMode)

	// MoveBackward translates position and target away from the target by speed*dt.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//   - mode: MoveModeFPS keeps the camera height constant
	MoveBackward(dt float32, mode MoveMode)

	// Spin re-orients the camera from absolute spherical angles and moves the target
	// to position - direction. Yaw turns around the vertical axis, pitch tilts.
	//
	// Parameters:
	//   - yawDeg: yaw in degrees
	//   - pitchDeg: pitch in degrees
	Spin(yawDeg, pitchDeg float32)

	// Zoom sets the fov (clamped) and rebuilds the projection with the stored viewport and clip planes.
	//
	// Parameters:
	//   - fovDeg: new field of view in degrees
	Zoom(fovDeg float32)

	// Nod oscillates the pitch between -limitDeg and +limitDeg at RotationSpeed degrees
	// per second. The direction of travel flips once the accumulated pitch reaches
	// either bound; the yaw is preserved. A zero limit flips on every call.
	//
	// Parameters:
	//   - dt: frame time in seconds
	//   - limitDeg: pitch amplitude in degrees
	Nod(dt, limitDeg float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. Defaults: position (0, 0, 3) looking at the origin,
// world up (0, 1, 0), an 800x600 viewport, clip planes 0.1/100, 45° fov, speed 1 and
// rotation speed 0.1. The basis, view and projection are computed before returning.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		position:      mgl32.Vec3{0, 0, 3},
		target:        mgl32.Vec3{0, 0, 0},
		upHint:        mgl32.Vec3{0, 1, 0},
		direction:     mgl32.Vec3{0, 0, 1},
		right:         mgl32.Vec3{1, 0, 0},
		up:            mgl32.Vec3{0, 1, 0},
		width:         800,
		height:        600,
		near:          0.1,
		far:           100,
		fov:           45,
		speed:         1,
		rotationSpeed: 0.1,
		nodSign:       1,
	}
	for _, option := range options {
		option(c)
	}
	c.fov = common.Clamp(c.fov, MinFov, MaxFov)
	c.setBase()
	c.CreateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) UpHint() mgl32.Vec3 {
	return c.upHint
}

func (c *cameraImpl) Direction() mgl32.Vec3 {
	return c.direction
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	return c.right
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Width() float32 {
	return c.width
}

func (c *cameraImpl) Height() float32 {
	return c.height
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Speed() float32 {
	return c.speed
}

func (c *cameraImpl) RotationSpeed() float32 {
	return c.rotationSpeed
}

func (c *cameraImpl) NodPitch() float32 {
	return c.nodPitch
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.view
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.projection.Mul4(c.view)
}

func (c *cameraImpl) Frustum() common.Frustum {
	return common.ExtractFrustum(c.ViewProjectionMatrix())
}

func (c *cameraImpl) CreateView() mgl32.Mat4 {
	c.view = mgl32.LookAtV(c.position, c.target, c.upHint)
	return c.view
}

func (c *cameraImpl) SetProjection(width, height, near, far, fov float32) mgl32.Mat4 {
	c.width = width
	c.height = height
	c.near = near
	c.far = far
	c.fov = common.Clamp(fov, MinFov, MaxFov)
	c.updateProjection()
	return c.projection
}

func (c *cameraImpl) Resize(width, height float32) {
	c.width = width
	c.height = height
	c.updateProjection()
}

func (c *cameraImpl) LookAt(position, target mgl32.Vec3) mgl32.Mat4 {
	c.position = position
	c.target = target
	c.setBase()
	return c.CreateView()
}

func (c *cameraImpl) RefreshView() mgl32.Mat4 {
	c.setBase()
	return c.CreateView()
}

func (c *cameraImpl) MoveRight(dt float32) {
	c.translateAlong(c.up.Cross(c.direction), dt)
}

func (c *cameraImpl) MoveLeft(dt float32) {
	c.translateAlong(c.direction.Cross(c.up), dt)
}

func (c *cameraImpl) MoveForward(dt float32, mode MoveMode) {
	// direction points from target to camera, so forward is its negation
	c.translateAlong(c.planarDirection(mode).Mul(-1), dt)
}

func (c *cameraImpl) MoveBackward(dt float32, mode MoveMode) {
	c.translateAlong(c.planarDirection(mode), dt)
}

func (c *cameraImpl) Spin(yawDeg, pitchDeg float32) {
	c.direction = common.SphericalDirection(yawDeg, pitchDeg)
	c.target = c.position.Sub(c.direction)
	c.setBase()
}

func (c *cameraImpl) Zoom(fovDeg float32) {
	c.fov = common.Clamp(fovDeg, MinFov, MaxFov)
	c.updateProjection()
}

func (c *cameraImpl) Nod(dt, limitDeg float32) {
	if c.nodPitch <= -limitDeg || c.nodPitch >= limitDeg {
		c.nodSign = -c.nodSign
	}
	c.nodPitch += c.nodSign * c.rotationSpeed * dt

	yaw, _ := common.YawPitchFromDirection(c.direction)
	// positive nod pitch tilts the view upward, which is a negative spin pitch
	c.Spin(yaw, -c.nodPitch)
}

// planarDirection returns the direction used by forward/backward movement.
// FPS mode projects it onto the horizontal plane.
func (c *cameraImpl) planarDirection(mode MoveMode) mgl32.Vec3 {
	dir := c.direction
	if mode == MoveModeFPS {
		dir[1] = 0
	}
	return dir
}

// translateAlong shifts position and target by normalize(axis) * speed * dt.
// A zero-length axis leaves the camera in place.
func (c *cameraImpl) translateAlong(axis mgl32.Vec3, dt float32) {
	n, ok := common.SafeNormalize(axis)
	if !ok {
		return
	}
	delta := n.Mul(c.speed * dt)
	c.position = c.position.Add(delta)
	c.target = c.target.Add(delta)
}

// setBase recomputes the orthonormal basis from position, target and the up hint.
// Degenerate inputs (position == target, or direction parallel to the up hint)
// keep the corresponding previous axis.
func (c *cameraImpl) setBase() {
	if dir, ok := common.SafeNormalize(c.position.Sub(c.target)); ok {
		c.direction = dir
	}
	if right, ok := common.SafeNormalize(c.upHint.Cross(c.direction)); ok {
		c.right = right
	} else if right, ok := common.SafeNormalize(c.up.Cross(c.direction)); ok {
		c.right = right
	}
	c.up = c.direction.Cross(c.right).Normalize()
}

// updateProjection rebuilds the projection from the stored parameters.
func (c *cameraImpl) updateProjection() {
	aspect := float32(1)
	if c.height > 0 {
		aspect = c.width / c.height
	}
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)
}
