package entity

import (
	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultBoundary is the reach radius used when none is configured.
const DefaultBoundary float32 = 1

// poseImpl is the implementation of the Pose interface.
type poseImpl struct {
	model mgl32.Mat4

	origin   mgl32.Vec3
	axis     mgl32.Vec3
	angle    float32
	scale    mgl32.Vec3
	boundary float32
}

// Pose composes an entity's model matrix from a tracked baseline (origin, rotation
// axis, rotation angle in degrees, scale) as T * R * S.
//
// Rebuild and Update always recompose from identity, so the model matrix stays a
// pure function of the baseline. Translate, Rotate and Scale chain raw transforms
// onto the current model without touching the baseline; their result depends on
// call order and is discarded by the next Rebuild or Update.
type Pose interface {
	// Origin returns the tracked translation.
	Origin() mgl32.Vec3

	// RotationAxis returns the accumulated (not normalized) rotation axis.
	RotationAxis() mgl32.Vec3

	// RotationAngle returns the accumulated rotation angle in degrees.
	RotationAngle() float32

	// ScaleFactor returns the tracked per-axis scale.
	ScaleFactor() mgl32.Vec3

	// Boundary returns the reach radius used by IsReachable.
	Boundary() float32

	// SetBoundary sets the reach radius used by IsReachable.
	//
	// Parameters:
	//   - radius: the new boundary
	SetBoundary(radius float32)

	// ModelMatrix returns the current model matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// SetAbsolute replaces the model matrix wholesale. The tracked baseline is left
	// untouched, so a following Update recomposes from the baseline again.
	//
	// Parameters:
	//   - m: the new model matrix
	SetAbsolute(m mgl32.Mat4)

	// Rebuild stores a new baseline and recomposes the model matrix from identity.
	// A zero axis skips the rotation; a non-zero axis is normalized for the
	// composition but stored as given.
	//
	// Parameters:
	//   - origin: the translation
	//   - axis: the rotation axis
	//   - angle: the rotation angle in degrees
	//   - scale: the per-axis scale
	Rebuild(origin, axis mgl32.Vec3, angle float32, scale mgl32.Vec3)

	// Update accumulates deltas into the baseline and rebuilds:
	// origin += dOrigin, axis += dAxis, angle += dAngle, scale *= dScale (component-wise).
	//
	// Parameters:
	//   - dOrigin: translation delta
	//   - dAxis: axis delta
	//   - dAngle: angle delta in degrees
	//   - dScale: multiplicative scale delta
	Update(dOrigin, dAxis mgl32.Vec3, dAngle float32, dScale mgl32.Vec3)

	// Translate post-multiplies a translation onto the current model.
	Translate(offset mgl32.Vec3)

	// Rotate post-multiplies a rotation (degrees) onto the current model.
	// A zero axis is a no-op.
	Rotate(angle float32, axis mgl32.Vec3)

	// Scale post-multiplies a scale onto the current model.
	Scale(factor mgl32.Vec3)

	// IsReachable reports whether the point (x, y) at the given depth lies inside the
	// cylinder of radius Boundary around the origin, bounded along z by origin.z ± Boundary.
	// Both comparisons are strict.
	//
	// Parameters:
	//   - x, y: the point in the entity's xy plane
	//   - depth: the z coordinate to test
	//
	// Returns:
	//   - bool: true if the point is reachable
	IsReachable(x, y, depth float32) bool

	// Reset zeroes the origin, axis and angle, sets the scale to one and the model
	// to identity. The boundary is kept.
	Reset()
}

var _ Pose = &poseImpl{}

// NewPose creates a Pose from the given options. The model matrix is composed from
// the resulting baseline.
//
// Parameters:
//   - options: functional options to configure the pose
//
// Returns:
//   - Pose: the newly created pose
func NewPose(options ...PoseBuilderOption) Pose {
	p := &poseImpl{
		model:    mgl32.Ident4(),
		scale:    mgl32.Vec3{1, 1, 1},
		boundary: DefaultBoundary,
	}
	for _, option := range options {
		option(p)
	}
	p.model = compose(p.origin, p.axis, p.angle, p.scale)
	return p
}

func (p *poseImpl) Origin() mgl32.Vec3 {
	return p.origin
}

func (p *poseImpl) RotationAxis() mgl32.Vec3 {
	return p.axis
}

func (p *poseImpl) RotationAngle() float32 {
	return p.angle
}

func (p *poseImpl) ScaleFactor() mgl32.Vec3 {
	return p.scale
}

func (p *poseImpl) Boundary() float32 {
	return p.boundary
}

func (p *poseImpl) SetBoundary(radius float32) {
	p.boundary = radius
}

func (p *poseImpl) ModelMatrix() mgl32.Mat4 {
	return p.model
}

func (p *poseImpl) SetAbsolute(m mgl32.Mat4) {
	p.model = m
}

func (p *poseImpl) Rebuild(origin, axis mgl32.Vec3, angle float32, scale mgl32.Vec3) {
	p.origin = origin
	p.axis = axis
	p.angle = angle
	p.scale = scale
	p.model = compose(origin, axis, angle, scale)
}

func (p *poseImpl) Update(dOrigin, dAxis mgl32.Vec3, dAngle float32, dScale mgl32.Vec3) {
	p.Rebuild(
		p.origin.Add(dOrigin),
		p.axis.Add(dAxis),
		p.angle+dAngle,
		mgl32.Vec3{p.scale[0] * dScale[0], p.scale[1] * dScale[1], p.scale[2] * dScale[2]},
	)
}

func (p *poseImpl) Translate(offset mgl32.Vec3) {
	p.model = p.model.Mul4(mgl32.Translate3D(offset[0], offset[1], offset[2]))
}

func (p *poseImpl) Rotate(angle float32, axis mgl32.Vec3) {
	n, ok := common.SafeNormalize(axis)
	if !ok {
		return
	}
	p.model = p.model.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angle), n))
}

func (p *poseImpl) Scale(factor mgl32.Vec3) {
	p.model = p.model.Mul4(mgl32.Scale3D(factor[0], factor[1], factor[2]))
}

func (p *poseImpl) IsReachable(x, y, depth float32) bool {
	dx := x - p.origin[0]
	dy := y - p.origin[1]
	b := p.boundary
	if dx*dx+dy*dy >= b*b {
		return false
	}
	return depth > p.origin[2]-b && depth < p.origin[2]+b
}

func (p *poseImpl) Reset() {
	p.origin = mgl32.Vec3{}
	p.axis = mgl32.Vec3{}
	p.angle = 0
	p.scale = mgl32.Vec3{1, 1, 1}
	p.model = mgl32.Ident4()
}

// compose returns T(origin) * R(axis, angle) * S(scale).
func compose(origin, axis mgl32.Vec3, angle float32, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(origin[0], origin[1], origin[2])
	if n, ok := common.SafeNormalize(axis); ok {
		m = m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angle), n))
	}
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}
