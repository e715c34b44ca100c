package entity

import "github.com/go-gl/mathgl/mgl32"

// PoseBuilderOption is a functional option for configuring a Pose via NewPose.
type PoseBuilderOption func(*poseImpl)

// WithOrigin sets the initial translation.
//
// Parameters:
//   - origin: the translation
//
// Returns:
//   - PoseBuilderOption: a function that applies the origin option to a pose
func WithOrigin(origin mgl32.Vec3) PoseBuilderOption {
	return func(p *poseImpl) {
		p.origin = origin
	}
}

// WithRotation sets the initial rotation axis and angle in degrees.
//
// Parameters:
//   - axis: the rotation axis
//   - angle: the angle in degrees
//
// Returns:
//   - PoseBuilderOption: a function that applies the rotation option to a pose
func WithRotation(axis mgl32.Vec3, angle float32) PoseBuilderOption {
	return func(p *poseImpl) {
		p.axis = axis
		p.angle = angle
	}
}

// WithScaleFactor sets the initial per-axis scale.
func WithScaleFactor(scale mgl32.Vec3) PoseBuilderOption {
	return func(p *poseImpl) {
		p.scale = scale
	}
}

// WithBoundary sets the reach radius used by IsReachable.
func WithBoundary(radius float32) PoseBuilderOption {
	return func(p *poseImpl) {
		p.boundary = radius
	}
}
