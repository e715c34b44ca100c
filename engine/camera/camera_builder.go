package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the initial camera position.
//
// Parameters:
//   - x, y, z: world-space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the initial look-at point.
//
// Parameters:
//   - x, y, z: world-space target
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithUp sets the world up hint. It is fixed for the lifetime of the camera.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up hint
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.upHint = mgl32.Vec3{x, y, z}
	}
}

// WithFov sets the vertical field of view in degrees. Clamped to [MinFov, MaxFov].
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithViewport sets the viewport size used for the aspect ratio.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport size
func WithViewport(width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.width = width
		c.height = height
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithSpeed sets the translation speed in world units per second.
func WithSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.speed = speed
	}
}

// WithRotationSpeed sets the nod speed in degrees per second.
func WithRotationSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rotationSpeed = speed
	}
}
