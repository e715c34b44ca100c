package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithSensitivity sets the multiplier applied to raw cursor deltas.
//
// Parameters:
//   - sensitivity: cursor delta multiplier
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = sensitivity
	}
}

// WithRadius sets the lever arm R used in atan(delta/R). Non-positive values fall back to DefaultRadius.
//
// Parameters:
//   - radius: lever arm length
//
// Returns:
//   - CameraControllerOption: functional option to set the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithMoveMode sets the initial movement mode.
//
// Parameters:
//   - mode: MoveModeNormal or MoveModeFPS
//
// Returns:
//   - CameraControllerOption: functional option to set the movement mode
func WithMoveMode(mode MoveMode) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveMode = mode
	}
}

// WithNodLimit sets the nod amplitude in degrees.
func WithNodLimit(limit float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.nodLimit = limit
	}
}
