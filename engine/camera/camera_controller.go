package camera

import "github.com/Carmen-Shannon/oxy-flipper/engine/input"

// CameraController translates a per-frame input snapshot into Camera calls.
// It owns the yaw/pitch accumulators that drive Spin, so no orientation state
// lives outside the controller and the camera.
//
// Key bindings: W/S forward/backward, A/D left/right, N nods while held.
// Mouse movement spins the camera, the scroll wheel zooms.
type CameraController interface {
	// Update applies one frame of input to the camera.
	//
	// Parameters:
	//   - cam: the camera to drive
	//   - state: the input snapshot for this frame
	//   - dt: frame time in seconds
	Update(cam Camera, state input.State, dt float32)

	// Sync re-derives yaw and pitch from the camera's current direction.
	// Call after changing the camera orientation outside the controller.
	//
	// Parameters:
	//   - cam: the camera to read from
	Sync(cam Camera)

	// Yaw returns the accumulated yaw in degrees.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Pitch returns the accumulated pitch in degrees.
	//
	// Returns:
	//   - float32: pitch in degrees, within [-PitchLimit, PitchLimit]
	Pitch() float32

	// Sensitivity returns the multiplier applied to raw cursor deltas.
	Sensitivity() float32

	// MoveMode returns the movement mode used for forward/backward keys.
	MoveMode() MoveMode

	// SetMoveMode switches between free-fly and FPS movement.
	//
	// Parameters:
	//   - mode: the new movement mode
	SetMoveMode(mode MoveMode)

	// NodLimit returns the nod amplitude in degrees.
	NodLimit() float32
}
