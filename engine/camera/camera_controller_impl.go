package camera

import (
	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine/input"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultSensitivity scales raw cursor deltas before the angle conversion.
	DefaultSensitivity float32 = 0.1
	// DefaultRadius is the lever arm R in atan(delta/R).
	DefaultRadius float32 = 1.0
	// PitchLimit keeps the view direction away from the up hint.
	PitchLimit float32 = 89.0
	// DefaultNodLimit is the nod amplitude in degrees.
	DefaultNodLimit float32 = 30.0
)

type cameraControllerImpl struct {
	yaw   float32
	pitch float32

	sensitivity float32
	radius      float32
	moveMode    MoveMode
	nodLimit    float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller and aligns its yaw/pitch with cam, if given.
//
// Parameters:
//   - cam: the camera to sync with (may be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		sensitivity: DefaultSensitivity,
		radius:      DefaultRadius,
		moveMode:    MoveModeNormal,
		nodLimit:    DefaultNodLimit,
	}
	for _, option := range options {
		option(cc)
	}
	if cc.radius <= 0 {
		cc.radius = DefaultRadius
	}
	if cam != nil {
		cc.Sync(cam)
	}
	return cc
}

func (cc *cameraControllerImpl) Update(cam Camera, state input.State, dt float32) {
	if state.Pressed(common.KeyW) {
		cam.MoveForward(dt, cc.moveMode)
	}
	if state.Pressed(common.KeyS) {
		cam.MoveBackward(dt, cc.moveMode)
	}
	if state.Pressed(common.KeyA) {
		cam.MoveLeft(dt)
	}
	if state.Pressed(common.KeyD) {
		cam.MoveRight(dt)
	}

	if state.CursorDX != 0 || state.CursorDY != 0 {
		// moving the cursor right turns right (negative yaw), moving it up looks up (negative pitch)
		cc.yaw -= cc.toDegrees(state.CursorDX)
		cc.pitch = common.Clamp(cc.pitch+cc.toDegrees(state.CursorDY), -PitchLimit, PitchLimit)
		cam.Spin(cc.yaw, cc.pitch)
	}

	if state.Scroll != 0 {
		cam.Zoom(cam.Fov() - state.Scroll)
	}

	if state.Pressed(common.KeyN) {
		cam.Nod(dt, cc.nodLimit)
		cc.Sync(cam)
	}
}

func (cc *cameraControllerImpl) Sync(cam Camera) {
	cc.yaw, cc.pitch = common.YawPitchFromDirection(cam.Direction())
	cc.pitch = common.Clamp(cc.pitch, -PitchLimit, PitchLimit)
}

func (cc *cameraControllerImpl) Yaw() float32 {
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	return cc.pitch
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	return cc.sensitivity
}

func (cc *cameraControllerImpl) MoveMode() MoveMode {
	return cc.moveMode
}

func (cc *cameraControllerImpl) SetMoveMode(mode MoveMode) {
	cc.moveMode = mode
}

func (cc *cameraControllerImpl) NodLimit() float32 {
	return cc.nodLimit
}

// toDegrees converts a raw cursor delta to an angle: atan(delta*sensitivity/R) in degrees.
func (cc *cameraControllerImpl) toDegrees(delta float64) float32 {
	scaled := float32(delta) * cc.sensitivity / cc.radius
	return mgl32.RadToDeg(math32.Atan(scaled))
}
