package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// degenerateEpsilon is the squared length below which a vector is treated as zero.
const degenerateEpsilon = 1e-12

// WebGPUClipCorrection remaps OpenGL clip-space depth [-1, 1] to the WebGPU range [0, 1].
// Pre-multiply a projection built with mgl32.Perspective by this matrix before uploading
// it to a WebGPU pipeline. Column-major.
var WebGPUClipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// Clamp limits v to the closed range [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: the clamped value
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeNormalize returns the unit vector of v. When v has (near) zero length the
// input is returned untouched together with false, so callers can skip the update
// instead of propagating NaNs.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the normalized vector, or v when degenerate
//   - bool: false if v is degenerate
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	if v.Dot(v) < degenerateEpsilon {
		return v, false
	}
	return v.Normalize(), true
}

// SphericalDirection builds a unit vector from yaw and pitch angles in degrees.
// Yaw rotates around the vertical axis (0 = +Z), pitch tilts toward +Y.
//
// Parameters:
//   - yawDeg: rotation around the vertical axis in degrees
//   - pitchDeg: elevation in degrees
//
// Returns:
//   - mgl32.Vec3: the unit direction
func SphericalDirection(yawDeg, pitchDeg float32) mgl32.Vec3 {
	yaw := mgl32.DegToRad(yawDeg)
	pitch := mgl32.DegToRad(pitchDeg)
	return mgl32.Vec3{
		math32.Sin(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Cos(yaw) * math32.Cos(pitch),
	}
}

// YawPitchFromDirection is the inverse of SphericalDirection for a unit vector.
//
// Parameters:
//   - dir: a unit direction
//
// Returns:
//   - yawDeg, pitchDeg: the spherical angles in degrees
func YawPitchFromDirection(dir mgl32.Vec3) (yawDeg, pitchDeg float32) {
	pitchDeg = mgl32.RadToDeg(math32.Asin(Clamp(dir.Y(), -1, 1)))
	yawDeg = mgl32.RadToDeg(math32.Atan2(dir.X(), dir.Z()))
	return yawDeg, pitchDeg
}

// CursorToNDC maps a pixel coordinate along one screen axis into [-1, 1].
// The mapping is 2*(raw/dimension) - 1, clamped. Apply it independently to x and y.
// A non-positive dimension maps to 0.
//
// Parameters:
//   - raw: cursor coordinate in pixels
//   - dimension: window size along the same axis in pixels
//
// Returns:
//   - float32: the normalized coordinate
func CursorToNDC(raw float64, dimension int) float32 {
	if dimension <= 0 {
		return 0
	}
	return Clamp(float32(2*(raw/float64(dimension))-1), -1, 1)
}
