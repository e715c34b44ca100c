package common

// Virtual key codes for input handling. Printable keys use their ASCII value,
// which matches the GLFW key constants.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // move forward
	KeyA     = 65  // move left
	KeyS     = 83  // move backward
	KeyD     = 68  // move right
	KeyN     = 78  // nod
	KeyF     = 70  // toggle FPS / normal movement
	KeyR     = 82  // reset entity poses
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// Mouse button codes, matching glfw.MouseButton values.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)
