package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-flipper/engine/camera"
	"github.com/Carmen-Shannon/oxy-flipper/engine/renderer"
	"github.com/pelletier/go-toml/v2"
)

// Config is the TOML-backed configuration of the flipper application.
//
// Example:
//
//	[window]
//	title = "flipper"
//	width = 1280
//	height = 720
//
//	[camera]
//	position = [0.0, 0.0, 3.0]
//	fov = 45.0
//
//	[controller]
//	move_mode = "fps"
//
//	[engine]
//	backend = "wgpu"
type Config struct {
	Window     WindowConfig     `toml:"window"`
	Camera     CameraConfig     `toml:"camera"`
	Controller ControllerConfig `toml:"controller"`
	Engine     EngineConfig     `toml:"engine"`
}

// WindowConfig configures the platform window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// CameraConfig configures the initial view and projection.
type CameraConfig struct {
	Position      [3]float32 `toml:"position"`
	Target        [3]float32 `toml:"target"`
	Up            [3]float32 `toml:"up"`
	Fov           float32    `toml:"fov"`
	Near          float32    `toml:"near"`
	Far           float32    `toml:"far"`
	Speed         float32    `toml:"speed"`
	RotationSpeed float32    `toml:"rotation_speed"`
}

// ControllerConfig configures input handling.
type ControllerConfig struct {
	Sensitivity float32 `toml:"sensitivity"`
	Radius      float32 `toml:"radius"`
	MoveMode    string  `toml:"move_mode"`
	NodLimit    float32 `toml:"nod_limit"`
}

// EngineConfig configures the frame loop and the renderer.
type EngineConfig struct {
	// Backend selects the renderer: "gl" (OpenGL 4.1 core) or "wgpu" (WebGPU).
	Backend string `toml:"backend"`
	// FrameLimit caps frames per second; 0 leaves the loop uncapped.
	FrameLimit int  `toml:"frame_limit"`
	Profile    bool `toml:"profile"`
	// ClearColor is the RGBA background color.
	ClearColor [4]float32 `toml:"clear_color"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-flipper",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:      [3]float32{0, 0, 3},
			Target:        [3]float32{0, 0, 0},
			Up:            [3]float32{0, 1, 0},
			Fov:           45,
			Near:          0.1,
			Far:           100,
			Speed:         2.5,
			RotationSpeed: 10,
		},
		Controller: ControllerConfig{
			Sensitivity: camera.DefaultSensitivity,
			Radius:      camera.DefaultRadius,
			MoveMode:    camera.MoveModeNormal.String(),
			NodLimit:    camera.DefaultNodLimit,
		},
		Engine: EngineConfig{
			Backend:    renderer.BackendTypeGL.String(),
			FrameLimit: 0,
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1},
		},
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file keep their
// default values; unknown keys are an error. The result is validated.
//
// Parameters:
//   - path: the TOML file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, decoded, or fails validation
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if decoding or validation fails
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("decode: %s", strict.String())
		}
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes the configuration as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: error if encoding fails
func (c Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// Validate reports every invalid value in the configuration.
//
// Returns:
//   - error: a joined error listing each problem, or nil
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Position == c.Camera.Target {
		errs = append(errs, fmt.Errorf("camera position and target must differ, both are %v", c.Camera.Position))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera clip planes must satisfy 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Speed < 0 || c.Camera.RotationSpeed < 0 {
		errs = append(errs, fmt.Errorf("camera speeds must not be negative"))
	}
	if c.Controller.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("controller sensitivity must be positive, got %g", c.Controller.Sensitivity))
	}
	if c.Controller.NodLimit < 0 {
		errs = append(errs, fmt.Errorf("controller nod_limit must not be negative, got %g", c.Controller.NodLimit))
	}
	if _, err := ParseMoveMode(c.Controller.MoveMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseBackend(c.Engine.Backend); err != nil {
		errs = append(errs, err)
	}
	if c.Engine.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("engine frame_limit must not be negative, got %d", c.Engine.FrameLimit))
	}
	return errors.Join(errs...)
}

// ParseMoveMode converts a move mode name ("normal" or "fps", case-insensitive).
//
// Parameters:
//   - s: the mode name
//
// Returns:
//   - camera.MoveMode: the parsed mode
//   - error: error if the name is unknown
func ParseMoveMode(s string) (camera.MoveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case camera.MoveModeNormal.String():
		return camera.MoveModeNormal, nil
	case camera.MoveModeFPS.String():
		return camera.MoveModeFPS, nil
	default:
		return camera.MoveModeNormal, fmt.Errorf("unknown move_mode %q", s)
	}
}

// ParseBackend converts a renderer backend name ("gl" or "wgpu", case-insensitive).
//
// Parameters:
//   - s: the backend name
//
// Returns:
//   - renderer.RendererBackendType: the parsed backend
//   - error: error if the name is unknown
func ParseBackend(s string) (renderer.RendererBackendType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case renderer.BackendTypeGL.String():
		return renderer.BackendTypeGL, nil
	case renderer.BackendTypeWGPU.String():
		return renderer.BackendTypeWGPU, nil
	default:
		return renderer.BackendTypeGL, fmt.Errorf("unknown engine backend %q", s)
	}
}

// CameraOptions translates the camera section into builder options. The viewport
// follows the window size.
//
// Returns:
//   - []camera.CameraBuilderOption: the options
func (c Config) CameraOptions() []camera.CameraBuilderOption {
	cc := c.Camera
	return []camera.CameraBuilderOption{
		camera.WithPosition(cc.Position[0], cc.Position[1], cc.Position[2]),
		camera.WithTarget(cc.Target[0], cc.Target[1], cc.Target[2]),
		camera.WithUp(cc.Up[0], cc.Up[1], cc.Up[2]),
		camera.WithFov(cc.Fov),
		camera.WithClipPlanes(cc.Near, cc.Far),
		camera.WithViewport(float32(c.Window.Width), float32(c.Window.Height)),
		camera.WithSpeed(cc.Speed),
		camera.WithRotationSpeed(cc.RotationSpeed),
	}
}

// ControllerOptions translates the controller section into builder options.
// An unknown move mode falls back to normal; Validate reports it.
//
// Returns:
//   - []camera.CameraControllerOption: the options
func (c Config) ControllerOptions() []camera.CameraControllerOption {
	mode, _ := ParseMoveMode(c.Controller.MoveMode)
	return []camera.CameraControllerOption{
		camera.WithSensitivity(c.Controller.Sensitivity),
		camera.WithRadius(c.Controller.Radius),
		camera.WithMoveMode(mode),
		camera.WithNodLimit(c.Controller.NodLimit),
	}
}
