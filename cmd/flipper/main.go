// Command flipper renders a field of cubes that can be pushed around by clicking
// on them while flying the camera with the keyboard and mouse. The [engine]
// backend config key selects OpenGL ("gl", the default) or WebGPU ("wgpu").
//
// Controls:
//
//	W/A/S/D        move
//	right mouse    hold to look around
//	scroll         zoom
//	N              nod while held
//	F              toggle FPS / free-fly movement
//	Space          spin the cubes
//	R              reset every cube to the origin
//	left mouse     hold on a cube to push it away
//	Esc            quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine"
	"github.com/Carmen-Shannon/oxy-flipper/engine/camera"
	"github.com/Carmen-Shannon/oxy-flipper/engine/config"
	"github.com/Carmen-Shannon/oxy-flipper/engine/entity"
	"github.com/Carmen-Shannon/oxy-flipper/engine/input"
	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/Carmen-Shannon/oxy-flipper/engine/packet"
	"github.com/Carmen-Shannon/oxy-flipper/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flipper/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// pushSpeed is how far a held click pushes a cube per second.
	pushSpeed = 4.0
	// spinSpeed is the cube spin rate in degrees per second while Space is held.
	spinSpeed = 90.0
)

// cubePositions places ten cubes in front of the default camera.
var cubePositions = []mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	profile := flag.Bool("profile", false, "log frame statistics every second")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*configPath, *profile); err != nil {
		common.Logger().Error("flipper exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, profile bool) error {
	// ── Config ──────────────────────────────────────────────────────
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	// ── Window + backend ────────────────────────────────────────────
	backendType, err := config.ParseBackend(cfg.Engine.Backend)
	if err != nil {
		return err
	}
	api := window.GraphicsAPIOpenGL
	if backendType == renderer.BackendTypeWGPU {
		api = window.GraphicsAPIWebGPU
	}
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithVSync(cfg.Window.VSync),
		window.WithGraphicsAPI(api),
	)
	backend, err := newBackend(backendType, win, cfg)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("create %s backend: %w", backendType, err)
	}
	r := renderer.NewRenderer(backendType, backend)
	if backendType == renderer.BackendTypeWGPU {
		// WebGPU objects outlive the window; GL objects die with its context.
		defer r.Release()
	}

	// ── Camera ──────────────────────────────────────────────────────
	// The framebuffer can be larger than the requested window size on high-DPI displays.
	camOpts := append(cfg.CameraOptions(), camera.WithViewport(float32(win.Width()), float32(win.Height())))
	cam := camera.NewCamera(camOpts...)
	ctrl := camera.NewCameraController(cam, cfg.ControllerOptions()...)

	// ── Packet of cubes ─────────────────────────────────────────────
	cube := mesh.NewCube("cube")
	cubes := packet.NewPacket("cubes", cam, r)
	for i, pos := range cubePositions {
		cubes.AddEntity(entity.NewEntity(
			entity.WithMesh(cube),
			entity.WithPose(entity.NewPose(
				entity.WithOrigin(pos),
				entity.WithRotation(mgl32.Vec3{1, 0.3, 0.5}, 20*float32(i)),
				entity.WithBoundary(0.5),
			)),
		))
	}

	// ── Engine ──────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithPacket(0, cubes),
		engine.WithProfiling(profile || cfg.Engine.Profile),
		engine.WithRenderFrameLimit(float64(cfg.Engine.FrameLimit)),
	)

	// ── Input ───────────────────────────────────────────────────────
	var toggles edges
	eng.SetTickCallback(func(dt float32, state input.State) {
		looking := state.ButtonDown(common.MouseButtonRight)
		win.SetCursorCaptured(looking)
		if !looking {
			state.CursorDX, state.CursorDY = 0, 0
		}

		if toggles.rising(common.KeyF, state) {
			next := camera.MoveModeFPS
			if ctrl.MoveMode() == camera.MoveModeFPS {
				next = camera.MoveModeNormal
			}
			ctrl.SetMoveMode(next)
			common.Logger().Info("move mode changed", "mode", next)
		}
		if toggles.rising(common.KeyR, state) {
			cubes.ResetEntities()
		}
		if state.Pressed(common.KeySpace) {
			cubes.UpdateEntity(mgl32.Vec3{}, mgl32.Vec3{}, spinSpeed*dt, mgl32.Vec3{1, 1, 1}, 0)
		}

		ctrl.Update(cam, state, dt)
		cubes.CheckContact(dt*pushSpeed, state, state.ButtonDown(common.MouseButtonLeft))
	})

	common.Logger().Info("flipper started", "cubes", cubes.Count(), "move_mode", ctrl.MoveMode())
	return eng.Run()
}

// newBackend builds the renderer backend drawing into win.
func newBackend(backendType renderer.RendererBackendType, win window.Window, cfg config.Config) (renderer.RendererBackend, error) {
	clearColor := mgl32.Vec4(cfg.Engine.ClearColor)
	if backendType == renderer.BackendTypeWGPU {
		return renderer.NewWGPUBackend(win.SurfaceDescriptor(), win.Width(), win.Height(), clearColor, cfg.Window.VSync)
	}
	return renderer.NewGLBackend(renderer.DefaultVertexShader, renderer.DefaultFragmentShader, clearColor)
}

// edges detects key presses across frames.
type edges struct {
	held map[uint32]bool
}

// rising reports whether key went down this frame.
func (e *edges) rising(key uint32, state input.State) bool {
	if e.held == nil {
		e.held = make(map[uint32]bool)
	}
	down := state.Pressed(key)
	was := e.held[key]
	e.held[key] = down
	return down && !was
}
