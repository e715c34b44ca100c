package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-flipper/engine/camera"
	"github.com/Carmen-Shannon/oxy-flipper/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	src := `
[window]
title = "flip"
width = 1280

[camera]
position = [1.0, 2.0, 5.0]
fov = 60.0

[controller]
move_mode = "FPS"
`
	cfg, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, "flip", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, [3]float32{1, 2, 5}, cfg.Camera.Position)
	assert.Equal(t, float32(60), cfg.Camera.Fov)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, "FPS", cfg.Controller.MoveMode)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[window]\ntitel = \"typo\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "titel")
}

func TestDecodeRejectsMalformedTOML(t *testing.T) {
	_, err := Decode(strings.NewReader("[window\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"window size", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"position equals target", func(c *Config) { c.Camera.Target = c.Camera.Position }, "position and target"},
		{"near beyond far", func(c *Config) { c.Camera.Near = 200 }, "clip planes"},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }, "clip planes"},
		{"negative speed", func(c *Config) { c.Camera.Speed = -1 }, "speeds"},
		{"sensitivity", func(c *Config) { c.Controller.Sensitivity = 0 }, "sensitivity"},
		{"nod limit", func(c *Config) { c.Controller.NodLimit = -5 }, "nod_limit"},
		{"move mode", func(c *Config) { c.Controller.MoveMode = "orbit" }, "move_mode"},
		{"frame limit", func(c *Config) { c.Engine.FrameLimit = -1 }, "frame_limit"},
		{"backend", func(c *Config) { c.Engine.Backend = "vulkan" }, "backend"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Window.Height = -1
	cfg.Controller.MoveMode = "orbit"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "move_mode")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipper.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nbackend = \"wgpu\"\nframe_limit = 60\nprofile = true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Engine.FrameLimit)
	assert.True(t, cfg.Engine.Profile)
	assert.Equal(t, "wgpu", cfg.Engine.Backend)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Window.Title = "round trip"
	cfg.Controller.MoveMode = "fps"

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, decoded)
}

func TestParseMoveMode(t *testing.T) {
	mode, err := ParseMoveMode(" Normal ")
	require.NoError(t, err)
	assert.Equal(t, camera.MoveModeNormal, mode)

	mode, err = ParseMoveMode("fps")
	require.NoError(t, err)
	assert.Equal(t, camera.MoveModeFPS, mode)

	_, err = ParseMoveMode("")
	assert.Error(t, err)
}

func TestParseBackend(t *testing.T) {
	backend, err := ParseBackend(Default().Engine.Backend)
	require.NoError(t, err)
	assert.Equal(t, renderer.BackendTypeGL, backend)

	backend, err = ParseBackend(" WGPU ")
	require.NoError(t, err)
	assert.Equal(t, renderer.BackendTypeWGPU, backend)

	_, err = ParseBackend("metal")
	assert.Error(t, err)
}

func TestOptionsBuildConfiguredCamera(t *testing.T) {
	cfg := Default()
	cfg.Window.Width, cfg.Window.Height = 1024, 512
	cfg.Camera.Position = [3]float32{0, 1, 4}
	cfg.Camera.Fov = 200
	cfg.Controller.MoveMode = "fps"
	cfg.Controller.NodLimit = 15

	cam := camera.NewCamera(cfg.CameraOptions()...)
	assert.Equal(t, mgl32.Vec3{0, 1, 4}, cam.Position())
	assert.Equal(t, float32(1024), cam.Width())
	assert.Equal(t, float32(512), cam.Height())
	assert.Equal(t, camera.MaxFov, cam.Fov())

	ctrl := camera.NewCameraController(cam, cfg.ControllerOptions()...)
	assert.Equal(t, camera.MoveModeFPS, ctrl.MoveMode())
	assert.Equal(t, float32(15), ctrl.NodLimit())
	assert.Equal(t, camera.DefaultSensitivity, ctrl.Sensitivity())
}
