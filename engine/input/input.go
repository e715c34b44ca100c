// Package input turns window callbacks into a per-frame snapshot. The engine passes
// the snapshot to tick callbacks so controllers never read process-wide state.
package input

import "maps"

// State is an immutable snapshot of the input devices for one frame.
type State struct {
	// Keys holds every key currently held down.
	Keys map[uint32]bool
	// Buttons holds every mouse button currently held down.
	Buttons map[uint32]bool
	// Clicked holds the mouse buttons pressed since the previous snapshot.
	Clicked map[uint32]bool

	// CursorX, CursorY are the cursor coordinates in window (screen) coordinates.
	CursorX, CursorY float64
	// CursorDX, CursorDY are the cursor movement since the previous snapshot.
	CursorDX, CursorDY float64
	// Scroll is the vertical wheel movement since the previous snapshot.
	Scroll float32

	// Width, Height are the framebuffer dimensions in pixels.
	Width, Height int
	// WindowWidth, WindowHeight are the window dimensions in screen coordinates, the
	// space the cursor is reported in. They differ from Width, Height when the
	// display content scale is not 1.
	WindowWidth, WindowHeight int
}

// Pressed reports whether key is held.
func (s State) Pressed(key uint32) bool {
	return s.Keys[key]
}

// ButtonDown reports whether the mouse button is held.
func (s State) ButtonDown(button uint32) bool {
	return s.Buttons[button]
}

// JustClicked reports whether the mouse button went down since the previous snapshot.
func (s State) JustClicked(button uint32) bool {
	return s.Clicked[button]
}

// Tracker accumulates device events between frames.
// The zero value is not usable; call NewTracker.
type Tracker struct {
	keys    map[uint32]bool
	buttons map[uint32]bool
	clicked map[uint32]bool

	x, y         float64
	lastX, lastY float64
	hasCursor    bool
	scroll       float32

	width, height             int
	windowWidth, windowHeight int
}

// NewTracker creates an empty Tracker. The window size starts equal to the
// framebuffer size until WindowResized reports otherwise.
//
// Parameters:
//   - width, height: framebuffer size in pixels
//
// Returns:
//   - *Tracker: the tracker
func NewTracker(width, height int) *Tracker {
	return &Tracker{
		keys:    make(map[uint32]bool),
		buttons: make(map[uint32]bool),
		clicked: make(map[uint32]bool),
		width:        width,
		height:       height,
		windowWidth:  width,
		windowHeight: height,
	}
}

func (t *Tracker) KeyDown(key uint32) {
	t.keys[key] = true
}

func (t *Tracker) KeyUp(key uint32) {
	delete(t.keys, key)
}

func (t *Tracker) ButtonDown(button uint32) {
	if !t.buttons[button] {
		t.clicked[button] = true
	}
	t.buttons[button] = true
}

func (t *Tracker) ButtonUp(button uint32) {
	delete(t.buttons, button)
}

// CursorMoved records the new cursor position. The first sample only seeds the
// reference point so the initial jump into the window produces no delta.
func (t *Tracker) CursorMoved(x, y float64) {
	if !t.hasCursor {
		t.lastX, t.lastY = x, y
		t.hasCursor = true
	}
	t.x, t.y = x, y
}

func (t *Tracker) Scrolled(delta float32) {
	t.scroll += delta
}

func (t *Tracker) Resized(width, height int) {
	t.width, t.height = width, height
}

// WindowResized records the window size in screen coordinates.
func (t *Tracker) WindowResized(width, height int) {
	t.windowWidth, t.windowHeight = width, height
}

// Snapshot returns the current State and starts a new frame: deltas, scroll and
// clicks are reset.
//
// Returns:
//   - State: the snapshot
func (t *Tracker) Snapshot() State {
	s := State{
		Keys:     maps.Clone(t.keys),
		Buttons:  maps.Clone(t.buttons),
		Clicked:  maps.Clone(t.clicked),
		CursorX:  t.x,
		CursorY:  t.y,
		CursorDX: t.x - t.lastX,
		CursorDY: t.y - t.lastY,
		Scroll:   t.scroll,
		Width:    t.width,
		Height:   t.height,

		WindowWidth:  t.windowWidth,
		WindowHeight: t.windowHeight,
	}
	t.lastX, t.lastY = t.x, t.y
	t.scroll = 0
	clear(t.clicked)
	return s
}
