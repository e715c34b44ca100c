package packet

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-flipper/common"
	"github.com/Carmen-Shannon/oxy-flipper/engine/camera"
	"github.com/Carmen-Shannon/oxy-flipper/engine/entity"
	"github.com/Carmen-Shannon/oxy-flipper/engine/input"
	"github.com/Carmen-Shannon/oxy-flipper/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// Packet groups entities that are viewed through one Camera and drawn by one Renderer.
//
// Entity indices used by MoveEntity and UpdateEntity are 1-based in insertion order;
// index 0 targets every entity and indices past the end are ignored.
type Packet interface {
	// Name returns the packet's identifier.
	Name() string

	// Active returns whether this packet is rendered by the engine.
	Active() bool

	// SetActive sets whether this packet is rendered by the engine.
	SetActive(active bool)

	// Camera returns the packet's camera.
	Camera() camera.Camera

	// Renderer returns the packet's renderer.
	Renderer() renderer.Renderer

	// Entities returns the entities in insertion order.
	//
	// Returns:
	//   - []entity.Entity: the entities
	Entities() []entity.Entity

	// Count returns the number of entities.
	Count() int

	// AddEntity appends an entity. An entity with ID 0 is assigned the next free ID.
	//
	// Parameters:
	//   - e: the entity to add
	//
	// Returns:
	//   - uint64: the entity ID
	AddEntity(e entity.Entity) uint64

	// Get returns the entity with the given ID, or nil.
	Get(id uint64) entity.Entity

	// MoveEntity replaces the model matrix of the targeted entities wholesale.
	//
	// Parameters:
	//   - model: the new model matrix
	//   - index: 1-based entity index, or 0 for all
	MoveEntity(model mgl32.Mat4, index int)

	// UpdateEntity accumulates pose deltas into the targeted entities.
	//
	// Parameters:
	//   - dOrigin: translation delta
	//   - dAxis: rotation axis delta
	//   - dAngle: rotation angle delta in degrees
	//   - dScale: multiplicative scale delta
	//   - index: 1-based entity index, or 0 for all
	UpdateEntity(dOrigin, dAxis mgl32.Vec3, dAngle float32, dScale mgl32.Vec3, index int)

	// ResetEntities resets the pose of every entity to identity.
	ResetEntities()

	// CheckContact pushes every entity under the cursor away from the camera when
	// clicked is true. The cursor is mapped to normalized device coordinates with y up
	// against the window size it is reported in, then tested against each pose at the
	// depth of the camera target.
	//
	// Parameters:
	//   - dt: frame delta time in seconds, used as the push distance
	//   - state: the input snapshot holding the cursor position and window size; a zero
	//     window size falls back to the camera viewport
	//   - clicked: whether the primary button is down
	//
	// Returns:
	//   - int: the number of entities pushed
	CheckContact(dt float32, state input.State, clicked bool) int

	// CullingDisabled returns whether frustum culling is skipped during Render.
	CullingDisabled() bool

	// SetCullingDisabled enables or disables frustum culling during Render.
	SetCullingDisabled(disabled bool)

	// Render uploads the camera matrices, uploads the model matrix and draws each
	// enabled entity whose bounding sphere intersects the view frustum, then refreshes
	// the camera view for the next frame.
	//
	// Parameters:
	//   - dt: frame delta time in seconds
	//
	// Returns:
	//   - error: the first upload or draw error; remaining entities are still drawn
	Render(dt float32) error
}

// packet is the implementation of the Packet interface.
type packet struct {
	name            string
	active          bool
	cullingDisabled bool

	cam camera.Camera
	r   renderer.Renderer

	entities []entity.Entity
	nextID   uint64
}

var _ Packet = &packet{}

// NewPacket creates a new Packet. Packets are active by default.
// Panics if cam or r is nil.
//
// Parameters:
//   - name: the packet identifier
//   - cam: the camera viewing the packet
//   - r: the renderer drawing the packet
//   - options: functional options to configure the packet
//
// Returns:
//   - Packet: the newly created packet
func NewPacket(name string, cam camera.Camera, r renderer.Renderer, options ...PacketBuilderOption) Packet {
	if cam == nil {
		panic("packet: NewPacket requires a non-nil Camera")
	}
	if r == nil {
		panic("packet: NewPacket requires a non-nil Renderer")
	}

	p := &packet{
		name:   name,
		active: true,
		cam:    cam,
		r:      r,
		nextID: 1,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *packet) Name() string {
	return p.name
}

func (p *packet) Active() bool {
	return p.active
}

func (p *packet) SetActive(active bool) {
	p.active = active
}

func (p *packet) Camera() camera.Camera {
	return p.cam
}

func (p *packet) Renderer() renderer.Renderer {
	return p.r
}

func (p *packet) Entities() []entity.Entity {
	return p.entities
}

func (p *packet) Count() int {
	return len(p.entities)
}

func (p *packet) AddEntity(e entity.Entity) uint64 {
	if e.ID() == 0 {
		e.SetID(p.nextID)
	}
	if e.ID() >= p.nextID {
		p.nextID = e.ID() + 1
	}
	p.entities = append(p.entities, e)
	return e.ID()
}

func (p *packet) Get(id uint64) entity.Entity {
	for _, e := range p.entities {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

func (p *packet) MoveEntity(model mgl32.Mat4, index int) {
	p.each(index, func(e entity.Entity) {
		e.Pose().SetAbsolute(model)
	})
}

func (p *packet) UpdateEntity(dOrigin, dAxis mgl32.Vec3, dAngle float32, dScale mgl32.Vec3, index int) {
	p.each(index, func(e entity.Entity) {
		e.Pose().Update(dOrigin, dAxis, dAngle, dScale)
	})
}

func (p *packet) ResetEntities() {
	p.each(0, func(e entity.Entity) {
		e.Pose().Reset()
	})
}

func (p *packet) CheckContact(dt float32, state input.State, clicked bool) int {
	if !clicked {
		return 0
	}
	width, height := state.WindowWidth, state.WindowHeight
	if width <= 0 || height <= 0 {
		width, height = int(p.cam.Width()), int(p.cam.Height())
	}
	x := common.CursorToNDC(state.CursorX, width)
	y := -common.CursorToNDC(state.CursorY, height)
	depth := p.cam.Target().Z()
	forward := p.cam.Direction().Mul(-1)

	pushed := 0
	for _, e := range p.entities {
		if !e.Enabled() || !e.Pose().IsReachable(x, y, depth) {
			continue
		}
		e.Expulse(dt, forward)
		pushed++
		common.Logger().Debug("entity pushed", "id", e.ID(), "x", x, "y", y, "depth", depth)
	}
	return pushed
}

func (p *packet) CullingDisabled() bool {
	return p.cullingDisabled
}

func (p *packet) SetCullingDisabled(disabled bool) {
	p.cullingDisabled = disabled
}

func (p *packet) Render(dt float32) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	keep(p.r.SetView(p.cam.ViewMatrix()))
	keep(p.r.SetProjection(p.cam.ProjectionMatrix()))

	frustum := p.cam.Frustum()
	for _, e := range p.entities {
		if !e.Enabled() || e.Mesh() == nil {
			continue
		}
		model := e.ModelMatrix()
		if !p.cullingDisabled && !frustum.ContainsSphere(boundingSphere(e, model)) {
			continue
		}
		if err := p.r.SetModel(model); err != nil {
			keep(fmt.Errorf("entity %d: %w", e.ID(), err))
			continue
		}
		if err := p.r.Draw(e.Mesh()); err != nil {
			keep(fmt.Errorf("entity %d: %w", e.ID(), err))
		}
	}

	p.cam.RefreshView()
	return first
}

// each applies fn to the entity at the 1-based index, or to all entities when index is 0.
func (p *packet) each(index int, fn func(entity.Entity)) {
	if index == 0 {
		for _, e := range p.entities {
			fn(e)
		}
		return
	}
	if index < 1 || index > len(p.entities) {
		return
	}
	fn(p.entities[index-1])
}

// boundingSphere returns the world-space bounding sphere of an entity: the model's
// translation and the mesh radius (or the pose boundary when the mesh has none)
// scaled by the model's largest axis scale.
func boundingSphere(e entity.Entity, model mgl32.Mat4) (mgl32.Vec3, float32) {
	radius := e.Mesh().BoundingRadius()
	if radius <= 0 {
		radius = e.Pose().Boundary()
	}
	scale := max(model.Col(0).Vec3().Len(), model.Col(1).Vec3().Len(), model.Col(2).Vec3().Len())
	return model.Col(3).Vec3(), radius * scale
}
