package entity

import (
	"github.com/Carmen-Shannon/oxy-flipper/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

type entityImpl struct {
	id      uint64
	enabled bool
	mesh    mesh.Mesh
	pose    Pose
}

// Entity is a renderable object in a packet: a mesh placed in the world by a Pose.
type Entity interface {
	// ID returns the entity's identifier.
	//
	// Returns:
	//   - uint64: the entity ID
	ID() uint64

	// SetID assigns the entity's identifier. Packets assign IDs to entities added
	// without one.
	//
	// Parameters:
	//   - id: the new ID
	SetID(id uint64)

	// Enabled returns whether the entity is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled toggles whether the entity is drawn.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Mesh returns the entity's mesh, or nil if it has none.
	//
	// Returns:
	//   - mesh.Mesh: the mesh
	Mesh() mesh.Mesh

	// Pose returns the entity's pose.
	//
	// Returns:
	//   - Pose: the pose
	Pose() Pose

	// ModelMatrix is shorthand for Pose().ModelMatrix().
	ModelMatrix() mgl32.Mat4

	// Expulse pushes the entity along direction by dt through its tracked origin.
	//
	// Parameters:
	//   - dt: the step size, typically the frame delta
	//   - direction: the push direction
	Expulse(dt float32, direction mgl32.Vec3)
}

var _ Entity = &entityImpl{}

// NewEntity creates a new Entity with the given options. An entity is enabled by
// default and gets a fresh Pose when none is supplied.
//
// Parameters:
//   - options: functional options to configure the entity
//
// Returns:
//   - Entity: the newly created entity
func NewEntity(options ...EntityBuilderOption) Entity {
	e := &entityImpl{
		enabled: true,
	}
	for _, option := range options {
		option(e)
	}
	if e.pose == nil {
		e.pose = NewPose()
	}
	return e
}

func (e *entityImpl) ID() uint64 {
	return e.id
}

func (e *entityImpl) SetID(id uint64) {
	e.id = id
}

func (e *entityImpl) Enabled() bool {
	return e.enabled
}

func (e *entityImpl) SetEnabled(enabled bool) {
	e.enabled = enabled
}

func (e *entityImpl) Mesh() mesh.Mesh {
	return e.mesh
}

func (e *entityImpl) Pose() Pose {
	return e.pose
}

func (e *entityImpl) ModelMatrix() mgl32.Mat4 {
	return e.pose.ModelMatrix()
}

func (e *entityImpl) Expulse(dt float32, direction mgl32.Vec3) {
	e.pose.Update(direction.Mul(dt), mgl32.Vec3{}, 0, mgl32.Vec3{1, 1, 1})
}
