package entity

import "github.com/Carmen-Shannon/oxy-flipper/engine/mesh"

// EntityBuilderOption is a functional option for configuring an Entity via NewEntity.
type EntityBuilderOption func(*entityImpl)

// WithID sets the entity identifier.
func WithID(id uint64) EntityBuilderOption {
	return func(e *entityImpl) {
		e.id = id
	}
}

// WithEnabled sets the initial enabled state.
func WithEnabled(enabled bool) EntityBuilderOption {
	return func(e *entityImpl) {
		e.enabled = enabled
	}
}

// WithMesh sets the entity's mesh.
//
// Parameters:
//   - m: the mesh to render
//
// Returns:
//   - EntityBuilderOption: a function that applies the mesh option to an entity
func WithMesh(m mesh.Mesh) EntityBuilderOption {
	return func(e *entityImpl) {
		e.mesh = m
	}
}

// WithPose sets the entity's pose.
//
// Parameters:
//   - p: the pose
//
// Returns:
//   - EntityBuilderOption: a function that applies the pose option to an entity
func WithPose(p Pose) EntityBuilderOption {
	return func(e *entityImpl) {
		e.pose = p
	}
}
