package packet

import "github.com/Carmen-Shannon/oxy-flipper/engine/entity"

// PacketBuilderOption is a functional option for configuring a Packet.
// Use the With* functions to create options.
type PacketBuilderOption func(p *packet)

// WithActive sets whether the packet is rendered by the engine.
//
// Parameters:
//   - active: whether the packet is active
//
// Returns:
//   - PacketBuilderOption: option function to apply
func WithActive(active bool) PacketBuilderOption {
	return func(p *packet) {
		p.active = active
	}
}

// WithEntities adds initial entities to the packet.
// Entities without IDs are assigned new IDs.
//
// Parameters:
//   - entities: the entities to add
//
// Returns:
//   - PacketBuilderOption: option function to apply
func WithEntities(entities ...entity.Entity) PacketBuilderOption {
	return func(p *packet) {
		for _, e := range entities {
			p.AddEntity(e)
		}
	}
}

// WithCullingDisabled disables frustum culling for the packet. By default culling
// is enabled.
//
// Parameters:
//   - disabled: true to disable frustum culling
//
// Returns:
//   - PacketBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) PacketBuilderOption {
	return func(p *packet) {
		p.cullingDisabled = disabled
	}
}
