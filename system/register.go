package system

import "github.com/lixenwraith/graphview/engine"

// RegisterAll adds the standard graph systems with the standard morphisms
// The returned interaction system receives input intents; picker may be nil for headless worlds
func RegisterAll(world *engine.World, picker Picker) *InteractionSystem {
	interaction := NewInteractionSystem(world, nil, picker)

	world.AddSystem(NewGraphSystem(world, nil, nil))
	world.AddSystem(NewNodeVisualSystem(world, nil))
	world.AddSystem(NewEdgeVisualSystem(world, nil))
	world.AddSystem(NewPositionSystem(world, nil))
	world.AddSystem(NewMetadataSystem(world))
	world.AddSystem(NewSelectionSystem(world, nil))
	world.AddSystem(interaction)
	world.AddSystem(NewAudioSystem(world))

	return interaction
}
