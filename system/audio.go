package system

import (
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/parameter"
)

// AudioSystem consumes sound request events and plays audio cues
// Decouples systems from direct player access
type AudioSystem struct {
	world  *engine.World
	player engine.AudioPlayer

	enabled bool
}

// NewAudioSystem creates an audio system using the world's player
// The player may be nil if audio is disabled
func NewAudioSystem(world *engine.World) engine.System {
	s := &AudioSystem{
		world:  world,
		player: world.Resources.Audio,
	}
	s.Init()
	return s
}

// Init resets session state
func (s *AudioSystem) Init() {
	s.enabled = true
}

func (s *AudioSystem) Name() string {
	return "audio"
}

// Priority returns the system's priority
func (s *AudioSystem) Priority() int {
	return parameter.PriorityAudio
}

// SetEnabled mutes or unmutes cues
func (s *AudioSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// EventTypes returns the event types AudioSystem handles
func (s *AudioSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSoundRequest}
}

// HandleEvent processes sound request events
func (s *AudioSystem) HandleEvent(ev event.GraphEvent) {
	if !s.enabled || s.player == nil {
		return
	}
	if payload, ok := ev.Payload.(*event.SoundRequestPayload); ok {
		s.player.Play(payload.SoundType)
	}
}

// Update implements System interface (no tick-based logic)
func (s *AudioSystem) Update() {}
