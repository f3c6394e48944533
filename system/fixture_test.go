package system

import (
	"testing"
	"time"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/vmath"
)

// gridPicker maps cell (x, y) to world (x, y) and resolves entities from a fixed table
type gridPicker struct {
	at map[core.Point]core.Entity
}

func (p *gridPicker) CellToWorld(cell core.Point) vmath.Vec3 {
	return vmath.V3(float64(cell.X), float64(cell.Y), 0)
}

func (p *gridPicker) EntityAt(cell core.Point) core.Entity {
	return p.at[cell]
}

// cuePlayer records played sounds
type cuePlayer struct {
	played []core.SoundType
}

func (c *cuePlayer) Play(s core.SoundType) bool {
	c.played = append(c.played, s)
	return true
}

type fixture struct {
	world       *engine.World
	scheduler   *engine.Scheduler
	interaction *InteractionSystem
	picker      *gridPicker
	audio       *cuePlayer
	graph       core.GraphID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	w := engine.NewWorld()
	player := &cuePlayer{}
	w.Resources.Audio = player

	picker := &gridPicker{at: make(map[core.Point]core.Entity)}
	interaction := RegisterAll(w, picker)

	s := engine.NewScheduler(w, engine.NewManualClock(time.Unix(0, 0)), 0)
	s.Setup()

	return &fixture{
		world:       w,
		scheduler:   s,
		interaction: interaction,
		picker:      picker,
		audio:       player,
		graph:       core.NewGraphID(),
	}
}

func (f *fixture) emit(t event.EventType, payload any) {
	f.world.PushEvent(t, payload)
}

func (f *fixture) tick() {
	f.scheduler.Tick()
}

func (f *fixture) addNode(pos vmath.Vec3) (core.NodeID, core.Entity) {
	id := core.NewNodeID()
	f.emit(event.EventNodeCreated, &event.NodeCreatedPayload{NodeID: id, GraphID: f.graph, Position: pos})
	f.tick()
	e, _ := f.world.Index.Node(id)
	return id, e
}

func (f *fixture) addEdge(src, dst core.NodeID) (core.EdgeID, core.Entity) {
	id := core.NewEdgeID()
	f.emit(event.EventEdgeCreated, &event.EdgeCreatedPayload{EdgeID: id, GraphID: f.graph, SourceID: src, TargetID: dst})
	f.tick()
	e, _ := f.world.Index.Edge(id)
	return id, e
}

func (f *fixture) outbound() []event.GraphEvent {
	return f.world.Resources.Outbound.Consume()
}
