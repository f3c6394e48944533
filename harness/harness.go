// Package harness runs YAML scenarios against a headless world wired to a domain service.
//
// Each scenario gets a fresh world with the standard systems, a manual clock
// and a domain service whose events feed the world. After every step the
// scheduler ticks until both queues are empty, so expectations and snapshots
// only observe settled state. Node and edge names double as their IDs, which
// keeps snapshots stable across runs.
package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/ctxlog"
	"github.com/lixenwraith/graphview/domain"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/input"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/parameter"
	"github.com/lixenwraith/graphview/system"
	"github.com/lixenwraith/graphview/vmath"
)

// maxSettleTicks bounds the ticks spent draining queues after one step
const maxSettleTicks = 16

// Result is the outcome of one scenario run
type Result struct {
	Scenario *Scenario
	Snapshot *Snapshot

	// Failures lists unmet expectations; empty means the scenario passed
	Failures []string
}

// Passed reports whether every expectation held
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

type runner struct {
	scenario    *Scenario
	world       *engine.World
	sched       *engine.Scheduler
	interaction *system.InteractionSystem
	svc         *domain.Service
	graph       core.GraphID
	sounds      *soundLog
	rejected    []string
	log         *slog.Logger
}

// Run executes a scenario and checks its expectations
// Rejected domain operations are recorded, not returned; the error covers malformed steps only
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	r, err := newRunner(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}

	for i, st := range s.Steps {
		if err := r.step(ctx, st); err != nil {
			return nil, fmt.Errorf("scenario %q step %d: %w", s.Name, i, err)
		}
		r.settle()
	}

	snap := r.snapshot()
	return &Result{
		Scenario: s,
		Snapshot: snap,
		Failures: check(s.Expect, snap),
	}, nil
}

func newRunner(ctx context.Context, s *Scenario) (*runner, error) {
	log := ctxlog.FromContext(ctx)

	w := engine.NewWorld()
	w.Resources.Log = log
	sounds := &soundLog{}
	w.Resources.Audio = sounds

	r := &runner{
		scenario: s,
		world:    w,
		graph:    core.GraphID(s.Graph),
		sounds:   sounds,
		log:      log,
	}
	r.interaction = system.RegisterAll(w, &gridPicker{world: w})

	r.sched = engine.NewScheduler(w, engine.NewManualClock(time.Unix(0, 0)), 0)
	r.sched.Setup()

	r.svc = domain.NewService(w.Resources.Inbound,
		domain.WithLogger(log),
		domain.WithFrameSource(w.FrameNumber),
		domain.WithDrain(parameter.EventQueueSize/2, func() { r.sched.Drain() }),
	)
	if err := r.svc.AddGraph(r.graph); err != nil {
		return nil, err
	}

	r.sched.OnTick(func() {
		outbound := w.Resources.Outbound.Consume()
		if len(outbound) == 0 {
			return
		}
		if err := r.svc.HandleOutbound(ctx, outbound); err != nil {
			r.reject(err)
		}
	})
	return r, nil
}

// settle ticks at least once, then until both queues are empty
func (r *runner) settle() {
	for i := 0; i < maxSettleTicks; i++ {
		r.sched.Tick()
		if r.world.Resources.Inbound.Len() == 0 && r.world.Resources.Outbound.Len() == 0 {
			return
		}
	}
	r.log.Warn("scenario did not settle", "scenario", r.scenario.Name, "ticks", maxSettleTicks)
}

func (r *runner) reject(err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		r.rejected = append(r.rejected, line)
	}
}

func (r *runner) step(ctx context.Context, st Step) error {
	switch {
	case st.Event != "":
		return r.inject(st)
	case st.Do != "":
		if err := r.do(ctx, st); err != nil {
			if domain.CodeOf(err) == "" {
				return err
			}
			r.reject(err)
		}
		return nil
	case st.Input != "":
		return r.input(st)
	default:
		for i := 1; i < st.Ticks; i++ {
			r.sched.Tick()
		}
		return nil
	}
}

// inject decodes the payload map through the event registry and pushes it inbound
func (r *runner) inject(st Step) error {
	et, ok := event.GetEventType(st.Event)
	if !ok {
		return fmt.Errorf("unknown event %q", st.Event)
	}
	raw, err := json.Marshal(st.Payload)
	if err != nil {
		return fmt.Errorf("event %s payload: %w", st.Event, err)
	}
	payload, err := event.DecodePayload(et, raw)
	if err != nil {
		return err
	}
	r.world.PushEvent(et, payload)
	return nil
}

func (r *runner) do(ctx context.Context, st Step) error {
	g := r.graph
	switch st.Do {
	case OpCreateNode:
		pos, err := vec(st.Position)
		if err != nil {
			return err
		}
		_, err = r.svc.CreateNode(ctx, g, core.NodeID(st.Node), pos, st.Label)
		return err
	case OpRemoveNode:
		return r.svc.RemoveNode(ctx, g, core.NodeID(st.Node))
	case OpConnect:
		_, err := r.svc.Connect(ctx, g, core.EdgeID(st.Edge), core.NodeID(st.Source), core.NodeID(st.Target), st.Weight)
		return err
	case OpRemoveEdge:
		return r.svc.RemoveEdge(ctx, g, core.EdgeID(st.Edge))
	case OpMove:
		pos, err := vec(st.Position)
		if err != nil {
			return err
		}
		return r.svc.MoveNode(ctx, g, core.NodeID(st.Node), pos)
	case OpSetMetadata:
		if st.Edge != "" {
			return r.svc.SetEdgeMetadata(ctx, g, core.EdgeID(st.Edge), st.Metadata)
		}
		return r.svc.SetNodeMetadata(ctx, g, core.NodeID(st.Node), st.Metadata)
	case OpHighlight:
		return r.svc.HighlightEdge(ctx, g, core.EdgeID(st.Edge), st.On)
	case OpWeight:
		return r.svc.SetEdgeWeight(ctx, g, core.EdgeID(st.Edge), st.Weight)
	case OpSelect:
		ids := make([]core.NodeID, len(st.Nodes))
		for i, n := range st.Nodes {
			ids[i] = core.NodeID(n)
		}
		return r.svc.Select(ctx, event.SelectionChangedPayload{GraphID: g, Selected: ids, Exclusive: st.Exclusive})
	case OpLayout:
		return r.svc.Layout(ctx, g)
	case OpClear:
		return r.svc.ClearGraph(ctx, g)
	default:
		return fmt.Errorf("unknown operation %q", st.Do)
	}
}

func (r *runner) input(st Step) error {
	switch st.Input {
	case InputClick:
		cell, err := point(st.At)
		if err != nil {
			return err
		}
		r.interaction.Submit(input.Intent{
			Type:      input.IntentClick,
			Cell:      cell,
			Modifiers: morphism.Modifiers{Shift: st.Shift},
		})
	case InputDrag:
		from, err := point(st.From)
		if err != nil {
			return err
		}
		to, err := point(st.To)
		if err != nil {
			return err
		}
		r.interaction.Submit(input.Intent{Type: input.IntentDrag, From: from, To: to, Cell: to})
		r.interaction.Submit(input.Intent{Type: input.IntentDragEnd, Cell: to})
	case InputKey:
		key, mods, err := parseKey(st.Key)
		if err != nil {
			return err
		}
		if len(st.At) > 0 {
			cell, err := point(st.At)
			if err != nil {
				return err
			}
			r.interaction.Submit(input.Intent{Type: input.IntentHover, Cell: cell})
		}
		r.interaction.Submit(input.Intent{Type: input.IntentKey, Key: key, Modifiers: mods})
	default:
		return fmt.Errorf("unknown input %q", st.Input)
	}
	return nil
}

// parseKey accepts a single rune, "delete", or "ctrl+a"
func parseKey(s string) (morphism.KeyCode, morphism.Modifiers, error) {
	switch strings.ToLower(s) {
	case "delete", "del":
		return morphism.SpecialKey(tcell.KeyDelete), morphism.Modifiers{}, nil
	case "ctrl+a":
		return morphism.SpecialKey(tcell.KeyCtrlA), morphism.Modifiers{Ctrl: true}, nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return morphism.KeyCode{}, morphism.Modifiers{}, fmt.Errorf("unknown key %q", s)
	}
	return morphism.RuneKey(runes[0]), morphism.Modifiers{}, nil
}

func vec(v []float64) (vmath.Vec3, error) {
	switch len(v) {
	case 0:
		return vmath.Vec3{}, nil
	case 2:
		return vmath.V3(v[0], v[1], 0), nil
	case 3:
		return vmath.V3(v[0], v[1], v[2]), nil
	default:
		return vmath.Vec3{}, fmt.Errorf("position needs 2 or 3 numbers, got %d", len(v))
	}
}

func point(v []int) (core.Point, error) {
	if len(v) != 2 {
		return core.Point{}, fmt.Errorf("cell needs 2 integers, got %d", len(v))
	}
	return core.Point{X: v[0], Y: v[1]}, nil
}

// gridPicker maps cell (x, y) to world (x, y) and picks the newest node on that cell
type gridPicker struct {
	world *engine.World
}

func (p *gridPicker) CellToWorld(cell core.Point) vmath.Vec3 {
	return vmath.V3(float64(cell.X), float64(cell.Y), 0)
}

func (p *gridPicker) EntityAt(cell core.Point) core.Entity {
	hit := core.NoEntity
	for _, e := range p.world.Components.NodeVisual.All() {
		tr, ok := p.world.Components.Transform.Get(e)
		if !ok {
			continue
		}
		if roundCell(tr.Translation.X) == cell.X && roundCell(tr.Translation.Y) == cell.Y && e > hit {
			hit = e
		}
	}
	return hit
}

func roundCell(f float64) int {
	return int(math.Round(f))
}

// soundLog records cues instead of playing them
type soundLog struct {
	played []core.SoundType
}

func (l *soundLog) Play(s core.SoundType) bool {
	l.played = append(l.played, s)
	return true
}
