package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/graphview/component"
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/parameter"
	"github.com/lixenwraith/graphview/vmath"
)

const tracerName = "github.com/lixenwraith/graphview/domain"

// Emitter publishes graph events; *event.Queue satisfies it
type Emitter interface {
	Emit(t event.EventType, payload any, frame int64)
}

// Recorder persists graph events before they are published; *journal.Store satisfies it
type Recorder interface {
	Append(ctx context.Context, graphID core.GraphID, ev event.GraphEvent) (int64, error)
}

// backlog is implemented by emitters that can report unread events, such as *event.Queue
type backlog interface {
	Len() int
}

// Option configures a Service
type Option func(*Service)

// WithRecorder journals every published domain fact
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the service logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithTracer overrides the global tracer
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithDrain calls drain whenever the emitter holds at least threshold unread events
// Large scenes and bulk deletes publish more events than the inbound ring holds;
// drain must consume them without re-entering the service
func WithDrain(threshold int, drain func()) Option {
	return func(s *Service) {
		s.drainAt = max(threshold, 1)
		s.drain = drain
	}
}

// WithFrameSource stamps published events with the caller's frame counter
func WithFrameSource(fn func() int64) Option {
	return func(s *Service) { s.frame = fn }
}

// Service owns the domain graphs and is the only writer to them
// Successful mutations are recorded (optional) then emitted in causal order
type Service struct {
	mu     sync.Mutex
	graphs map[core.GraphID]*Graph
	active core.GraphID

	emit     Emitter
	recorder Recorder
	log      *slog.Logger
	tracer   trace.Tracer
	frame    func() int64

	drain   func()
	drainAt int
}

// NewService creates a service publishing to emit
func NewService(emit Emitter, opts ...Option) *Service {
	s := &Service{
		graphs: make(map[core.GraphID]*Graph),
		emit:   emit,
		log:    slog.Default(),
		frame:  func() int64 { return 0 },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// AddGraph registers an empty graph; the first graph becomes active
// Adding an existing graph is a no-op
func (s *Service) AddGraph(id core.GraphID) error {
	if id == "" {
		return NewError(CodeInvalidArgument, "graph id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graphs[id]; !ok {
		s.graphs[id] = NewGraph(id)
	}
	if s.active == "" {
		s.active = id
	}
	return nil
}

// UseGraph makes id the target of view commands
func (s *Service) UseGraph(id core.GraphID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graphs[id]; !ok {
		return WrapError(CodeGraphNotFound, fmt.Sprintf("graph %s", id.Short()), ErrGraphNotFound)
	}
	s.active = id
	return nil
}

// ActiveGraph returns the graph view commands act on
func (s *Service) ActiveGraph() core.GraphID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Snapshot returns a deep copy of a graph
func (s *Service) Snapshot(id core.GraphID) (*Graph, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.graphs[id]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// CreateNode adds a node; an empty id allocates one
// A non-empty label is stored under the label metadata key
func (s *Service) CreateNode(ctx context.Context, graphID core.GraphID, id core.NodeID, pos vmath.Vec3, label string) (core.NodeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createNode(ctx, graphID, id, pos, label)
}

func (s *Service) createNode(ctx context.Context, graphID core.GraphID, id core.NodeID, pos vmath.Vec3, label string) (core.NodeID, error) {
	g, err := s.graph(graphID)
	if err != nil {
		return "", err
	}
	if !finite(pos) {
		return "", NewError(CodeInvalidArgument, "node position is not finite")
	}
	if id == "" {
		id = core.NewNodeID()
	}
	if _, exists := g.Nodes[id]; exists {
		return "", NewError(CodeInvalidArgument, "node %s already exists", id.Short())
	}

	n := &Node{ID: id, Position: pos}
	if label != "" {
		n.Metadata = map[string]string{component.MetadataLabelKey: label}
	}
	g.addNode(n)

	err = s.publish(ctx, g.ID, event.EventNodeCreated, &event.NodeCreatedPayload{
		NodeID:   id,
		GraphID:  g.ID,
		Position: pos,
		Label:    label,
	})
	if err != nil {
		return id, err
	}
	if n.Metadata != nil {
		err = s.publish(ctx, g.ID, event.EventNodeMetadataChanged, &event.NodeMetadataChangedPayload{
			NodeID:   id,
			GraphID:  g.ID,
			Metadata: maps.Clone(n.Metadata),
		})
	}
	return id, err
}

// RemoveNode deletes a node and its incident edges
// Edge removals are published before the node removal
func (s *Service) RemoveNode(ctx context.Context, graphID core.GraphID, id core.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeNode(ctx, graphID, id)
}

func (s *Service) removeNode(ctx context.Context, graphID core.GraphID, id core.NodeID) error {
	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	if _, ok := g.Nodes[id]; !ok {
		return nodeNotFound(id)
	}

	for _, eid := range g.IncidentEdges(id) {
		if err := s.removeEdge(ctx, g, eid); err != nil {
			return err
		}
	}

	g.removeNode(id)
	return s.publish(ctx, g.ID, event.EventNodeRemoved, &event.NodeRemovedPayload{
		NodeID:  id,
		GraphID: g.ID,
	})
}

// Connect adds a directed edge; an empty id allocates one, weight <= 0 uses the default
func (s *Service) Connect(ctx context.Context, graphID core.GraphID, id core.EdgeID, source, target core.NodeID, weight float64) (core.EdgeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connect(ctx, graphID, id, source, target, weight)
}

func (s *Service) connect(ctx context.Context, graphID core.GraphID, id core.EdgeID, source, target core.NodeID, weight float64) (core.EdgeID, error) {
	g, err := s.graph(graphID)
	if err != nil {
		return "", err
	}
	if source == target {
		return "", WrapError(CodeSelfLoop, fmt.Sprintf("edge %s -> %s", source.Short(), target.Short()), ErrSelfLoop)
	}
	if _, ok := g.Nodes[source]; !ok {
		return "", nodeNotFound(source)
	}
	if _, ok := g.Nodes[target]; !ok {
		return "", nodeNotFound(target)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return "", NewError(CodeInvalidArgument, "edge weight is not finite")
	}
	if existing, ok := g.FindEdge(source, target); ok {
		return existing.ID, WrapError(CodeDuplicateEdge,
			fmt.Sprintf("edge %s -> %s exists as %s", source.Short(), target.Short(), existing.ID.Short()), ErrDuplicateEdge)
	}
	if id == "" {
		id = core.NewEdgeID()
	}
	if _, exists := g.Edges[id]; exists {
		return "", NewError(CodeInvalidArgument, "edge %s already exists", id.Short())
	}
	if weight <= 0 {
		weight = DefaultEdgeWeight
	}

	g.addEdge(&Edge{ID: id, Source: source, Target: target, Weight: weight})
	return id, s.publish(ctx, g.ID, event.EventEdgeCreated, &event.EdgeCreatedPayload{
		EdgeID:   id,
		GraphID:  g.ID,
		SourceID: source,
		TargetID: target,
		Weight:   weight,
	})
}

// RemoveEdge deletes an edge
func (s *Service) RemoveEdge(ctx context.Context, graphID core.GraphID, id core.EdgeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	return s.removeEdge(ctx, g, id)
}

func (s *Service) removeEdge(ctx context.Context, g *Graph, id core.EdgeID) error {
	if _, ok := g.removeEdge(id); !ok {
		return edgeNotFound(id)
	}
	return s.publish(ctx, g.ID, event.EventEdgeRemoved, &event.EdgeRemovedPayload{
		EdgeID:  id,
		GraphID: g.ID,
	})
}

// MoveNode sets a node's authoritative position
func (s *Service) MoveNode(ctx context.Context, graphID core.GraphID, id core.NodeID, pos vmath.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveNode(ctx, graphID, id, pos)
}

func (s *Service) moveNode(ctx context.Context, graphID core.GraphID, id core.NodeID, pos vmath.Vec3) error {
	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	n, ok := g.Nodes[id]
	if !ok {
		return nodeNotFound(id)
	}
	if !finite(pos) {
		return NewError(CodeInvalidArgument, "node position is not finite")
	}

	n.Position = pos
	return s.publish(ctx, g.ID, event.EventNodePositionChanged, &event.NodePositionChangedPayload{
		NodeID:      id,
		GraphID:     g.ID,
		NewPosition: pos,
	})
}

// SetNodeMetadata replaces a node's metadata; unchanged metadata publishes nothing
func (s *Service) SetNodeMetadata(ctx context.Context, graphID core.GraphID, id core.NodeID, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	n, ok := g.Nodes[id]
	if !ok {
		return nodeNotFound(id)
	}
	if maps.Equal(n.Metadata, metadata) {
		return nil
	}

	n.Metadata = maps.Clone(metadata)
	return s.publish(ctx, g.ID, event.EventNodeMetadataChanged, &event.NodeMetadataChangedPayload{
		NodeID:   id,
		GraphID:  g.ID,
		Metadata: maps.Clone(metadata),
	})
}

// SetEdgeMetadata replaces an edge's metadata; unchanged metadata publishes nothing
func (s *Service) SetEdgeMetadata(ctx context.Context, graphID core.GraphID, id core.EdgeID, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	e, ok := g.Edges[id]
	if !ok {
		return edgeNotFound(id)
	}
	if maps.Equal(e.Metadata, metadata) {
		return nil
	}

	e.Metadata = maps.Clone(metadata)
	return s.publish(ctx, g.ID, event.EventEdgeMetadataChanged, &event.EdgeMetadataChangedPayload{
		EdgeID:   id,
		GraphID:  g.ID,
		Metadata: maps.Clone(metadata),
	})
}

// SetEdgeWeight changes an edge's weight; weight must be positive
func (s *Service) SetEdgeWeight(ctx context.Context, graphID core.GraphID, id core.EdgeID, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	e, ok := g.Edges[id]
	if !ok {
		return edgeNotFound(id)
	}
	if !(weight > 0) || math.IsInf(weight, 0) {
		return NewError(CodeInvalidArgument, "edge weight must be positive and finite")
	}
	if e.Weight == weight {
		return nil
	}

	e.Weight = weight
	return s.publish(ctx, g.ID, event.EventEdgeWeightChanged, &event.EdgeWeightChangedPayload{
		EdgeID:  id,
		GraphID: g.ID,
		Weight:  weight,
	})
}

// HighlightEdge sets an edge's highlight flag
func (s *Service) HighlightEdge(ctx context.Context, graphID core.GraphID, id core.EdgeID, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	e, ok := g.Edges[id]
	if !ok {
		return edgeNotFound(id)
	}
	if e.Highlighted == on {
		return nil
	}

	e.Highlighted = on
	return s.publish(ctx, g.ID, event.EventEdgeHighlightChanged, &event.EdgeHighlightChangedPayload{
		EdgeID:      id,
		GraphID:     g.ID,
		Highlighted: on,
	})
}

// Select applies a selection request
// An empty graph with Exclusive clears every graph; otherwise the empty graph means the active one
// Unknown node IDs are dropped; a request naming a graph makes it active
func (s *Service) Select(ctx context.Context, req event.SelectionChangedPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.GraphID == "" && req.Exclusive && len(req.Selected) == 0 {
		for _, g := range s.graphs {
			g.clearSelection()
		}
		return s.publish(ctx, "", event.EventSelectionChanged, &event.SelectionChangedPayload{
			Exclusive: true,
			WorldPos:  req.WorldPos,
		})
	}

	g, err := s.graph(req.GraphID)
	if err != nil {
		return err
	}
	if req.GraphID != "" {
		s.active = g.ID
	}

	out := &event.SelectionChangedPayload{
		GraphID:   g.ID,
		Exclusive: req.Exclusive,
		WorldPos:  req.WorldPos,
	}
	if req.Exclusive {
		g.clearSelection()
	}
	for _, id := range req.Deselected {
		if g.deselect(id) {
			out.Deselected = append(out.Deselected, id)
		}
	}
	for _, id := range req.Selected {
		if _, ok := g.Nodes[id]; !ok {
			continue
		}
		g.selectNode(id)
		out.Selected = append(out.Selected, id)
	}

	if !out.Exclusive && len(out.Selected) == 0 && len(out.Deselected) == 0 {
		return nil
	}
	return s.publish(ctx, g.ID, event.EventSelectionChanged, out)
}

// Layout arranges a graph's nodes on a ring around their centroid
// Nodes keep their sorted-ID order around the ring
func (s *Service) Layout(ctx context.Context, graphID core.GraphID) error {
	ctx, span := s.tracer.Start(ctx, "domain.Layout")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.layout(ctx, graphID)
	recordSpanError(span, err)
	return err
}

func (s *Service) layout(ctx context.Context, graphID core.GraphID) error {
	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	ids := g.NodeIDs()
	if len(ids) == 0 {
		return nil
	}

	points := make([]vmath.Vec3, len(ids))
	for i, id := range ids {
		points[i] = g.Nodes[id].Position
	}
	radius := max(parameter.LayoutMinRadius, float64(len(ids))*parameter.LayoutRadiusPerNode)
	ring := vmath.RingPositions(vmath.V3Centroid(points), radius, len(ids))

	for i, id := range ids {
		if vmath.V3Equal(g.Nodes[id].Position, ring[i]) {
			continue
		}
		if err := s.moveNode(ctx, g.ID, id, ring[i]); err != nil {
			return err
		}
	}
	return nil
}

// ClearGraph removes every node and edge of a graph
func (s *Service) ClearGraph(ctx context.Context, graphID core.GraphID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graph(graphID)
	if err != nil {
		return err
	}
	s.graphs[g.ID] = NewGraph(g.ID)
	return s.publish(ctx, g.ID, event.EventGraphCleared, &event.GraphClearedPayload{GraphID: g.ID})
}

// Execute runs a view command against the active graph
func (s *Service) Execute(ctx context.Context, cmd morphism.DomainCommand) error {
	ctx, span := s.tracer.Start(ctx, "domain.Execute",
		trace.WithAttributes(attribute.String("command", cmd.Kind.String())))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.execute(ctx, cmd)
	recordSpanError(span, err)
	return err
}

func (s *Service) execute(ctx context.Context, cmd morphism.DomainCommand) error {
	switch cmd.Kind {
	case morphism.CommandCreateNode:
		_, err := s.createNode(ctx, s.active, "", cmd.Position, "")
		return err

	case morphism.CommandDeleteSelected:
		g, err := s.graph(s.active)
		if err != nil {
			return err
		}
		for _, id := range g.Selection() {
			if err := s.removeNode(ctx, g.ID, id); err != nil {
				return err
			}
		}
		return nil

	case morphism.CommandConnectSelected:
		g, err := s.graph(s.active)
		if err != nil {
			return err
		}
		sel := g.Selection()
		if len(sel) < 2 {
			return NewError(CodeInvalidArgument, "connect needs at least two selected nodes, have %d", len(sel))
		}
		// Chain in selection order; existing links are kept
		for i := 1; i < len(sel); i++ {
			_, err := s.connect(ctx, g.ID, "", sel[i-1], sel[i], 0)
			if err != nil && !errors.Is(err, ErrDuplicateEdge) {
				return err
			}
		}
		return nil

	case morphism.CommandLayoutGraph:
		return s.layout(ctx, s.active)

	default:
		return NewError(CodeInvalidArgument, "unknown command %s", cmd.Kind)
	}
}

// HandleOutbound applies requests consumed from the view's outbound queue
// Failed requests are logged and answered with an error cue; the joined errors are returned
func (s *Service) HandleOutbound(ctx context.Context, events []event.GraphEvent) error {
	var errs []error
	for _, ev := range events {
		var err error
		switch ev.Type {
		case event.EventDomainCommand:
			if cmd, ok := ev.Payload.(morphism.DomainCommand); ok {
				err = s.Execute(ctx, cmd)
			}
		case event.EventSelectionRequest:
			if p, ok := ev.Payload.(*event.SelectionChangedPayload); ok {
				err = s.Select(ctx, *p)
			}
		case event.EventMoveRequest:
			if p, ok := ev.Payload.(*event.NodePositionChangedPayload); ok {
				graphID := p.GraphID
				if graphID == "" {
					graphID = s.ActiveGraph()
				}
				err = s.MoveNode(ctx, graphID, p.NodeID, p.NewPosition)
			}
		default:
			continue
		}

		if err != nil {
			s.log.Warn("outbound request rejected",
				"type", event.GetEventName(ev.Type),
				"code", CodeOf(err),
				"error", err)
			s.emit.Emit(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundError}, s.frame())
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// graph resolves id, falling back to the active graph when empty; caller holds mu
func (s *Service) graph(id core.GraphID) (*Graph, error) {
	if id == "" {
		id = s.active
	}
	g, ok := s.graphs[id]
	if !ok {
		return nil, WrapError(CodeGraphNotFound, fmt.Sprintf("graph %q", id), ErrGraphNotFound)
	}
	return g, nil
}

// publish records then emits a domain fact; caller holds mu
func (s *Service) publish(ctx context.Context, graphID core.GraphID, t event.EventType, payload any) error {
	frame := s.frame()
	if s.recorder != nil {
		if _, err := s.recorder.Append(ctx, graphID, event.GraphEvent{Type: t, Payload: payload, Frame: frame}); err != nil {
			return fmt.Errorf("journal %s: %w", event.GetEventName(t), err)
		}
	}
	s.emit.Emit(t, payload, frame)
	s.log.Debug("domain event", "type", event.GetEventName(t), "graph", graphID.Short())

	if s.drain != nil {
		if b, ok := s.emit.(backlog); ok && b.Len() >= s.drainAt {
			s.drain()
		}
	}
	return nil
}

func nodeNotFound(id core.NodeID) error {
	return WrapError(CodeNodeNotFound, fmt.Sprintf("node %s", id.Short()), ErrNodeNotFound)
}

func edgeNotFound(id core.EdgeID) error {
	return WrapError(CodeEdgeNotFound, fmt.Sprintf("edge %s", id.Short()), ErrEdgeNotFound)
}

func finite(v vmath.Vec3) bool {
	for _, f := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func recordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
