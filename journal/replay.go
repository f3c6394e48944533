package journal

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/parameter"
)

// Lister reads journaled records in seq order; *Store satisfies it
type Lister interface {
	List(ctx context.Context, graphID core.GraphID, afterSeq int64, limit int) ([]Record, error)
}

// Applier consumes replayed events in order
type Applier interface {
	Apply(ctx context.Context, ev event.GraphEvent) error
}

// ApplierFunc adapts a function to Applier
type ApplierFunc func(ctx context.Context, ev event.GraphEvent) error

func (f ApplierFunc) Apply(ctx context.Context, ev event.GraphEvent) error {
	return f(ctx, ev)
}

// ReplayOptions bounds and filters a replay
type ReplayOptions struct {
	AfterSeq int64
	UntilSeq int64 // 0 = no upper bound
	Filter   func(Record) bool
}

// Replay applies every event of graphID after opts.AfterSeq in order
// An empty graphID replays all graphs; returns the last seq visited
func Replay(ctx context.Context, lister Lister, applier Applier, graphID core.GraphID, opts ReplayOptions) (int64, error) {
	if lister == nil {
		return 0, fmt.Errorf("journal is not configured")
	}
	if applier == nil {
		return 0, fmt.Errorf("applier is required")
	}

	ctx, span := otel.Tracer("github.com/lixenwraith/graphview/journal").Start(ctx, "journal.Replay")
	defer span.End()
	span.SetAttributes(attribute.String("graph_id", string(graphID)))

	lastSeq, applied, err := replay(ctx, lister, applier, graphID, opts)
	span.SetAttributes(attribute.Int64("last_seq", lastSeq), attribute.Int("applied", applied))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return lastSeq, err
}

func replay(ctx context.Context, lister Lister, applier Applier, graphID core.GraphID, opts ReplayOptions) (int64, int, error) {
	lastSeq := opts.AfterSeq
	applied := 0
	for {
		records, err := lister.List(ctx, graphID, lastSeq, parameter.ReplayPageSize)
		if err != nil {
			return lastSeq, applied, err
		}
		if len(records) == 0 {
			return lastSeq, applied, nil
		}
		for _, r := range records {
			if opts.UntilSeq > 0 && r.Seq > opts.UntilSeq {
				return lastSeq, applied, nil
			}
			lastSeq = r.Seq
			if opts.Filter != nil && !opts.Filter(r) {
				continue
			}
			ev, err := r.Event()
			if err != nil {
				return lastSeq, applied, err
			}
			if err := applier.Apply(ctx, ev); err != nil {
				return lastSeq, applied, fmt.Errorf("apply seq %d: %w", r.Seq, err)
			}
			applied++
		}
	}
}

// EmitterApplier forwards replayed events to an inbound emitter such as *event.Queue
type EmitterApplier struct {
	Emitter interface {
		Emit(t event.EventType, payload any, frame int64)
	}
}

func (a EmitterApplier) Apply(_ context.Context, ev event.GraphEvent) error {
	a.Emitter.Emit(ev.Type, ev.Payload, ev.Frame)
	return nil
}
