package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/journal"
	"github.com/lixenwraith/graphview/parameter"
	"github.com/lixenwraith/graphview/system"
	"github.com/lixenwraith/graphview/telemetry"
)

type replayOptions struct {
	*rootOptions
	graph    string
	afterSeq int64
	untilSeq int64
}

func newReplayCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &replayOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Rebuild visuals from the event journal and print a summary",
		Long: `Replay journaled domain events into a headless world.

Every event goes through the same visual systems as a live session, so the
summary shows what the view would hold at the end of the replayed range.

Examples:
  graphview replay --journal ./graph.db
  graphview replay --journal ./graph.db --graph main --until 500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.graph, "graph", "", "graph name to replay (default all)")
	cmd.Flags().Int64Var(&opts.afterSeq, "after", 0, "replay events after this seq")
	cmd.Flags().Int64Var(&opts.untilSeq, "until", 0, "stop at this seq (0 = end)")

	return cmd
}

func runReplay(cmd *cobra.Command, opts *replayOptions) error {
	cfg := opts.cfg
	if cfg.JournalPath == "" {
		return fmt.Errorf("replay needs --journal or GRAPHVIEW_JOURNAL")
	}

	ctx := opts.context(cmd.Context(), os.Stderr)
	log := opts.logger(os.Stderr)

	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	store, err := journal.Open(ctx, cfg.JournalPath)
	if err != nil {
		return err
	}
	defer store.Close()

	world := engine.NewWorld()
	world.Resources.Log = log
	system.RegisterAll(world, nil)

	sched := engine.NewScheduler(world, engine.SystemClock{}, cfg.TickInterval)
	sched.Setup()

	var graphID core.GraphID
	if opts.graph != "" {
		graphID = core.GraphIDFromName(opts.graph)
	}

	// Drain before the ring fills so nothing is dropped
	emit := journal.EmitterApplier{Emitter: world.Resources.Inbound}
	applied := 0
	applier := journal.ApplierFunc(func(ctx context.Context, ev event.GraphEvent) error {
		if world.Resources.Inbound.Len() >= parameter.EventQueueSize/2 {
			sched.Drain()
		}
		applied++
		return emit.Apply(ctx, ev)
	})

	lastSeq, err := journal.Replay(ctx, store, applier, graphID, journal.ReplayOptions{
		AfterSeq: opts.afterSeq,
		UntilSeq: opts.untilSeq,
	})
	if err != nil {
		return err
	}
	settle(sched, world)

	var nodes, edges, selected int
	world.RunSafe(func() {
		nodes = world.Components.NodeVisual.Count()
		edges = world.Components.EdgeVisual.Count()
		selected = world.Components.Selected.Count()
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "replayed %d events up to seq %d\n", applied, lastSeq)
	fmt.Fprintf(out, "nodes: %d\nedges: %d\nselected: %d\n", nodes, edges, selected)
	if dropped := world.Resources.Inbound.Dropped(); dropped > 0 {
		fmt.Fprintf(out, "dropped: %d\n", dropped)
	}
	return nil
}

// settle ticks until the inbound queue is empty
func settle(sched *engine.Scheduler, world *engine.World) {
	for i := 0; i < parameter.DrainIterations*4; i++ {
		sched.Tick()
		if world.Resources.Inbound.Len() == 0 {
			return
		}
	}
}
