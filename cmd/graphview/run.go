package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/graphview/audio"
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/ctxlog"
	"github.com/lixenwraith/graphview/domain"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/input"
	"github.com/lixenwraith/graphview/journal"
	"github.com/lixenwraith/graphview/parameter"
	"github.com/lixenwraith/graphview/render"
	"github.com/lixenwraith/graphview/scene"
	"github.com/lixenwraith/graphview/system"
	"github.com/lixenwraith/graphview/telemetry"
)

// defaultGraphName names the graph created when no scene is loaded
const defaultGraphName = "main"

type runOptions struct {
	*rootOptions
	scene   string
	noAudio bool
	color   string
	scale   float64
}

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive graph view",
		Long: `Open the interactive graph view in the terminal.

Mouse:
  click          select node (shift toggles)
  drag           move node
Keys:
  n              create node at pointer
  x, Delete      delete selected
  c              connect selected in order
  l              ring layout
  Ctrl+A         select all
  arrows         pan, Home centers
  Esc, Ctrl+Q    quit

Logs go to the log directory since the terminal is in use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.scene, "scene", "", "HCL scene file to load")
	cmd.Flags().BoolVar(&opts.noAudio, "no-audio", false, "disable sound cues")
	cmd.Flags().StringVar(&opts.color, "color", "auto", "color mode (auto|truecolor|256)")
	cmd.Flags().Float64Var(&opts.scale, "scale", parameter.DefaultViewScale, "cells per world unit")

	return cmd
}

func runInteractive(cmd *cobra.Command, opts *runOptions) error {
	cfg := opts.cfg
	if cmd.Flags().Changed("scene") {
		cfg.ScenePath = opts.scene
	}
	if opts.noAudio {
		cfg.AudioEnabled = false
	}
	if cmd.Flags().Changed("color") {
		cfg.ColorMode = opts.color
	}
	if cmd.Flags().Changed("scale") {
		cfg.ViewScale = opts.scale
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logFile, err := ctxlog.OpenFile(cfg.LogDir, "graphview.log", ctxlog.MaxLogSize)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log := opts.logger(logFile)
	ctx, cancel := context.WithCancel(ctxlog.WithLogger(cmd.Context(), log))
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	world := engine.NewWorld()
	world.Resources.Log = log
	world.Resources.Config.ViewScale = cfg.ViewScale

	if cfg.AudioEnabled {
		player := audio.NewCuePlayer()
		if err := player.Initialize(); err != nil {
			log.Warn("audio unavailable, continuing without sound", "error", err)
		} else {
			world.Resources.Audio = player
			defer player.Cleanup()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	core.SetCrashHook(screen.Fini)
	defer func() {
		core.SetCrashHook(nil)
		screen.Fini()
	}()

	view := render.NewView(world, screen, render.ParseColorMode(cfg.ColorMode))
	interaction := system.RegisterAll(world, view)

	sched := engine.NewScheduler(world, engine.SystemClock{}, cfg.TickInterval)
	sched.Setup()

	// Scene loads and bulk commands outgrow the inbound ring; drain at half capacity
	svcOpts := []domain.Option{
		domain.WithLogger(log),
		domain.WithFrameSource(world.FrameNumber),
		domain.WithDrain(parameter.EventQueueSize/2, func() { sched.Drain() }),
	}
	if cfg.JournalPath != "" {
		store, err := journal.Open(ctx, cfg.JournalPath)
		if err != nil {
			return err
		}
		defer store.Close()
		svcOpts = append(svcOpts, domain.WithRecorder(store))
	}
	svc := domain.NewService(world.Resources.Inbound, svcOpts...)

	if err := loadGraphs(ctx, svc, cfg.ScenePath); err != nil {
		return err
	}

	sched.OnTick(func() {
		outbound := world.Resources.Outbound.Consume()
		if len(outbound) == 0 {
			return
		}
		err := svc.HandleOutbound(ctx, outbound)
		world.RunSafe(func() {
			if err != nil {
				view.SetStatus(firstLine(err), true)
			} else {
				view.SetStatus("", false)
			}
		})
	})

	// Settle scene events before the first frame so Center sees every node
	sched.Tick()
	world.RunSafe(view.Center)

	core.Go(func() {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("scheduler stopped", "error", err)
		}
	})

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	return loop(ctx, log, world, view, interaction, events)
}

// loop feeds input to the interaction system and repaints on a fixed interval
func loop(ctx context.Context, log *slog.Logger, world *engine.World, view *render.View, interaction *system.InteractionSystem, events <-chan tcell.Event) error {
	machine := input.NewMachine()

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			intent := machine.Process(ev)
			if intent == nil {
				continue
			}

			switch intent.Type {
			case input.IntentQuit:
				log.Info("quit requested")
				return nil
			case input.IntentResize:
				world.RunSafe(func() {
					view.Resize(intent.Cell.X, intent.Cell.Y)
				})
			case input.IntentKey:
				if handled := viewKey(world, view, intent.Key.Key); !handled {
					interaction.Submit(*intent)
				}
			default:
				interaction.Submit(*intent)
			}

		case <-frameTicker.C:
			world.RunSafe(view.Draw)
		}
	}
}

// viewKey handles keys that move the view instead of the graph
func viewKey(world *engine.World, view *render.View, key tcell.Key) bool {
	switch key {
	case tcell.KeyLeft:
		world.RunSafe(func() { view.Pan(-parameter.PanStep, 0) })
	case tcell.KeyRight:
		world.RunSafe(func() { view.Pan(parameter.PanStep, 0) })
	case tcell.KeyUp:
		world.RunSafe(func() { view.Pan(0, -parameter.PanStep) })
	case tcell.KeyDown:
		world.RunSafe(func() { view.Pan(0, parameter.PanStep) })
	case tcell.KeyHome:
		world.RunSafe(view.Center)
	default:
		return false
	}
	return true
}

// loadGraphs applies the scene, or creates an empty default graph without one
func loadGraphs(ctx context.Context, svc *domain.Service, path string) error {
	if path == "" {
		return svc.AddGraph(core.GraphIDFromName(defaultGraphName))
	}

	s, err := scene.Load(ctx, path)
	if err != nil {
		return err
	}
	if err := s.Apply(ctx, svc); err != nil {
		return err
	}
	if len(s.Graphs) == 0 {
		return svc.AddGraph(core.GraphIDFromName(defaultGraphName))
	}
	ctxlog.FromContext(ctx).Info("scene applied", "path", path, "graphs", len(s.Graphs), "nodes", s.NodeCount(), "edges", s.EdgeCount())
	return svc.UseGraph(s.Graphs[0].ID)
}

// firstLine trims joined errors to what fits on the status bar
func firstLine(err error) string {
	msg := err.Error()
	for i, r := range msg {
		if r == '\n' {
			return msg[:i]
		}
	}
	return msg
}
