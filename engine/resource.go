package engine

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/parameter"
)

// Resources holds singleton world resources, accessed via World.Resources
type Resources struct {
	Time   *TimeResource
	Config *ConfigResource

	// Inbound carries domain events (and internal feedback) into the world
	Inbound *event.Queue

	// Outbound carries commands mapped from interactions back to the domain
	Outbound *event.Queue

	// Audio is nil when sound is disabled or the device failed to open
	Audio AudioPlayer

	// Log receives debug traces of skipped operations
	Log *slog.Logger
}

// AudioPlayer plays feedback cues; implemented by audio.CuePlayer
type AudioPlayer interface {
	Play(sound core.SoundType) bool
}

// NewResources creates resources with fresh queues and default config
func NewResources() *Resources {
	return &Resources{
		Time: &TimeResource{},
		Config: &ConfigResource{
			ViewScale: parameter.DefaultViewScale,
		},
		Inbound:  event.NewQueue(),
		Outbound: event.NewQueue(),
		Log:      slog.Default(),
	}
}

// TimeResource wraps time data for systems
// It is updated by the Scheduler at the start of a tick
type TimeResource struct {
	frame     atomic.Int64
	deltaTime atomic.Int64
	now       atomic.Int64
}

// Update advances the frame and records tick timing
func (tr *TimeResource) Update(now time.Time, dt time.Duration) int64 {
	tr.now.Store(now.UnixNano())
	tr.deltaTime.Store(int64(dt))
	return tr.frame.Add(1)
}

// FrameNumber returns the current frame count
func (tr *TimeResource) FrameNumber() int64 {
	return tr.frame.Load()
}

// DeltaTime returns the duration of the last tick
func (tr *TimeResource) DeltaTime() time.Duration {
	return time.Duration(tr.deltaTime.Load())
}

// Now returns the time of the last tick
func (tr *TimeResource) Now() time.Time {
	return time.Unix(0, tr.now.Load())
}

// ConfigResource holds view configuration shared by input and render
type ConfigResource struct {
	// Screen dimensions in cells, updated on resize
	ScreenWidth  int
	ScreenHeight int

	// ViewScale is cells per world unit on X
	ViewScale float64

	// Origin is the world position drawn at the top-left cell
	OriginX float64
	OriginY float64
}
