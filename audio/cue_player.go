// Package audio plays short synthesized feedback cues through beep.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/graphview/core"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// CuePlayer mixes feedback cues onto the speaker
// All methods are safe before Initialize and after Cleanup
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewCuePlayer creates a cue player; call Initialize to open the device
func NewCuePlayer() *CuePlayer {
	return &CuePlayer{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker and starts the mixer
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup drops pending cues
func (p *CuePlayer) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// SetMuted silences Play without closing the device
func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Play queues a cue; returns false when nothing was queued
func (p *CuePlayer) Play(sound core.SoundType) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return false
	}

	streamer := cueStreamer(sound)
	if streamer == nil {
		return false
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// cueStreamer builds the finite streamer for a cue
func cueStreamer(sound core.SoundType) beep.Streamer {
	switch sound {
	case core.SoundSelect:
		return beep.Take(sampleRate.N(60*time.Millisecond), NewToneGenerator(sampleRate, 880, 880, 60*time.Millisecond))
	case core.SoundCreate:
		return beep.Take(sampleRate.N(120*time.Millisecond), NewToneGenerator(sampleRate, 440, 880, 120*time.Millisecond))
	case core.SoundDelete:
		return beep.Take(sampleRate.N(150*time.Millisecond), NewToneGenerator(sampleRate, 660, 220, 150*time.Millisecond))
	case core.SoundError:
		return beep.Take(sampleRate.N(150*time.Millisecond), NewBuzzGenerator(sampleRate, 120))
	default:
		return nil
	}
}
