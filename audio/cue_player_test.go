package audio

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/graphview/core"
)

// TestCuePlayerGracefulDegradation verifies Play does nothing without a device
func TestCuePlayerGracefulDegradation(t *testing.T) {
	p := NewCuePlayer()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Cue operations panicked without initialization: %v", r)
		}
	}()

	for s := core.SoundType(0); s < core.SoundTypeCount; s++ {
		if p.Play(s) {
			t.Errorf("Play(%s) reported success without initialization", s)
		}
	}
	p.SetMuted(true)
	p.Cleanup()
}

// TestCuePlayerInitialization verifies the device can be opened where available
func TestCuePlayerInitialization(t *testing.T) {
	p := NewCuePlayer()

	// Speaker initialization may fail in CI/test environments without audio devices
	if err := p.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	defer p.Cleanup()

	if err := p.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}

	p.SetMuted(true)
	if p.Play(core.SoundSelect) {
		t.Error("Muted player should not queue cues")
	}
}

// TestCueStreamersAreFinite verifies every cue ends and stays within [-1, 1]
func TestCueStreamersAreFinite(t *testing.T) {
	for s := core.SoundType(0); s < core.SoundTypeCount; s++ {
		streamer := cueStreamer(s)
		if streamer == nil {
			t.Fatalf("no streamer for %s", s)
		}

		buf := make([][2]float64, 512)
		total := 0
		for {
			n, ok := streamer.Stream(buf)
			for i := 0; i < n; i++ {
				if math.Abs(buf[i][0]) > 1 || math.Abs(buf[i][1]) > 1 {
					t.Fatalf("%s: sample out of range: %v", s, buf[i])
				}
			}
			total += n
			if !ok || n == 0 {
				break
			}
			if total > sampleRate.N(time.Second) {
				t.Fatalf("%s: cue did not end", s)
			}
		}
		if total == 0 {
			t.Errorf("%s: cue produced no samples", s)
		}
	}

	if cueStreamer(core.SoundTypeCount) != nil {
		t.Error("unknown cue should have no streamer")
	}
}
