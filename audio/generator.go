package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ToneGenerator generates a sine tone sweeping linearly between two frequencies
type ToneGenerator struct {
	sr        beep.SampleRate
	from, to  float64
	samples   int
	pos       int
	phase     float64
	amplitude float64
}

// NewToneGenerator creates a tone that sweeps from -> to over length
func NewToneGenerator(sr beep.SampleRate, from, to float64, length time.Duration) *ToneGenerator {
	return &ToneGenerator{
		sr:        sr,
		from:      from,
		to:        to,
		samples:   max(sr.N(length), 1),
		amplitude: 0.2,
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.samples), 1)
		freq := g.from + (g.to-g.from)*progress

		// Phase accumulation keeps the sweep free of clicks
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		// Short attack, linear release
		attack := math.Min(float64(g.pos)/float64(g.sr)/0.005, 1)
		envelope := attack * (1 - progress)

		sample := g.amplitude * envelope * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Square-ish wave from the first harmonics
		sample := 0.0
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(float64(g.pos)/float64(g.sr)/0.02, 1.0)
		sample *= envelope * 0.2

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
