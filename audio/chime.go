package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ambient/parameter"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
)

// Chime plays a short synthesized tone for each spark burst
// Every method is a no-op until Initialize succeeds, so a missing audio device only mutes the field
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool

	lastPlay time.Time
	now      func() time.Time
}

// NewChime creates an uninitialized chime
func NewChime() *Chime {
	return &Chime{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the audio system
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Cleanup silences pending chimes and detaches from the speaker
func (c *Chime) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()

	c.initialized = false
}

// SetMuted toggles output without tearing down the speaker
func (c *Chime) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = muted
}

// Play queues one chime pitched by palette color, intensity in [0,1] scales loudness
// Chimes closer together than MinChimeGap are dropped
func (c *Chime) Play(colorIndex int, intensity float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted {
		return
	}

	now := c.now()
	if !c.lastPlay.IsZero() && now.Sub(c.lastPlay) < parameter.MinChimeGap {
		return
	}
	c.lastPlay = now

	speaker.Lock()
	c.mixer.Add(newChimeStream(colorIndex, intensity))
	speaker.Unlock()
}

// newChimeStream builds the finite streamer for one chime
func newChimeStream(colorIndex int, intensity float64) beep.Streamer {
	gen := NewChimeGenerator(sampleRate, ChimeFrequency(colorIndex))
	return &effects.Gain{
		Streamer: beep.Take(sampleRate.N(parameter.ChimeDuration), gen),
		Gain:     math.Max(0, math.Min(1, intensity)) - 1,
	}
}

// ChimeFrequency returns the fundamental for a palette color
func ChimeFrequency(colorIndex int) float64 {
	scale := parameter.ChimeScale
	i := colorIndex % len(scale)
	if i < 0 {
		i += len(scale)
	}
	return parameter.ChimeBaseFreq * scale[i]
}

// ChimeGenerator generates a bell-like sine pair with attack/release envelope
type ChimeGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	attack  int
	release int
	total   int
}

// NewChimeGenerator creates a chime generator at freq Hz
func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:      sr,
		freq:    freq,
		attack:  max(1, sr.N(parameter.ChimeAttack)),
		release: max(1, sr.N(parameter.ChimeRelease)),
		total:   sr.N(parameter.ChimeDuration),
	}
}

// envelope returns amplitude at sample pos
func (g *ChimeGenerator) envelope(pos int) float64 {
	if pos < g.attack {
		return float64(pos) / float64(g.attack)
	}
	tail := g.total - pos
	if tail <= 0 {
		return 0
	}
	if tail < g.release {
		r := float64(tail) / float64(g.release)
		return r * r
	}
	return 1
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := math.Sin(2 * math.Pi * g.freq * t)
		sample += parameter.ChimeOvertoneGain * math.Sin(2*math.Pi*g.freq*parameter.ChimeOvertone*t)
		sample *= parameter.ChimeVolume * g.envelope(g.pos)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
