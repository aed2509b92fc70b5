package particle

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/parameter/visual"
	"github.com/lixenwraith/ambient/vmath"
)

// Particle is one drifting point of light
type Particle struct {
	Pos r2.Vec
	Vel r2.Vec

	// BaseSpeed is the free-flight speed magnitude restored outside pointer influence
	BaseSpeed float64
	Size      float64

	// ColorIndex selects the palette group used for render batching
	ColorIndex int
	Color      visual.RGB

	Alpha     float64
	BaseAlpha float64

	TwinklePhase float64
	TwinkleSpeed float64

	// Jitter scales ambient drift per particle
	Jitter        float64
	GlowIntensity float64
}

// Seed initializes every field of p for a viewport of width x height
func Seed(p *Particle, cfg *parameter.Config, rng *rand.Rand, width, height float64) {
	angle := rng.Float64() * 2 * math.Pi
	fraction := between(rng, cfg.SpeedFraction)
	baseSpeed := fraction * cfg.SpeedLimit * cfg.BaseSpeedDamping
	colorIndex := rng.IntN(len(cfg.Palette))
	baseAlpha := between(rng, cfg.BaseAlphaRange)

	*p = Particle{
		Pos:           r2.Vec{X: rng.Float64() * width, Y: rng.Float64() * height},
		Vel:           vmath.Polar(angle, baseSpeed),
		BaseSpeed:     baseSpeed,
		Size:          between(rng, cfg.SizeRange),
		ColorIndex:    colorIndex,
		Color:         cfg.Palette[colorIndex],
		Alpha:         baseAlpha,
		BaseAlpha:     baseAlpha,
		TwinklePhase:  rng.Float64() * 2 * math.Pi,
		TwinkleSpeed:  between(rng, cfg.TwinkleSpeedRange),
		Jitter:        between(rng, cfg.JitterRange),
		GlowIntensity: between(rng, cfg.GlowRange),
	}
}

// between draws uniformly from [r[0], r[1])
func between(rng *rand.Rand, r [2]float64) float64 {
	return r[0] + rng.Float64()*(r[1]-r[0])
}
