package physics

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/particle"
	"github.com/lixenwraith/ambient/pointer"
	"github.com/lixenwraith/ambient/vmath"
)

// Band is the pointer proximity zone a particle occupies during a tick
type Band uint8

const (
	// BandNone is free flight: pointer inactive or beyond PointerRadius
	BandNone Band = iota
	// BandFar attracts with an impulse and steers toward the pointer
	BandFar
	// BandNear captures: strong interpolation onto the pointer and heavy damping
	BandNear
	// BandSnap locks the particle onto the pointer
	BandSnap
)

// String returns the band name
func (b Band) String() string {
	switch b {
	case BandNone:
		return "none"
	case BandFar:
		return "far"
	case BandNear:
		return "near"
	case BandSnap:
		return "snap"
	default:
		return "unknown"
	}
}

// Integrator advances particle kinematics one frame at a time
// Squared radii are resolved once at construction from the immutable config
type Integrator struct {
	cfg *parameter.Config
	rng *rand.Rand

	radius   float64
	radiusSq float64
	farSq    float64
	midSq    float64
	snapSq   float64

	desiredSpeed float64
}

// NewIntegrator resolves band thresholds from cfg, rng drives ambient drift
func NewIntegrator(cfg *parameter.Config, rng *rand.Rand) *Integrator {
	far, mid, snap := cfg.FarRadius(), cfg.MidRadius(), cfg.SnapRadius()
	return &Integrator{
		cfg:          cfg,
		rng:          rng,
		radius:       cfg.PointerRadius,
		radiusSq:     cfg.PointerRadius * cfg.PointerRadius,
		farSq:        far * far,
		midSq:        mid * mid,
		snapSq:       snap * snap,
		desiredSpeed: cfg.DesiredSpeed(),
	}
}

// Classify maps a squared particle-to-pointer distance to its band
func (in *Integrator) Classify(distSq float64) Band {
	switch {
	case distSq >= in.radiusSq:
		return BandNone
	case distSq >= in.midSq:
		return BandFar
	case distSq >= in.snapSq:
		return BandNear
	default:
		return BandSnap
	}
}

// Step integrates all particles over delta seconds inside a width x height torus
// delta is expected to be clamped by the caller
func (in *Integrator) Step(particles []*particle.Particle, ptr pointer.State, delta, width, height float64) {
	frictionFactor := 1 - in.cfg.Friction*delta
	for _, p := range particles {
		in.step(p, &ptr, delta, frictionFactor)
		p.Pos.X = vmath.Wrap(p.Pos.X, width)
		p.Pos.Y = vmath.Wrap(p.Pos.Y, height)
	}
}

// step applies one tick to a single particle, wrapping excluded
func (in *Integrator) step(p *particle.Particle, ptr *pointer.State, delta, frictionFactor float64) {
	cfg := in.cfg
	underInfluence := false

	band := BandNone
	var offset r2.Vec
	var distSq float64
	if ptr.Active {
		offset = r2.Sub(ptr.Pos, p.Pos)
		distSq = r2.Norm2(offset)
		band = in.Classify(distSq)
	}

	// Drift only stirs particles beyond the far radius of an active pointer
	if ptr.Active && distSq >= in.farSq {
		in.drift(p, delta)
	}

	switch band {
	case BandFar:
		underInfluence = true
		distance := math.Sqrt(distSq)
		influence := (in.radius - distance) / in.radius
		dir := r2.Scale(1/distance, offset)

		impulse := cfg.PointerStrength * math.Pow(influence, 2.2) * cfg.PointerImpulseScale
		p.Vel = r2.Add(p.Vel, r2.Scale(impulse, dir))

		blend := vmath.Clamp(0.7+0.45*math.Pow(influence, 1.4), 0, 1)
		p.Vel = vmath.LerpVec(p.Vel, r2.Scale(in.desiredSpeed, dir), blend)

		pull := cfg.PointerDirectPull * math.Pow(influence, 1.1)
		p.Pos = r2.Add(p.Pos, r2.Scale(pull, offset))

	case BandNear:
		underInfluence = true
		p.Pos = vmath.LerpVec(p.Pos, ptr.Pos, cfg.NearPositionLerp)
		p.Vel = vmath.LerpVec(p.Vel, ptr.Vel, cfg.NearVelocityLerp)
		p.Vel = r2.Scale(cfg.NearDamping, p.Vel)

	case BandSnap:
		underInfluence = true
		p.Pos = ptr.Pos
		p.Vel = r2.Vec{}
	}

	p.Vel = r2.Scale(frictionFactor, p.Vel)

	if !underInfluence {
		p.Vel = vmath.WithMagnitude(p.Vel, p.BaseSpeed)
	}
	p.Vel = vmath.ClampMagnitude(p.Vel, cfg.SpeedLimit)

	p.Pos = r2.Add(p.Pos, r2.Scale(delta, p.Vel))

	p.TwinklePhase += delta * p.TwinkleSpeed
	p.Alpha = vmath.Clamp(
		p.BaseAlpha+math.Sin(p.TwinklePhase)*cfg.TwinkleAmplitude,
		cfg.AlphaBounds[0],
		cfg.AlphaBounds[1],
	)
}

// drift adds isotropic random acceleration scaled by the particle's jitter
func (in *Integrator) drift(p *particle.Particle, delta float64) {
	k := in.cfg.Drift * p.Jitter * delta
	p.Vel.X += (in.rng.Float64() - 0.5) * k
	p.Vel.Y += (in.rng.Float64() - 0.5) * k
}
