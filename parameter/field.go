package parameter

import (
	"math"

	"github.com/lixenwraith/ambient/parameter/visual"
)

// Population
const (
	// Density is particles per square pixel of viewport
	Density = 0.00011
	// MinParticles is the population floor for small viewports
	MinParticles = 94
	// MaxParticles is the population ceiling for large viewports
	MaxParticles = 202
)

// Free flight
const (
	// Friction is the per-second velocity loss factor
	Friction = 0.045
	// Drift is the isotropic random acceleration applied outside the pointer far radius (px/s²)
	Drift = 40.56
	// SpeedLimit is the hard velocity magnitude cap (px/s)
	SpeedLimit = 218.0
	// SpeedFractionMin/Max bound the free-flight speed draw as a fraction of SpeedLimit
	SpeedFractionMin = 0.25
	SpeedFractionMax = 0.95
	// BaseSpeedDamping scales the drawn free-flight speed down to the cruising speed
	BaseSpeedDamping = 0.75
	// JitterMin/Max bound the per-particle drift multiplier
	JitterMin = 0.45
	JitterMax = 1.05
)

// Pointer bands
const (
	// PointerRadius is the outer edge of pointer influence (px)
	PointerRadius = 83.0
	// PointerFarFraction of PointerRadius beyond which ambient drift still applies
	PointerFarFraction = 0.6
	// PointerMidFraction of PointerRadius separating the far (springy) and near (captured) bands
	PointerMidFraction = 0.35
	// PointerSnapRadius is the capture distance where particles lock onto the pointer (px)
	PointerSnapRadius = 6.0
	// PointerStrength is the far band attraction strength
	PointerStrength = 8000.0
	// PointerImpulseScale converts PointerStrength into a per-tick velocity impulse
	PointerImpulseScale = 0.002
	// PointerDirectPull is the fraction of the offset covered per tick in the far band
	PointerDirectPull = 0.28
	// PointerDesiredSpeedFraction of SpeedLimit that far band velocity is steered toward
	PointerDesiredSpeedFraction = 0.9
	// PointerVelocityDecay is the per-tick pointer velocity decay while idle
	PointerVelocityDecay = 0.85
	// NearPositionLerp is the near band position interpolation factor toward the pointer
	NearPositionLerp = 0.95
	// NearVelocityLerp is the near band velocity interpolation factor toward pointer velocity
	NearVelocityLerp = 0.98
	// NearDamping is the near band velocity damping applied after interpolation
	NearDamping = 0.35
)

// Connections
const (
	// ConnectionDistance is the maximum length of a connecting line and the spatial grid cell size (px)
	ConnectionDistance = 146.0
	// ConnectionOpacity is the peak line opacity at zero length
	ConnectionOpacity = 0.38
	// ConnectionWidth is the stroke width of connecting lines (px)
	ConnectionWidth = 1.46
)

// Appearance
const (
	SizeMin = 1.52
	SizeMax = 4.57

	BaseAlphaMin = 0.65
	BaseAlphaMax = 1.05

	GlowMin = 9.0
	GlowMax = 19.0

	TwinkleSpeedMin  = 0.5
	TwinkleSpeedMax  = 1.4
	TwinkleAmplitude = 0.28
	AlphaFloor       = 0.3
	AlphaCeiling     = 1.1
)

// Frame timing
const (
	// MaxDelta caps elapsed seconds per tick to absorb resume jumps
	MaxDelta = 0.05
	// DefaultDelta substitutes for a zero-length frame
	DefaultDelta = 0.016
)

// Config holds the resolved tuning of a particle field, read-only once a field is built
type Config struct {
	Density      float64 `json:"density"`
	MinParticles int     `json:"min_particles"`
	MaxParticles int     `json:"max_particles"`

	Friction         float64    `json:"friction"`
	Drift            float64    `json:"drift"`
	SpeedLimit       float64    `json:"speed_limit"`
	SpeedFraction    [2]float64 `json:"speed_fraction"`
	BaseSpeedDamping float64    `json:"base_speed_damping"`
	JitterRange      [2]float64 `json:"jitter_range"`

	PointerRadius               float64 `json:"pointer_radius"`
	PointerFarFraction          float64 `json:"pointer_far_fraction"`
	PointerMidFraction          float64 `json:"pointer_mid_fraction"`
	PointerSnapRadius           float64 `json:"pointer_snap_radius"`
	PointerStrength             float64 `json:"pointer_strength"`
	PointerImpulseScale         float64 `json:"pointer_impulse_scale"`
	PointerDirectPull           float64 `json:"pointer_direct_pull"`
	PointerDesiredSpeedFraction float64 `json:"pointer_desired_speed_fraction"`
	PointerVelocityDecay        float64 `json:"pointer_velocity_decay"`
	NearPositionLerp            float64 `json:"near_position_lerp"`
	NearVelocityLerp            float64 `json:"near_velocity_lerp"`
	NearDamping                 float64 `json:"near_damping"`

	ConnectionDistance float64 `json:"connection_distance"`
	ConnectionOpacity  float64 `json:"connection_opacity"`
	ConnectionWidth    float64 `json:"connection_width"`

	SizeRange         [2]float64 `json:"size_range"`
	BaseAlphaRange    [2]float64 `json:"base_alpha_range"`
	GlowRange         [2]float64 `json:"glow_range"`
	TwinkleSpeedRange [2]float64 `json:"twinkle_speed_range"`
	TwinkleAmplitude  float64    `json:"twinkle_amplitude"`
	AlphaBounds       [2]float64 `json:"alpha_bounds"`

	Palette []visual.RGB `json:"palette"`

	MaxDelta     float64 `json:"max_delta"`
	DefaultDelta float64 `json:"default_delta"`
}

// Default returns the stock tuning
func Default() *Config {
	return &Config{
		Density:      Density,
		MinParticles: MinParticles,
		MaxParticles: MaxParticles,

		Friction:         Friction,
		Drift:            Drift,
		SpeedLimit:       SpeedLimit,
		SpeedFraction:    [2]float64{SpeedFractionMin, SpeedFractionMax},
		BaseSpeedDamping: BaseSpeedDamping,
		JitterRange:      [2]float64{JitterMin, JitterMax},

		PointerRadius:               PointerRadius,
		PointerFarFraction:          PointerFarFraction,
		PointerMidFraction:          PointerMidFraction,
		PointerSnapRadius:           PointerSnapRadius,
		PointerStrength:             PointerStrength,
		PointerImpulseScale:         PointerImpulseScale,
		PointerDirectPull:           PointerDirectPull,
		PointerDesiredSpeedFraction: PointerDesiredSpeedFraction,
		PointerVelocityDecay:        PointerVelocityDecay,
		NearPositionLerp:            NearPositionLerp,
		NearVelocityLerp:            NearVelocityLerp,
		NearDamping:                 NearDamping,

		ConnectionDistance: ConnectionDistance,
		ConnectionOpacity:  ConnectionOpacity,
		ConnectionWidth:    ConnectionWidth,

		SizeRange:         [2]float64{SizeMin, SizeMax},
		BaseAlphaRange:    [2]float64{BaseAlphaMin, BaseAlphaMax},
		GlowRange:         [2]float64{GlowMin, GlowMax},
		TwinkleSpeedRange: [2]float64{TwinkleSpeedMin, TwinkleSpeedMax},
		TwinkleAmplitude:  TwinkleAmplitude,
		AlphaBounds:       [2]float64{AlphaFloor, AlphaCeiling},

		Palette: visual.Ambient(),

		MaxDelta:     MaxDelta,
		DefaultDelta: DefaultDelta,
	}
}

// FarRadius is the distance beyond which drift applies even near an active pointer
func (c *Config) FarRadius() float64 { return c.PointerRadius * c.PointerFarFraction }

// MidRadius separates the far and near pointer bands
func (c *Config) MidRadius() float64 { return c.PointerRadius * c.PointerMidFraction }

// SnapRadius never exceeds MidRadius so the near band stays well formed
func (c *Config) SnapRadius() float64 { return math.Min(c.PointerSnapRadius, c.MidRadius()) }

// DesiredSpeed is the far band steering speed
func (c *Config) DesiredSpeed() float64 { return c.SpeedLimit * c.PointerDesiredSpeedFraction }

// TargetCount returns the population for a viewport of the given size
func (c *Config) TargetCount(width, height float64) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	n := int(math.Round(width * height * c.Density))
	return min(max(n, c.MinParticles), c.MaxParticles)
}
