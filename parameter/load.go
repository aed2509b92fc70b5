package parameter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrInvalid marks a configuration that fails validation
var ErrInvalid = errors.New("invalid field configuration")

// maxConfigSize bounds the tuning file read at startup
const maxConfigSize = 1 << 20

// Load reads a JSON tuning file layered over Default
// Fields omitted from the file keep their default values
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and orderings the simulation relies on
func (c *Config) Validate() error {
	if c.Density <= 0 {
		return fmt.Errorf("%w: density must be positive, got %g", ErrInvalid, c.Density)
	}
	if c.MinParticles < 0 || c.MinParticles > c.MaxParticles {
		return fmt.Errorf("%w: particle bounds [%d, %d]", ErrInvalid, c.MinParticles, c.MaxParticles)
	}
	if c.SpeedLimit <= 0 {
		return fmt.Errorf("%w: speed_limit must be positive", ErrInvalid)
	}
	if c.Friction < 0 || c.Friction*c.MaxDelta >= 1 {
		return fmt.Errorf("%w: friction %g would reverse velocity within one frame", ErrInvalid, c.Friction)
	}
	if c.PointerRadius <= 0 || c.PointerSnapRadius <= 0 {
		return fmt.Errorf("%w: pointer radii must be positive", ErrInvalid)
	}
	if !(c.PointerMidFraction > 0 && c.PointerMidFraction < c.PointerFarFraction && c.PointerFarFraction <= 1) {
		return fmt.Errorf("%w: pointer band fractions must satisfy 0 < mid < far <= 1", ErrInvalid)
	}
	if c.ConnectionDistance <= 0 {
		return fmt.Errorf("%w: connection_distance must be positive", ErrInvalid)
	}
	if c.MaxDelta <= 0 || c.DefaultDelta <= 0 {
		return fmt.Errorf("%w: frame deltas must be positive", ErrInvalid)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: palette is empty", ErrInvalid)
	}

	ranges := []struct {
		name string
		r    [2]float64
	}{
		{"speed_fraction", c.SpeedFraction},
		{"jitter_range", c.JitterRange},
		{"size_range", c.SizeRange},
		{"base_alpha_range", c.BaseAlphaRange},
		{"glow_range", c.GlowRange},
		{"twinkle_speed_range", c.TwinkleSpeedRange},
		{"alpha_bounds", c.AlphaBounds},
	}
	for _, rg := range ranges {
		if rg.r[0] > rg.r[1] {
			return fmt.Errorf("%w: %s is inverted [%g, %g]", ErrInvalid, rg.name, rg.r[0], rg.r[1])
		}
	}
	return nil
}
