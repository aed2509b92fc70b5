package particle

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter"
)

// Store owns the live particles and a free list of retired records
// Records move between live and pool through Acquire/Release, so resizing
// the population never frees memory and only allocates past the high-water mark
type Store struct {
	cfg *parameter.Config
	rng *rand.Rand

	live []*Particle
	pool []*Particle

	width, height float64

	allocated int
}

// NewStore creates an empty store, live capacity is reserved up to MaxParticles
func NewStore(cfg *parameter.Config, rng *rand.Rand) *Store {
	return &Store{
		cfg:  cfg,
		rng:  rng,
		live: make([]*Particle, 0, cfg.MaxParticles),
		pool: make([]*Particle, 0, cfg.MaxParticles),
	}
}

// SetBounds records the viewport newly created particles are scattered over
func (s *Store) SetBounds(width, height float64) {
	s.width = width
	s.height = height
}

// Bounds returns the current viewport
func (s *Store) Bounds() (width, height float64) {
	return s.width, s.height
}

// Acquire returns a freshly seeded particle, reusing a pooled record when available
func (s *Store) Acquire() *Particle {
	var p *Particle
	if n := len(s.pool); n > 0 {
		p = s.pool[n-1]
		s.pool[n-1] = nil
		s.pool = s.pool[:n-1]
	} else {
		p = &Particle{}
		s.allocated++
	}
	Seed(p, s.cfg, s.rng, s.width, s.height)
	return p
}

// Release returns a particle record to the pool
func (s *Store) Release(p *Particle) {
	if p == nil {
		return
	}
	s.pool = append(s.pool, p)
}

// Resize grows or shrinks the live population to target, survivors keep their state
func (s *Store) Resize(target int) {
	if target < 0 {
		target = 0
	}
	n := len(s.live)
	switch {
	case n > target:
		for i := target; i < n; i++ {
			s.Release(s.live[i])
			s.live[i] = nil
		}
		s.live = s.live[:target]
	case n < target:
		for i := n; i < target; i++ {
			s.live = append(s.live, s.Acquire())
		}
	}
}

// Reset retires every live particle and seeds target new ones across the viewport
func (s *Store) Reset(target int) {
	s.Resize(0)
	s.Resize(target)
}

// Particles returns the live slice, valid until the next Resize
func (s *Store) Particles() []*Particle {
	return s.live
}

// Len implements spatial.Positions
func (s *Store) Len() int {
	return len(s.live)
}

// At implements spatial.Positions
func (s *Store) At(i int) r2.Vec {
	return s.live[i].Pos
}

// Pooled returns the number of retired records ready for reuse
func (s *Store) Pooled() int {
	return len(s.pool)
}

// Allocated returns the total number of particle records ever created
func (s *Store) Allocated() int {
	return s.allocated
}
