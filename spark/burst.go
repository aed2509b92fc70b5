package spark

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/parameter/visual"
	"github.com/lixenwraith/ambient/render"
	"github.com/lixenwraith/ambient/vmath"
)

// Spark is one fragment of a burst, flying from the burst origin to Offset
type Spark struct {
	Offset r2.Vec
	Size   float64
	Glow   float64
	// Life in seconds
	Life float64
}

// Burst is a ring of sparks sharing one origin and color
type Burst struct {
	Origin     r2.Vec
	ColorIndex int
	Color      visual.RGB
	Sparks     []Spark

	// Age and Life in seconds, Life is the longest spark lifetime
	Age  float64
	Life float64
}

// Done reports whether every spark has faded
func (b *Burst) Done() bool {
	return b.Age >= b.Life
}

// progress returns the normalized age of s, 1 once faded
func (b *Burst) progress(s *Spark) float64 {
	if s.Life <= 0 {
		return 1
	}
	return math.Min(1, b.Age/s.Life)
}

// Position returns where spark i currently is
func (b *Burst) Position(i int) r2.Vec {
	s := &b.Sparks[i]
	return r2.Add(b.Origin, r2.Scale(easeOut(b.progress(s)), s.Offset))
}

// Alpha returns the current opacity of spark i
func (b *Burst) Alpha(i int) float64 {
	t := b.progress(&b.Sparks[i])
	return 1 - t*t
}

// easeOut is a cubic ease, fast start and gentle landing
func easeOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// System owns the live bursts in spawn order
// Not safe for concurrent use
type System struct {
	rng     *rand.Rand
	palette []visual.RGB

	bursts []*Burst

	lastSpawn time.Time
	spawned   bool
}

// NewSystem creates an empty burst system drawing colors from palette
func NewSystem(palette []visual.RGB, rng *rand.Rand) *System {
	return &System{
		rng:     rng,
		palette: palette,
		bursts:  make([]*Burst, 0, parameter.SparkMaxBursts+1),
	}
}

// Count returns the number of sparks for a burst spawned at now
// Bursts following the previous one within the rapid window are thinned
func (s *System) Count(now time.Time) int {
	n := parameter.SparkCountMin + s.rng.IntN(parameter.SparkCountMax-parameter.SparkCountMin)
	if s.spawned && now.Sub(s.lastSpawn) < parameter.SparkRapidWindow {
		n = max(parameter.SparkCountFloor, int(math.Round(float64(n)*parameter.SparkRapidScale)))
	}
	return n
}

// Spawn emits a burst at origin, pruning the oldest when over capacity
func (s *System) Spawn(origin r2.Vec, now time.Time) *Burst {
	n := s.Count(now)
	s.lastSpawn = now
	s.spawned = true

	b := acquireBurst()
	b.Origin = origin
	b.ColorIndex = s.rng.IntN(len(s.palette))
	b.Color = s.palette[b.ColorIndex]

	for range n {
		angle := s.rng.Float64() * 2 * math.Pi
		life := between(s.rng, parameter.SparkLifeMin.Seconds(), parameter.SparkLifeMax.Seconds())
		b.Sparks = append(b.Sparks, Spark{
			Offset: vmath.Polar(angle, between(s.rng, parameter.SparkTravelMin, parameter.SparkTravelMax)),
			Size:   between(s.rng, parameter.SparkSizeMin, parameter.SparkSizeMax),
			Glow:   between(s.rng, parameter.SparkGlowMin, parameter.SparkGlowMax),
			Life:   life,
		})
		b.Life = math.Max(b.Life, life)
	}

	s.bursts = append(s.bursts, b)
	for len(s.bursts) > parameter.SparkMaxBursts {
		s.retire(0)
	}
	return b
}

// Update ages every burst by delta seconds and retires the faded ones
func (s *System) Update(delta float64) {
	live := s.bursts[:0]
	for _, b := range s.bursts {
		b.Age += delta
		if b.Done() {
			releaseBurst(b)
			continue
		}
		live = append(live, b)
	}
	clear(s.bursts[len(live):])
	s.bursts = live
}

// Draw paints all live sparks additively, one color change per burst
func (s *System) Draw(surface render.Surface) {
	if len(s.bursts) == 0 {
		return
	}
	surface.SetBlend(render.BlendAdd)
	for _, b := range s.bursts {
		surface.SetColor(b.Color)
		for i := range b.Sparks {
			alpha := b.Alpha(i)
			if alpha <= 0 {
				continue
			}
			sp := &b.Sparks[i]
			// Sparks shrink to half size as they fade
			radius := sp.Size / 2 * (1 - 0.5*b.progress(sp))
			surface.Glow(b.Position(i), radius, sp.Glow, alpha)
		}
	}
}

// Clear retires every burst
func (s *System) Clear() {
	for _, b := range s.bursts {
		releaseBurst(b)
	}
	clear(s.bursts)
	s.bursts = s.bursts[:0]
}

// Len returns the number of live bursts
func (s *System) Len() int {
	return len(s.bursts)
}

// Bursts returns live bursts oldest first, valid until the next Spawn or Update
func (s *System) Bursts() []*Burst {
	return s.bursts
}

// retire releases burst i preserving spawn order
func (s *System) retire(i int) {
	releaseBurst(s.bursts[i])
	copy(s.bursts[i:], s.bursts[i+1:])
	s.bursts[len(s.bursts)-1] = nil
	s.bursts = s.bursts[:len(s.bursts)-1]
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
