package render

import (
	"math"

	"github.com/lixenwraith/ambient/parameter"
	"github.com/lixenwraith/ambient/parameter/visual"
	"github.com/lixenwraith/ambient/particle"
	"github.com/lixenwraith/ambient/spatial"
)

// Display tuning for particle discs and connecting lines
const (
	displayAlphaBoost = 1.5
	glowBoost         = 1.5

	lineBrightnessBase  = 0.6
	lineBrightnessRange = 0.4
	lineBrightnessBoost = 1.2
)

// FrameStats summarizes one painted frame
type FrameStats struct {
	Lines        int
	Particles    int
	ColorChanges int
}

// Renderer paints connecting lines, then glow-composited particles batched by palette color
// Per-frame scratch (color groups, pair callback) is allocated once and reused
type Renderer struct {
	cfg     *parameter.Config
	surface Surface

	connection   float64
	connectionSq float64

	groups [][]int

	// frame state read by the pair callback
	frame []*particle.Particle
	stats FrameStats
	pairs func(i, j int, distSq float64)
}

// NewRenderer binds a renderer to surface
func NewRenderer(cfg *parameter.Config, surface Surface) *Renderer {
	r := &Renderer{
		cfg:          cfg,
		surface:      surface,
		connection:   cfg.ConnectionDistance,
		connectionSq: cfg.ConnectionDistance * cfg.ConnectionDistance,
		groups:       make([][]int, len(cfg.Palette)),
	}
	for i := range r.groups {
		r.groups[i] = make([]int, 0, cfg.MaxParticles)
	}
	r.pairs = r.drawConnection
	return r
}

// Surface returns the bound drawing surface
func (r *Renderer) Surface() Surface {
	return r.surface
}

// DrawFrame repaints the whole surface from the current particle state
// grid must have been rebuilt from store for this frame
func (r *Renderer) DrawFrame(store *particle.Store, grid *spatial.Grid) FrameStats {
	s := r.surface
	r.frame = store.Particles()
	r.stats = FrameStats{}

	s.Clear()

	s.SetBlend(BlendAlpha)
	s.SetColor(visual.ConnectionLine)
	s.SetLineWidth(r.cfg.ConnectionWidth)
	r.stats.ColorChanges++
	grid.ScanPairs(store, r.connection, r.pairs)

	r.drawParticles()

	r.frame = nil
	return r.stats
}

// Clear erases the surface without drawing
func (r *Renderer) Clear() {
	r.surface.Clear()
}

// drawConnection strokes one proximity line, fading with length and with the dimmer endpoint
func (r *Renderer) drawConnection(i, j int, distSq float64) {
	a, b := r.frame[i], r.frame[j]
	distance := math.Sqrt(distSq)

	connectionAlpha := r.cfg.ConnectionOpacity * (1 - distance/r.connection)
	if connectionAlpha <= 0 {
		return
	}

	brightness := lineBrightnessBase + lineBrightnessRange*math.Min(a.Alpha, b.Alpha)
	brightness = math.Min(1, brightness*lineBrightnessBoost)

	r.surface.Line(a.Pos, b.Pos, math.Min(1, connectionAlpha*brightness))
	r.stats.Lines++
}

// drawParticles draws every particle additively, one color change per non-empty palette group
func (r *Renderer) drawParticles() {
	for g := range r.groups {
		r.groups[g] = r.groups[g][:0]
	}
	for i, p := range r.frame {
		g := p.ColorIndex
		if g < 0 || g >= len(r.groups) {
			g = 0
		}
		r.groups[g] = append(r.groups[g], i)
	}

	s := r.surface
	s.SetBlend(BlendAdd)
	for g, members := range r.groups {
		if len(members) == 0 {
			continue
		}
		s.SetColor(r.cfg.Palette[g])
		r.stats.ColorChanges++
		for _, i := range members {
			p := r.frame[i]
			alpha := math.Min(1, p.Alpha*displayAlphaBoost)
			s.Glow(p.Pos, p.Size, p.GlowIntensity*glowBoost, alpha)
		}
		r.stats.Particles += len(members)
	}
}
