package window

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/ambient/render"
)

// spriteSize is the edge of the disc and halo textures, scaled per draw
const spriteSize = 128

// Surface paints into an ebiten image
// Discs and halos are pre-rendered sprites stretched per particle, composited with BlendLighter when additive
type Surface struct {
	target *ebiten.Image
	disc   *ebiten.Image
	halo   *ebiten.Image

	op    ebiten.DrawImageOptions
	blend render.BlendMode
	color render.RGB
	width float32
}

// NewSurface creates an unbound surface
func NewSurface() *Surface {
	return &Surface{width: 1}
}

// Bind selects the image subsequent calls draw into
// Sprites are created on first bind, once the graphics context exists
func (s *Surface) Bind(target *ebiten.Image) {
	if s.disc == nil {
		s.disc = ebiten.NewImage(spriteSize, spriteSize)
		s.disc.WritePixels(DiscPixels(spriteSize))
		s.halo = ebiten.NewImage(spriteSize, spriteSize)
		s.halo.WritePixels(HaloPixels(spriteSize))
	}
	s.target = target
}

func (s *Surface) Clear() {
	if s.target != nil {
		s.target.Clear()
	}
}

func (s *Surface) SetBlend(mode render.BlendMode) { s.blend = mode }
func (s *Surface) SetColor(c render.RGB)          { s.color = c }
func (s *Surface) SetLineWidth(width float64)     { s.width = float32(width) }

func (s *Surface) Line(a, b r2.Vec, alpha float64) {
	if s.target == nil {
		return
	}
	vector.StrokeLine(s.target, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), s.width, Premultiply(s.color, alpha), true)
}

func (s *Surface) Glow(center r2.Vec, radius, glow, alpha float64) {
	if s.target == nil {
		return
	}
	if glow > radius {
		s.stamp(s.halo, center, glow, alpha*0.5)
	}
	s.stamp(s.disc, center, radius, alpha)
}

// stamp draws sprite scaled to radius around center in the current color
func (s *Surface) stamp(sprite *ebiten.Image, center r2.Vec, radius, alpha float64) {
	half := float64(spriteSize) / 2
	scale := radius / half

	op := &s.op
	op.GeoM.Reset()
	op.GeoM.Translate(-half, -half)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(center.X, center.Y)

	r, g, b := float32(s.color.R)/255, float32(s.color.G)/255, float32(s.color.B)/255
	a := float32(alpha)
	op.ColorScale.Reset()
	op.ColorScale.Scale(r*a, g*a, b*a, a)

	op.Blend = ebiten.BlendSourceOver
	if s.blend == render.BlendAdd {
		op.Blend = ebiten.BlendLighter
	}
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(sprite, op)
}

// Premultiply converts c at alpha to the premultiplied color ebiten expects
func Premultiply(c render.RGB, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

// DiscPixels renders a white premultiplied disc with a one-pixel antialiased rim
func DiscPixels(size int) []byte {
	return radialPixels(size, func(d float64) float64 {
		return math.Max(0, math.Min(1, 1-d)*float64(size)/2)
	})
}

// HaloPixels renders a white premultiplied radial falloff, quadratic toward the edge
func HaloPixels(size int) []byte {
	return radialPixels(size, func(d float64) float64 {
		if d >= 1 {
			return 0
		}
		f := 1 - d
		return f * f
	})
}

// radialPixels fills an RGBA buffer from intensity(d), d the normalized distance from the center
func radialPixels(size int, intensity func(d float64) float64) []byte {
	pixels := make([]byte, size*size*4)
	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-center, float64(y)+0.5-center
			v := math.Min(1, intensity(math.Hypot(dx, dy)/center))
			b := uint8(v * 255)
			i := (y*size + x) * 4
			pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = b, b, b, b
		}
	}
	return pixels
}
