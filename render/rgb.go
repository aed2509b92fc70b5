package render

import (
	"github.com/lixenwraith/ambient/parameter/visual"
)

// RGB is the shared color type, aliased so surfaces can use the compositing helpers below
type RGB = visual.RGB

// channel saturates v into a color channel
func channel(v float64) uint8 {
	switch {
	case v >= 255:
		return 255
	case v <= 0:
		return 0
	default:
		return uint8(v)
	}
}

// perChannel applies fn to each channel pair of dst and src
func perChannel(dst, src RGB, fn func(d, s float64) float64) RGB {
	return RGB{
		R: channel(fn(float64(dst.R), float64(src.R))),
		G: channel(fn(float64(dst.G), float64(src.G))),
		B: channel(fn(float64(dst.B), float64(src.B))),
	}
}

// Blend composites src over dst at alpha (source-over)
func Blend(dst, src RGB, alpha float64) RGB {
	if alpha >= 1 {
		return src
	}
	if alpha <= 0 {
		return dst
	}
	return perChannel(dst, src, func(d, s float64) float64 {
		return d + (s-d)*alpha
	})
}

// Add brightens dst by src weighted by alpha, saturating at white
func Add(dst, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	alpha = min(alpha, 1)
	return perChannel(dst, src, func(d, s float64) float64 {
		return d + s*alpha
	})
}
