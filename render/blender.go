package render

// BlendMode selects how drawn pixels combine with what is already on the surface
type BlendMode uint8

const (
	// BlendAlpha is source-over compositing
	BlendAlpha BlendMode = iota
	// BlendAdd is additive ("lighter") compositing, overlap brightens
	BlendAdd
)

// String returns the blend mode name
func (m BlendMode) String() string {
	switch m {
	case BlendAlpha:
		return "alpha"
	case BlendAdd:
		return "add"
	default:
		return "unknown"
	}
}

// Compose combines src over dst at alpha under mode
func (m BlendMode) Compose(dst, src RGB, alpha float64) RGB {
	if m == BlendAdd {
		return Add(dst, src, alpha)
	}
	return Blend(dst, src, alpha)
}
