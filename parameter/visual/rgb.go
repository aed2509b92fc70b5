package visual

// RGB is a 24-bit color shared by every surface
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Generic colors
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Field colors
var (
	// Particle palette, one glow color group each
	Amber    = RGB{255, 221, 154}
	SkyBlue  = RGB{138, 222, 255}
	Lavender = RGB{224, 184, 255}
	Rose     = RGB{255, 160, 190}
	Mint     = RGB{183, 255, 211}

	// ConnectionLine is the stroke color of proximity lines
	ConnectionLine = RGB{180, 220, 255}
)

// Ambient returns a fresh copy of the default particle palette
func Ambient() []RGB {
	return []RGB{Amber, SkyBlue, Lavender, Rose, Mint}
}
