package render

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// OpKind identifies a recorded surface call
type OpKind uint8

const (
	OpClear OpKind = iota
	OpBlend
	OpColor
	OpLineWidth
	OpLine
	OpGlow
)

// Op is one recorded surface call, only the fields relevant to Kind are set
type Op struct {
	Kind   OpKind
	Blend  BlendMode
	Color  RGB
	Width  float64
	A, B   r2.Vec
	Radius float64
	Glow   float64
	Alpha  float64
}

// Recorder is a Surface that records every call, for tests and diagnostics
type Recorder struct {
	Ops []Op

	blend BlendMode
	color RGB
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) SetBlend(mode BlendMode) {
	r.blend = mode
	r.Ops = append(r.Ops, Op{Kind: OpBlend, Blend: mode})
}

func (r *Recorder) SetColor(c RGB) {
	r.color = c
	r.Ops = append(r.Ops, Op{Kind: OpColor, Color: c})
}

func (r *Recorder) SetLineWidth(width float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLineWidth, Width: width})
}

func (r *Recorder) Line(a, b r2.Vec, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Blend: r.blend, Color: r.color, A: a, B: b, Alpha: alpha})
}

func (r *Recorder) Glow(center r2.Vec, radius, glow, alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpGlow, Blend: r.blend, Color: r.color, A: center, Radius: radius, Glow: glow, Alpha: alpha})
}

// Count returns how many recorded ops are of kind
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded ops of kind in call order
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets all recorded ops
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
