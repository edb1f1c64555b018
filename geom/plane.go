package geom

import (
	"math"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

// Axis identifies which coordinate axis a plane is aligned to, or None for
// an arbitrary (non axis-aligned) plane.
type Axis int

// The closed set of plane alignments the decomposer generates.
const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
)

// Plane is ax + by + cz + d = 0 with (a, b, c) a unit normal.
//
// Invariant: when Axis != AxisNone, (A, B, C) equals the corresponding unit
// basis vector. Index is the running candidate index the decomposer assigns
// during its coarse-then-fine plane search (see decomp's generateCandidates
// and refineCandidates).
type Plane struct {
	A, B, C, D float64
	Axis       Axis
	Index      int
}

// NewAxisPlane builds a plane perpendicular to axis at the given coordinate.
// idx is the running candidate index the plane was generated with, used
// later as the tie-break key.
func NewAxisPlane(axis Axis, coord float64, idx int) Plane {
	p := Plane{Axis: axis, Index: idx}
	switch axis {
	case AxisX:
		p.A, p.D = 1, -coord
	case AxisY:
		p.B, p.D = 1, -coord
	case AxisZ:
		p.C, p.D = 1, -coord
	}
	return p
}

// Normal returns the plane's unit normal.
func (p Plane) Normal() v3.Vec {
	return v3.Vec{X: p.A, Y: p.B, Z: p.C}
}

// Eval returns the signed distance (up to the normal's scale) of point v
// from the plane: positive on the side the normal points to.
func (p Plane) Eval(v v3.Vec) float64 {
	return p.A*v.X + p.B*v.Y + p.C*v.Z + p.D
}

// Side reports the sign of Eval(v): +1, -1 or 0 (within eps).
func (p Plane) Side(v v3.Vec, eps float64) int {
	d := p.Eval(v)
	if math.Abs(d) <= eps {
		return 0
	}
	if d > 0 {
		return 1
	}
	return -1
}
