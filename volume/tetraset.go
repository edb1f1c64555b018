package volume

import (
	"math"

	"github.com/deadsy/vhacd/geom"
	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

// Tetrahedron is one primitive of a TetrahedronSet: 4 double-precision
// vertices and its classification relative to the input surface. It plays
// the same role here that render.Tet4 plays in the teacher's finite-element
// mesher, but carries a Location instead of a layer number.
type Tetrahedron struct {
	V   [4]v3.Vec
	Loc Location
}

// Volume returns the tetrahedron's (unsigned) volume.
func (t Tetrahedron) Volume() float64 {
	return geom.TetVolume(t.V[0], t.V[1], t.V[2], t.V[3])
}

// Center returns the tetrahedron's centroid.
func (t Tetrahedron) Center() v3.Vec {
	return t.V[0].Add(t.V[1]).Add(t.V[2]).Add(t.V[3]).DivScalar(4)
}

// TetrahedronSet is an alternative primitive set used when the orchestrator
// selects the tetra-pipeline variant: every primitive is an exact
// tetrahedron rather than a voxel cell. Clipping does not cut tetrahedra:
// each whole tetrahedron goes to the side its center lies on.
type TetrahedronSet struct {
	Tets []Tetrahedron
	// Scale is the edge length of the voxel cube each tetrahedron was cut
	// from, i.e. the grid's cell size (see VoxelSet.Scale).
	Scale float64
}

// Count returns the number of tetrahedra.
func (t *TetrahedronSet) Count() int { return len(t.Tets) }

// CellSize returns the edge length of the grid cube this set's
// tetrahedra were cut from, used by the decomposer to pick candidate
// planes at grid resolution rather than at a fixed world-unit step.
func (t *TetrahedronSet) CellSize() float64 { return t.Scale }

// SurfaceCount returns the number of on-surface tetrahedra.
func (t *TetrahedronSet) SurfaceCount() int {
	n := 0
	for _, tt := range t.Tets {
		if tt.Loc == OnSurface {
			n++
		}
	}
	return n
}

// InsideCount returns the number of inside-surface tetrahedra.
func (t *TetrahedronSet) InsideCount() int {
	return t.Count() - t.SurfaceCount()
}

// Volume returns the total volume of the set.
func (t *TetrahedronSet) Volume() float64 {
	var sum float64
	for _, tt := range t.Tets {
		sum += tt.Volume()
	}
	return sum
}

// Bounds returns the AABB of every tetrahedron vertex.
func (t *TetrahedronSet) Bounds() (min, max v3.Vec) {
	if len(t.Tets) == 0 {
		return
	}
	min, max = t.Tets[0].V[0], t.Tets[0].V[0]
	for _, tt := range t.Tets {
		for _, v := range tt.V {
			min = min.Min(v)
			max = max.Max(v)
		}
	}
	return
}

// PrincipalAxes diagonalizes the inertia tensor of the tetrahedra's
// centroids, weighted by volume.
func (t *TetrahedronSet) PrincipalAxes() (v3.Vec, [3]v3.Vec, v3.Vec) {
	pts := make([]v3.Vec, len(t.Tets))
	mass := make([]float64, len(t.Tets))
	for i, tt := range t.Tets {
		pts[i] = tt.Center()
		mass[i] = tt.Volume()
	}
	return principalAxes(pts, mass)
}

// AlignToPrincipalAxes rotates every tetrahedron's vertices into the set's
// own principal frame (origin at the inertia-tensor centroid), and returns
// the inverse transform to restore the original frame.
func (t *TetrahedronSet) AlignToPrincipalAxes() (PrimitiveSet, func(m *mesh.Mesh) *mesh.Mesh) {
	center, axes, _ := t.PrincipalAxes()
	toLocal := func(p v3.Vec) v3.Vec {
		r := p.Sub(center)
		return v3.Vec{X: r.Dot(axes[0]), Y: r.Dot(axes[1]), Z: r.Dot(axes[2])}
	}
	out := &TetrahedronSet{Tets: make([]Tetrahedron, len(t.Tets)), Scale: t.Scale}
	for i, tt := range t.Tets {
		var nt Tetrahedron
		nt.Loc = tt.Loc
		for k, v := range tt.V {
			nt.V[k] = toLocal(v)
		}
		out.Tets[i] = nt
	}
	revert := func(m *mesh.Mesh) *mesh.Mesh {
		pts := make([]v3.Vec, len(m.Points))
		for i, p := range m.Points {
			world := axes[0].MulScalar(p.X).Add(axes[1].MulScalar(p.Y)).Add(axes[2].MulScalar(p.Z)).Add(center)
			pts[i] = world
		}
		return mesh.New(pts, m.Triangles)
	}
	return out, revert
}

// Clip partitions the tetrahedron set by plane p, classifying by the sign
// of the plane evaluated at each tetrahedron's center (a tetrahedron is
// small relative to the cuts the decomposer makes, so center-sign
// classification is an acceptable approximation of an exact tetrahedron/
// plane split).
func (t *TetrahedronSet) Clip(p geom.Plane) (PrimitiveSet, PrimitiveSet) {
	pos := &TetrahedronSet{Scale: t.Scale}
	neg := &TetrahedronSet{Scale: t.Scale}
	for _, tt := range t.Tets {
		side := p.Eval(tt.Center())
		if tt.Loc == OnSurface {
			if side >= 0 {
				pos.Tets = append(pos.Tets, tt)
			}
			if side <= 0 {
				neg.Tets = append(neg.Tets, tt)
			}
			continue
		}
		if side >= 0 {
			pos.Tets = append(pos.Tets, tt)
		} else {
			neg.Tets = append(neg.Tets, tt)
		}
	}
	return pos, neg
}

// ComputeClippedVolumes sums exact tetrahedron volumes on each side of p.
func (t *TetrahedronSet) ComputeClippedVolumes(p geom.Plane) (float64, float64) {
	var volPos, volNeg float64
	for _, tt := range t.Tets {
		v := tt.Volume()
		if p.Eval(tt.Center()) >= 0 {
			volPos += v
		} else {
			volNeg += v
		}
	}
	return volPos, volNeg
}

// SelectSurface returns a new set containing only the on-surface tetrahedra.
func (t *TetrahedronSet) SelectSurface() PrimitiveSet {
	out := &TetrahedronSet{Scale: t.Scale}
	for _, tt := range t.Tets {
		if tt.Loc == OnSurface {
			out.Tets = append(out.Tets, tt)
		}
	}
	return out
}

// ComputeConvexHull collects the 4 vertices of every kth on-surface
// tetrahedron and builds their convex hull.
func (t *TetrahedronSet) ComputeConvexHull(downsample int) (*mesh.Mesh, error) {
	if downsample < 1 {
		downsample = 1
	}
	var pts []v3.Vec
	idx := 0
	for _, tt := range t.Tets {
		if tt.Loc != OnSurface {
			continue
		}
		if idx%downsample == 0 {
			pts = append(pts, tt.V[:]...)
		}
		idx++
	}
	m, _, err := mesh.ConvexHull(pts, math.MaxInt32, 0)
	return m, err
}

// Intersect splits the vertices of every downsample-th on-surface
// tetrahedron by side of plane p into the two point lists used by the
// approximate convex-hull path; tetrahedra are not filtered by their
// distance from p.
func (t *TetrahedronSet) Intersect(p geom.Plane, downsample int) ([]v3.Vec, []v3.Vec) {
	if downsample < 1 {
		downsample = 1
	}
	var right, left []v3.Vec
	idx := 0
	for _, tt := range t.Tets {
		if tt.Loc != OnSurface {
			continue
		}
		if idx%downsample == 0 {
			for _, v := range tt.V {
				if p.Eval(v) >= 0 {
					right = append(right, v)
				} else {
					left = append(left, v)
				}
			}
		}
		idx++
	}
	return right, left
}
