// Package mesh implements the indexed triangle mesh operations the rest of
// the pipeline needs: signed volume via the divergence theorem, clipping by
// a plane (with cap-face triangulation), and convex-hull construction
// (delegated to package hull).
package mesh

import (
	"math"

	"github.com/deadsy/vhacd/geom"
	"github.com/deadsy/vhacd/hull"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

// Mesh is an ordered point buffer plus an ordered list of triangles
// referencing it by index.
type Mesh struct {
	Points    []v3.Vec
	Triangles [][3]int
}

// New returns a mesh over the given points and triangles (no copy).
func New(points []v3.Vec, triangles [][3]int) *Mesh {
	return &Mesh{Points: points, Triangles: triangles}
}

// Volume returns the mesh's volume via the divergence theorem: the sum,
// over every triangle, of the signed volume of the tetrahedron from the
// origin to that triangle, with the total's absolute value taken once at
// the end (not per triangle) so that a consistent winding is still required
// for a correct result, but the reported volume is always non-negative.
func (m *Mesh) Volume() float64 {
	var sum float64
	for _, t := range m.Triangles {
		a, b, c := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
		sum += geom.SignedTetVolume6(a, b, c)
	}
	return math.Abs(sum) / 6
}

// Centroid returns the (triangle-area-weighted) centroid of the mesh
// surface, used by the merger's hull bookkeeping.
func (m *Mesh) Centroid() v3.Vec {
	if len(m.Triangles) == 0 {
		if len(m.Points) == 0 {
			return v3.Vec{}
		}
		var sum v3.Vec
		for _, p := range m.Points {
			sum = sum.Add(p)
		}
		return sum.DivScalar(float64(len(m.Points)))
	}
	var sum v3.Vec
	var totalArea float64
	for _, t := range m.Triangles {
		a, b, c := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
		area := geom.TriangleArea(a, b, c)
		centroid := a.Add(b).Add(c).DivScalar(3)
		sum = sum.Add(centroid.MulScalar(area))
		totalArea += area
	}
	if totalArea == 0 {
		return m.Centroid2()
	}
	return sum.DivScalar(totalArea)
}

// Centroid2 is the plain average of vertex positions, used as a fallback
// when the mesh has zero surface area (degenerate or point-only input).
func (m *Mesh) Centroid2() v3.Vec {
	var sum v3.Vec
	for _, p := range m.Points {
		sum = sum.Add(p)
	}
	if len(m.Points) == 0 {
		return sum
	}
	return sum.DivScalar(float64(len(m.Points)))
}

// ConvexHull builds the convex hull of points and returns it as a mesh.
func ConvexHull(points []v3.Vec, maxVertices int, minVolume float64) (*Mesh, hull.ProcessResult, error) {
	h := hull.NewIncrementalHull()
	h.AddPoints(points)
	res, err := h.Process(maxVertices, minVolume)
	if err != nil || res != hull.OK {
		return nil, res, err
	}
	verts, tris := h.Mesh()
	return New(verts, tris), hull.OK, nil
}

// Bounds returns the axis-aligned bounding box of the mesh's points.
func (m *Mesh) Bounds() (min, max v3.Vec) {
	if len(m.Points) == 0 {
		return
	}
	min, max = m.Points[0], m.Points[0]
	for _, p := range m.Points[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return
}
