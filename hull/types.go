// Package hull builds a 3D convex hull incrementally from a point cloud and
// simplifies an existing hull down to a target vertex count, the way a
// classic incremental (Quickhull-style) hull builder does: an initial
// tetrahedron is grown one point at a time, visible faces are removed and
// re-triangulated against the new point's horizon.
//
// Faces, half-edges and vertices live in their own arenas and refer to each
// other by index rather than by pointer, so the visible-face search is an
// explicit BFS over face indices instead of a walk over cyclic pointers.
package hull

import v3 "github.com/deadsy/vhacd/vec/v3"

// ProcessResult reports how Process concluded.
type ProcessResult int

// The closed set of outcomes Process can report.
const (
	OK ProcessResult = iota
	NotEnoughPoints
	Coplanar
	Degenerate
)

func (r ProcessResult) String() string {
	switch r {
	case OK:
		return "OK"
	case NotEnoughPoints:
		return "NotEnoughPoints"
	case Coplanar:
		return "Coplanar"
	case Degenerate:
		return "Degenerate"
	default:
		return "Unknown"
	}
}

// noIndex marks an absent arena reference (no twin yet, no next face, etc).
const noIndex = -1

// halfEdge is one directed edge of a triangular face. Faces always own
// exactly 3 consecutive half-edges; next is still an explicit field
// (rather than implied by index arithmetic) so the BFS and horizon-walk code
// reads the same whether or not that invariant holds.
type halfEdge struct {
	origin int // vertex arena index at the tail of this directed edge
	twin   int // opposite half-edge index, noIndex if unresolved
	next   int // next half-edge around the same face
	face   int // owning face index
}

// face is one triangular face of the hull under construction.
type face struct {
	edge    int // index of one half-edge bounding this face
	normal  v3.Vec
	offset  float64 // normal.Dot(p) - offset is p's signed distance from the face times |normal| (twice the face area)
	outside []int   // point-store indices of points external to the hull, assigned to this face
	alive   bool
}

// IncrementalHull builds a convex hull over a growing point cloud.
type IncrementalHull struct {
	points []v3.Vec // the full point store; points[i] is addressed by index i throughout
	faces  []face
	edges  []halfEdge

	diag float64 // bounding-box diagonal of points, sizes the degeneracy tolerance
}

// NewIncrementalHull returns an empty hull builder.
func NewIncrementalHull() *IncrementalHull {
	return &IncrementalHull{}
}

// AddPoints appends points to the internal point store. It may be called
// more than once, before the first call to Process.
func (h *IncrementalHull) AddPoints(pts []v3.Vec) {
	h.points = append(h.points, pts...)
}

// NumPoints returns the number of points in the store.
func (h *IncrementalHull) NumPoints() int {
	return len(h.points)
}
