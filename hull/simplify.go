package hull

import v3 "github.com/deadsy/vhacd/vec/v3"

// Simplify rebuilds a convex hull over points (normally the vertices of an
// already-computed hull) capped at maxVertices, with minVolume the pocket
// threshold below which a further point is considered already enclosed.
// This is how the reference implementation's simplification pass works: it
// re-runs incremental hull construction over the hull's own vertex set with
// a tighter budget rather than collapsing edges of the existing
// triangulation (see DESIGN.md for why that reading was chosen).
func Simplify(points []v3.Vec, maxVertices int, minVolume float64) ([]v3.Vec, [][3]int, ProcessResult, error) {
	if maxVertices < 4 {
		return nil, nil, NotEnoughPoints, nil
	}
	h := NewIncrementalHull()
	h.AddPoints(points)
	res, err := h.Process(maxVertices, minVolume)
	if err != nil || res != OK {
		return nil, nil, res, err
	}
	verts, tris := h.Mesh()
	return verts, tris, OK, nil
}
