// Package geom holds the geometric primitives shared across the
// decomposition pipeline: the orientation predicate, axis-aligned planes,
// and the small triangle measurements the mesh and volume packages need.
package geom

import (
	"math"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

// degenerateScale is the relative tolerance (scaled by the cube of the
// bounding-box diagonal) below which an orientation determinant is treated
// as exactly zero.
const degenerateScale = 1e-12

// Orient3D returns the sign of the 3x3 determinant of (b-a, c-a, d-a): +1 if
// d lies on the positive side of the plane through a, b, c (in that winding),
// -1 on the negative side, 0 if the four points are coplanar within
// tolerance. diag is the bounding-box diagonal of the point set the four
// points were drawn from; it sizes the degeneracy tolerance so the predicate
// behaves consistently across scenes of very different scale.
func Orient3D(a, b, c, d v3.Vec, diag float64) int {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)

	det := ab.X*(ac.Y*ad.Z-ac.Z*ad.Y) -
		ab.Y*(ac.X*ad.Z-ac.Z*ad.X) +
		ab.Z*(ac.X*ad.Y-ac.Y*ad.X)

	tol := degenerateScale * diag * diag * diag
	if math.Abs(det) <= tol {
		return 0
	}
	if det > 0 {
		return 1
	}
	return -1
}

// BoundsDiagonal returns the diagonal length of the AABB of pts, the scale
// term Orient3D needs for its degeneracy tolerance.
func BoundsDiagonal(pts []v3.Vec) float64 {
	if len(pts) == 0 {
		return 0
	}
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return max.Sub(min).Length()
}
