package geom

import v3 "github.com/deadsy/vhacd/vec/v3"

// TriangleNormal returns the unnormalized normal (b-a) x (c-a) of triangle
// a, b, c. Its length is twice the triangle's area.
func TriangleNormal(a, b, c v3.Vec) v3.Vec {
	return b.Sub(a).Cross(c.Sub(a))
}

// TriangleArea returns the area of triangle a, b, c.
func TriangleArea(a, b, c v3.Vec) float64 {
	return TriangleNormal(a, b, c).Length() * 0.5
}

// SignedTetVolume6 returns six times the signed volume of the tetrahedron
// with one vertex at the origin and the opposite face a, b, c (the
// divergence-theorem contribution of one origin-referenced triangle to the
// volume of a closed mesh). Callers sum this over every triangle and divide
// the absolute total by 6 (see mesh.Mesh.Volume).
func SignedTetVolume6(a, b, c v3.Vec) float64 {
	return a.Dot(b.Cross(c))
}

// TetVolume returns the (unsigned) volume of the tetrahedron with vertices
// a, b, c, d.
func TetVolume(a, b, c, d v3.Vec) float64 {
	v := SignedTetVolume6(b.Sub(a), c.Sub(a), d.Sub(a))
	if v < 0 {
		v = -v
	}
	return v / 6
}

// SignedTetVolume returns the signed volume of the tetrahedron a, b, c, d
// (positive when d is on the positive side of the oriented face a, b, c).
func SignedTetVolume(a, b, c, d v3.Vec) float64 {
	return SignedTetVolume6(b.Sub(a), c.Sub(a), d.Sub(a)) / 6
}
