package volume

import (
	"gonum.org/v1/gonum/mat"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

// principalAxes diagonalizes the (mass-weighted) inertia tensor of a set of
// sample points and returns their centroid, the 3 orthonormal eigenvectors
// sorted by ascending eigenvalue, and the eigenvalues themselves. It is the
// shared implementation behind VoxelSet.PrincipalAxes and
// TetrahedronSet.PrincipalAxes.
func principalAxes(pts []v3.Vec, mass []float64) (center v3.Vec, axes [3]v3.Vec, eigen v3.Vec) {
	if len(pts) == 0 {
		axes = [3]v3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
		return
	}

	var totalMass float64
	for i, p := range pts {
		center = center.Add(p.MulScalar(mass[i]))
		totalMass += mass[i]
	}
	if totalMass == 0 {
		totalMass = float64(len(pts))
		for i := range mass {
			mass[i] = 1
		}
	}
	center = center.DivScalar(totalMass)

	var ixx, iyy, izz, ixy, ixz, iyz float64
	for i, p := range pts {
		r := p.Sub(center)
		m := mass[i]
		ixx += m * (r.Y*r.Y + r.Z*r.Z)
		iyy += m * (r.X*r.X + r.Z*r.Z)
		izz += m * (r.X*r.X + r.Y*r.Y)
		ixy -= m * r.X * r.Y
		ixz -= m * r.X * r.Z
		iyz -= m * r.Y * r.Z
	}

	tensor := mat.NewSymDense(3, []float64{
		ixx, ixy, ixz,
		ixy, iyy, iyz,
		ixz, iyz, izz,
	})

	var eig mat.EigenSym
	ok := eig.Factorize(tensor, true)
	if !ok {
		axes = [3]v3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
		return
	}

	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// eig.Values is ascending already; axes[i] corresponds to values[i].
	for i := 0; i < 3; i++ {
		axes[i] = v3.Vec{X: vecs.At(0, i), Y: vecs.At(1, i), Z: vecs.At(2, i)}.Normalize()
	}
	eigen = v3.Vec{X: values[0], Y: values[1], Z: values[2]}
	return
}

// preferredCuttingDirection picks the principal axis whose other two
// eigenvalues are closest to each other, by the relative gap
// |e_j - e_k| / (e_j + e_k) — the axis about which the mass distribution is
// most nearly rotationally symmetric, which V-HACD's symmetry cost term
// uses — and returns it alongside the weight 1 - gap, clamped to [0, 1].
func preferredCuttingDirection(axes [3]v3.Vec, eigen v3.Vec) (v3.Vec, float64) {
	e := [3]float64{eigen.X, eigen.Y, eigen.Z}
	gap := func(i, j, k int) float64 {
		denom := e[j] + e[k]
		if denom == 0 {
			return 0
		}
		d := e[j] - e[k]
		if d < 0 {
			d = -d
		}
		return d / denom
	}
	gaps := [3]float64{gap(0, 1, 2), gap(1, 0, 2), gap(2, 0, 1)}
	best := 0
	for i := 1; i < 3; i++ {
		if gaps[i] < gaps[best] {
			best = i
		}
	}
	w := 1 - gaps[best]
	if w < 0 {
		w = 0
	}
	if w > 1 {
		w = 1
	}
	return axes[best], w
}
