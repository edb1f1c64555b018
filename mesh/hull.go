package mesh

import (
	"math"

	"github.com/deadsy/vhacd/hull"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

// Hull is a convex mesh with its volume and centroid precomputed, the unit
// the merger and the final decomposition result both work in.
type Hull struct {
	Mesh     *Mesh
	Volume   float64
	Centroid v3.Vec
}

// NewHull wraps m, precomputing its volume and centroid.
func NewHull(m *Mesh) *Hull {
	return &Hull{Mesh: m, Volume: m.Volume(), Centroid: m.Centroid()}
}

// CombineHulls returns the convex hull of the union of a's and b's points,
// used by the merger to evaluate (and, once chosen, materialize) a
// candidate merge.
func CombineHulls(a, b *Hull) (*Hull, error) {
	pts := make([]v3.Vec, 0, len(a.Mesh.Points)+len(b.Mesh.Points))
	pts = append(pts, a.Mesh.Points...)
	pts = append(pts, b.Mesh.Points...)
	m, res, err := ConvexHull(pts, math.MaxInt32, 0)
	if err != nil {
		return nil, err
	}
	if res != hull.OK {
		// Degenerate union (e.g. coplanar hulls): fall back to a
		// zero-volume placeholder so the merge cost treats it as +Inf
		// rather than failing the whole pipeline.
		return &Hull{Mesh: New(nil, nil), Volume: 0}, nil
	}
	return NewHull(m), nil
}

// Concavity is |V_hull - V|/V0, the shared cost term used by both the
// decomposer's split search and the merger's pairwise cost matrix.
func Concavity(trueVolume, hullVolume, v0 float64) float64 {
	if v0 == 0 {
		return 0
	}
	return math.Abs(hullVolume-trueVolume) / v0
}
