package hull

import (
	"math"

	"github.com/deadsy/vhacd/geom"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

const epsArea = 1e-10 // relative-to-bbox^2 tolerance for a degenerate new face

// Process builds the 3D convex hull over the stored points. It stops adding
// points once every face's outside list is empty, or once adding the next
// point would push the vertex count past maxVertices. A point whose pocket
// volume is below minVolume is dropped rather than added, and growth goes
// on with the remaining points.
func (h *IncrementalHull) Process(maxVertices int, minVolume float64) (ProcessResult, error) {
	if len(h.points) < 4 {
		return NotEnoughPoints, nil
	}
	h.diag = geom.BoundsDiagonal(h.points)

	if ok := h.buildInitialTetrahedron(); !ok {
		return Coplanar, nil
	}

	if res := h.growHull(maxVertices, minVolume); res != OK {
		return res, nil
	}
	return OK, nil
}

// buildInitialTetrahedron picks (p0, farthest p1, farthest-from-line p2,
// farthest-from-plane p3) per the spec, and builds 4 outward-facing
// triangular faces from them. Returns false if no non-degenerate tetrahedron
// exists (all points coplanar within tolerance).
func (h *IncrementalHull) buildInitialTetrahedron() bool {
	pts := h.points
	p0 := 0

	// farthest point from p0
	p1 := farthestPoint(pts, pts[p0], -1, -1)
	if p1 == p0 {
		return false
	}

	// farthest point from the line p0-p1
	p2 := farthestFromLine(pts, pts[p0], pts[p1], p0, p1)
	if p2 == p0 || p2 == p1 {
		return false
	}

	// farthest point (by abs distance) from the plane p0,p1,p2
	n := geom.TriangleNormal(pts[p0], pts[p1], pts[p2])
	if n.Length() <= epsArea*h.diag*h.diag {
		return false
	}
	p3 := farthestFromPlane(pts, pts[p0], n, p0, p1, p2)
	if p3 == p0 || p3 == p1 || p3 == p2 {
		return false
	}
	if math.Abs(n.Normalize().Dot(pts[p3].Sub(pts[p0]))) <= epsArea*h.diag {
		return false
	}

	// Orient so that p3 is on the negative side of (p0,p1,p2); the outward
	// normal of that base face then points away from p3.
	if n.Dot(pts[p3].Sub(pts[p0])) > 0 {
		p1, p2 = p2, p1
	}

	// Build the 4 faces of the tetrahedron (0,1,2),(0,3,1),(1,3,2),(2,3,0),
	// each wound so its normal points outward (away from the opposite vertex).
	verts := [4]int{p0, p1, p2, p3}
	tris := [4][3]int{
		{verts[0], verts[1], verts[2]},
		{verts[0], verts[3], verts[1]},
		{verts[1], verts[3], verts[2]},
		{verts[2], verts[3], verts[0]},
	}

	edgeMap := map[[2]int]int{}
	for _, t := range tris {
		h.addFace(t[0], t[1], t[2], edgeMap)
	}
	if len(edgeMap) != 0 {
		// A closed tetrahedron leaves no unresolved boundary edges.
		return false
	}

	used := map[int]bool{p0: true, p1: true, p2: true, p3: true}
	for i, p := range pts {
		if used[i] {
			continue
		}
		h.assignPoint(i, p)
	}
	return true
}

func farthestPoint(pts []v3.Vec, from v3.Vec, excl0, excl1 int) int {
	best, bestD := -1, -1.0
	for i, p := range pts {
		if i == excl0 || i == excl1 {
			continue
		}
		d := p.Sub(from).Length2()
		if d > bestD {
			bestD, best = d, i
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func farthestFromLine(pts []v3.Vec, a, b v3.Vec, excl ...int) int {
	dir := b.Sub(a).Normalize()
	best, bestD := -1, -1.0
	for i, p := range pts {
		if contains(excl, i) {
			continue
		}
		ap := p.Sub(a)
		perp := ap.Sub(dir.MulScalar(ap.Dot(dir)))
		d := perp.Length2()
		if d > bestD {
			bestD, best = d, i
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func farthestFromPlane(pts []v3.Vec, a v3.Vec, n v3.Vec, excl ...int) int {
	un := n.Normalize()
	best, bestD := -1, -1.0
	for i, p := range pts {
		if contains(excl, i) {
			continue
		}
		d := math.Abs(un.Dot(p.Sub(a)))
		if d > bestD {
			bestD, best = d, i
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func contains(s []int, v int) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}

// addFace creates a new triangular face a,b,c (in winding order, normal
// computed right-handed) and its 3 half-edges, resolving twins against
// edgeMap as it goes. edgeMap holds directed (origin,dest) -> half-edge
// index for every currently-unresolved boundary edge.
func (h *IncrementalHull) addFace(a, b, c int, edgeMap map[[2]int]int) int {
	fi := len(h.faces)
	ei := len(h.edges)

	n := geom.TriangleNormal(h.points[a], h.points[b], h.points[c])
	f := face{edge: ei, normal: n, offset: n.Dot(h.points[a]), alive: true}
	h.faces = append(h.faces, f)

	verts := [3]int{a, b, c}
	for k := 0; k < 3; k++ {
		h.edges = append(h.edges, halfEdge{
			origin: verts[k],
			twin:   noIndex,
			next:   ei + (k+1)%3,
			face:   fi,
		})
	}
	for k := 0; k < 3; k++ {
		origin, dest := verts[k], verts[(k+1)%3]
		key := [2]int{origin, dest}
		revKey := [2]int{dest, origin}
		if twinIdx, ok := edgeMap[revKey]; ok {
			h.edges[ei+k].twin = twinIdx
			h.edges[twinIdx].twin = ei + k
			delete(edgeMap, revKey)
		} else {
			edgeMap[key] = ei + k
		}
	}
	return fi
}

// assignPoint adds point i to the outside list of the first face it is
// outside of, if any.
func (h *IncrementalHull) assignPoint(i int, p v3.Vec) {
	for fi := range h.faces {
		f := &h.faces[fi]
		if !f.alive {
			continue
		}
		if f.normal.Dot(p)-f.offset > epsArea*h.diag {
			f.outside = append(f.outside, i)
			return
		}
	}
}
