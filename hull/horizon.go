package hull

import v3 "github.com/deadsy/vhacd/vec/v3"

// growHull repeatedly picks the stored point with the greatest absolute
// distance to its assigned face and merges it into the hull, until every
// face's outside list is empty or the maxVertices budget is hit. A point
// whose pocket volume is below minVolume is dropped instead of merged.
func (h *IncrementalHull) growHull(maxVertices int, minVolume float64) ProcessResult {
	for {
		fi, pi, dist := h.pickNextPoint()
		if fi == -1 {
			return OK
		}
		if h.vertexCount() >= maxVertices {
			return OK
		}
		if h.pocketVolume(fi, pi, dist) < minVolume {
			// Treat this point, and any other point whose pocket is this
			// shallow, as already enclosed: drop it and keep going so a
			// handful of near-hull outliers don't block termination.
			h.removeOutsidePoint(fi, pi)
			continue
		}

		visible := h.visibleFaces(fi, pi)
		horizon := h.horizonEdges(visible)
		if len(horizon) == 0 {
			return Degenerate
		}

		pool := h.collectOutsidePoints(visible, pi)
		h.killFaces(visible)

		edgeMap := map[[2]int]int{}
		h.rebuildBoundaryMap(edgeMap)

		newFaces := make([]int, 0, len(horizon))
		for _, e := range horizon {
			nf := h.addFace(e[0], e[1], pi, edgeMap)
			if h.faces[nf].normal.Length() <= epsArea*h.diag*h.diag {
				return Degenerate
			}
			newFaces = append(newFaces, nf)
		}
		h.reassignPoints(pool, newFaces)
	}
}

// pickNextPoint returns the (face, point, distance) with globally maximum
// distance across every face's outside list, or (-1,-1,0) if none remain.
func (h *IncrementalHull) pickNextPoint() (int, int, float64) {
	bestFace, bestPoint := -1, -1
	bestDist := 0.0
	for fi := range h.faces {
		f := &h.faces[fi]
		if !f.alive {
			continue
		}
		l := f.normal.Length()
		if l == 0 {
			continue
		}
		for _, pi := range f.outside {
			d := (f.normal.Dot(h.points[pi]) - f.offset) / l
			if d > bestDist {
				bestDist, bestFace, bestPoint = d, fi, pi
			}
		}
	}
	return bestFace, bestPoint, bestDist
}

func (h *IncrementalHull) removeOutsidePoint(fi, pi int) {
	f := &h.faces[fi]
	for k, p := range f.outside {
		if p == pi {
			f.outside = append(f.outside[:k], f.outside[k+1:]...)
			return
		}
	}
}

// pocketVolume estimates the volume the new point would carve out of the
// face it's assigned to: the tetrahedron-like wedge between the point and
// the face's plane, scaled by the face area.
func (h *IncrementalHull) pocketVolume(fi, pi int, dist float64) float64 {
	a, b, c := h.faceVerts(fi)
	area := h.points[b].Sub(h.points[a]).Cross(h.points[c].Sub(h.points[a])).Length() * 0.5
	return area * dist / 3
}

func (h *IncrementalHull) faceVerts(fi int) (int, int, int) {
	f := &h.faces[fi]
	e0 := f.edge
	e1 := h.edges[e0].next
	e2 := h.edges[e1].next
	return h.edges[e0].origin, h.edges[e1].origin, h.edges[e2].origin
}

// visibleFaces returns the set of face indices visible from point pi,
// starting the BFS at seed (which pi is known to be outside of).
func (h *IncrementalHull) visibleFaces(seed, pi int) map[int]bool {
	p := h.points[pi]
	visible := map[int]bool{seed: true}
	queue := []int{seed}
	for len(queue) > 0 {
		fi := queue[0]
		queue = queue[1:]
		for _, nb := range h.neighbors(fi) {
			if visible[nb] || !h.faces[nb].alive {
				continue
			}
			f := &h.faces[nb]
			if f.normal.Dot(p)-f.offset > epsArea*h.diag {
				visible[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return visible
}

// neighbors returns the (up to 3) faces sharing an edge with face fi.
func (h *IncrementalHull) neighbors(fi int) []int {
	f := &h.faces[fi]
	var out []int
	e := f.edge
	for i := 0; i < 3; i++ {
		if tw := h.edges[e].twin; tw != noIndex {
			out = append(out, h.edges[tw].face)
		}
		e = h.edges[e].next
	}
	return out
}

// horizonEdges returns the directed boundary edges of the visible region, in
// (origin, dest) order such that the new triangle (origin, dest, p) is
// correctly wound outward.
func (h *IncrementalHull) horizonEdges(visible map[int]bool) [][2]int {
	var out [][2]int
	for fi := range visible {
		e := h.faces[fi].edge
		for i := 0; i < 3; i++ {
			tw := h.edges[e].twin
			if tw == noIndex || !visible[h.edges[tw].face] {
				origin := h.edges[e].origin
				dest := h.edges[h.edges[e].next].origin
				out = append(out, [2]int{origin, dest})
			}
			e = h.edges[e].next
		}
	}
	return out
}

// collectOutsidePoints gathers every outside point assigned to a visible
// face (other than the point being merged in) for reassignment to the new
// faces.
func (h *IncrementalHull) collectOutsidePoints(visible map[int]bool, exclude int) []int {
	var pool []int
	for fi := range visible {
		for _, pi := range h.faces[fi].outside {
			if pi != exclude {
				pool = append(pool, pi)
			}
		}
	}
	return pool
}

func (h *IncrementalHull) killFaces(visible map[int]bool) {
	for fi := range visible {
		h.faces[fi].alive = false
		h.faces[fi].outside = nil
	}
}

// rebuildBoundaryMap seeds edgeMap with every unresolved boundary half-edge
// still owned by a live face, so addFace can twin new faces against them.
func (h *IncrementalHull) rebuildBoundaryMap(edgeMap map[[2]int]int) {
	for fi := range h.faces {
		f := &h.faces[fi]
		if !f.alive {
			continue
		}
		e := f.edge
		for i := 0; i < 3; i++ {
			if h.edges[e].twin == noIndex {
				origin := h.edges[e].origin
				dest := h.edges[h.edges[e].next].origin
				edgeMap[[2]int{origin, dest}] = e
			}
			e = h.edges[e].next
		}
	}
}

func (h *IncrementalHull) reassignPoints(pool []int, newFaces []int) {
	for _, pi := range pool {
		p := h.points[pi]
		for _, fi := range newFaces {
			f := &h.faces[fi]
			if f.normal.Dot(p)-f.offset > epsArea*h.diag {
				f.outside = append(f.outside, pi)
				break
			}
		}
	}
}

// vertexCount returns the number of distinct vertices currently referenced
// by live faces.
func (h *IncrementalHull) vertexCount() int {
	seen := map[int]bool{}
	for fi := range h.faces {
		if !h.faces[fi].alive {
			continue
		}
		a, b, c := h.faceVerts(fi)
		seen[a], seen[b], seen[c] = true, true, true
	}
	return len(seen)
}

// Mesh returns the current hull as an indexed triangle mesh: a compact
// vertex buffer (only referenced points, renumbered) and one triangle per
// live face.
func (h *IncrementalHull) Mesh() ([]v3.Vec, [][3]int) {
	remap := map[int]int{}
	var verts []v3.Vec
	var tris [][3]int
	for fi := range h.faces {
		if !h.faces[fi].alive {
			continue
		}
		a, b, c := h.faceVerts(fi)
		ra := remapVertex(remap, &verts, h.points, a)
		rb := remapVertex(remap, &verts, h.points, b)
		rc := remapVertex(remap, &verts, h.points, c)
		tris = append(tris, [3]int{ra, rb, rc})
	}
	return verts, tris
}

func remapVertex(remap map[int]int, verts *[]v3.Vec, pts []v3.Vec, i int) int {
	if r, ok := remap[i]; ok {
		return r
	}
	r := len(*verts)
	*verts = append(*verts, pts[i])
	remap[i] = r
	return r
}
