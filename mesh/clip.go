package mesh

import (
	"github.com/deadsy/vhacd/geom"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

// edgeKey identifies an original mesh edge by its (unordered) endpoint
// indices, used to dedupe the plane/edge intersection point computed when
// two triangles share a clipped edge.
type edgeKey [2]int

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// clipSide accumulates one side (positive or negative) of a clip: its own
// point buffer, triangle list, and a cache mapping original-mesh vertex/edge
// identities to indices in that buffer.
type clipSide struct {
	pts       []v3.Vec
	tris      [][3]int
	vertCache map[int]int
	cutCache  map[edgeKey]int
}

func newClipSide() *clipSide {
	return &clipSide{vertCache: map[int]int{}, cutCache: map[edgeKey]int{}}
}

func (s *clipSide) vertex(orig int, p v3.Vec) int {
	if i, ok := s.vertCache[orig]; ok {
		return i
	}
	i := len(s.pts)
	s.pts = append(s.pts, p)
	s.vertCache[orig] = i
	return i
}

func (s *clipSide) cutVertex(k edgeKey, p v3.Vec) int {
	if i, ok := s.cutCache[k]; ok {
		return i
	}
	i := len(s.pts)
	s.pts = append(s.pts, p)
	s.cutCache[k] = i
	return i
}

// polyElem is one vertex of a clipped triangle's sub-polygon: either an
// original mesh vertex or a newly interpolated cut point.
type polyElem struct {
	isCut bool
	orig  int
	key   edgeKey
}

// Clip partitions the mesh by plane p into the sub-mesh on the positive
// side and the sub-mesh on the negative side. Every triangle entirely on one
// side passes through unchanged; every straddling triangle is cut into a
// triangle plus a quad (as two triangles); the planar cross-section left
// open by the cut is capped on both sides by fan-triangulating the closed
// polyline of intersection points.
func (m *Mesh) Clip(p geom.Plane) (pos, neg *Mesh) {
	d := make([]float64, len(m.Points))
	for i, v := range m.Points {
		d[i] = p.Eval(v)
	}

	posSide := newClipSide()
	negSide := newClipSide()

	// capNext[a] = b means the directed cap edge a->b (cut points identified
	// by edge key) belongs to the positive-side capping polygon's boundary.
	capNext := map[edgeKey]edgeKey{}
	cutCoord := map[edgeKey]v3.Vec{}

	for _, t := range m.Triangles {
		var posElems, negElems []polyElem
		var cutKeys []edgeKey

		for k := 0; k < 3; k++ {
			cur := t[k]
			nxt := t[(k+1)%3]
			dCur, dNxt := d[cur], d[nxt]

			if dCur >= 0 {
				posElems = append(posElems, polyElem{orig: cur})
			}
			if dCur <= 0 {
				negElems = append(negElems, polyElem{orig: cur})
			}

			if (dCur > 0 && dNxt < 0) || (dCur < 0 && dNxt > 0) {
				tt := dCur / (dCur - dNxt)
				ip := m.Points[cur].Add(m.Points[nxt].Sub(m.Points[cur]).MulScalar(tt))
				key := newEdgeKey(cur, nxt)
				cutCoord[key] = ip
				posElems = append(posElems, polyElem{isCut: true, key: key})
				negElems = append(negElems, polyElem{isCut: true, key: key})
				if dCur < 0 {
					// negative-to-positive crossing starts the cap edge
					cutKeys = append([]edgeKey{key}, cutKeys...)
				} else {
					cutKeys = append(cutKeys, key)
				}
			}
		}

		triangulateFan(posElems, posSide, m.Points, cutCoord)
		triangulateFan(negElems, negSide, m.Points, cutCoord)

		if len(cutKeys) == 2 {
			capNext[cutKeys[0]] = cutKeys[1]
		}
	}

	capLoops := chainLoops(capNext)
	for _, loop := range capLoops {
		addCapFan(posSide, loop, cutCoord, false)
		addCapFan(negSide, loop, cutCoord, true)
	}

	return New(posSide.pts, posSide.tris), New(negSide.pts, negSide.tris)
}

func triangulateFan(elems []polyElem, side *clipSide, pts []v3.Vec, cutCoord map[edgeKey]v3.Vec) {
	if len(elems) < 3 {
		return
	}
	idx := make([]int, len(elems))
	for i, e := range elems {
		if e.isCut {
			idx[i] = side.cutVertex(e.key, cutCoord[e.key])
		} else {
			idx[i] = side.vertex(e.orig, pts[e.orig])
		}
	}
	for i := 1; i < len(idx)-1; i++ {
		side.tris = append(side.tris, [3]int{idx[0], idx[i], idx[i+1]})
	}
}

// chainLoops walks the directed cap-edge graph into one or more closed
// polylines, each a sequence of edge keys (cut-point identities) in
// traversal order.
func chainLoops(next map[edgeKey]edgeKey) [][]edgeKey {
	visited := map[edgeKey]bool{}
	var loops [][]edgeKey
	for start := range next {
		if visited[start] {
			continue
		}
		var loop []edgeKey
		cur := start
		for {
			if visited[cur] {
				break
			}
			visited[cur] = true
			loop = append(loop, cur)
			nxt, ok := next[cur]
			if !ok {
				break
			}
			cur = nxt
			if cur == start {
				break
			}
		}
		if len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}

func addCapFan(side *clipSide, loop []edgeKey, coord map[edgeKey]v3.Vec, reverse bool) {
	idx := make([]int, len(loop))
	for i, k := range loop {
		idx[i] = side.cutVertex(k, coord[k])
	}
	if reverse {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}
	for i := 1; i < len(idx)-1; i++ {
		side.tris = append(side.tris, [3]int{idx[0], idx[i], idx[i+1]})
	}
}
