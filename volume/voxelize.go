package volume

import (
	"math"

	"github.com/dhconnelly/rtreego"

	v3 "github.com/deadsy/vhacd/vec/v3"
	"github.com/deadsy/vhacd/vec/v3i"
)

// DefaultResolution is the target total voxel count used when the caller
// does not override Params.Resolution.
const DefaultResolution = 100000

// triBox is one mesh triangle's AABB, indexed into an rtreego.Rtree so the
// rasterizer can ask "which triangles might touch this column of voxels"
// instead of walking every triangle for every column.
type triBox struct {
	tri  int
	rect *rtreego.Rect
}

func (t *triBox) Bounds() *rtreego.Rect { return t.rect }

// Voxelize rasterizes a closed triangle mesh into a VoxelSet: it picks a
// cell size so the grid holds approximately `resolution` voxels total,
// marks every voxel touched by a triangle OnSurface, and flood-fills from
// an exterior seed to classify enclosed voxels InsideSurface.
func Voxelize(points []v3.Vec, triangles [][3]int32, resolution int) *VoxelSet {
	if resolution < 1 {
		resolution = DefaultResolution
	}
	if len(points) == 0 || len(triangles) == 0 {
		return &VoxelSet{Scale: 1}
	}

	min, max := boundsOf(points)
	size := max.Sub(min)
	vol := size.X * size.Y * size.Z
	if vol <= 0 {
		vol = math.Max(size.MaxComponent(), 1e-9)
		vol = vol * vol * vol
	}
	scale := math.Cbrt(vol / float64(resolution))
	if scale <= 0 {
		scale = 1
	}

	dims := v3i.Vec{
		X: int(math.Ceil(size.X/scale)) + 2,
		Y: int(math.Ceil(size.Y/scale)) + 2,
		Z: int(math.Ceil(size.Z/scale)) + 2,
	}
	// Pad the grid by one cell on the low side so the flood-fill has a
	// guaranteed-exterior shell to start from.
	origin := min.Sub(v3.Vec{X: scale, Y: scale, Z: scale})

	vs := &VoxelSet{Origin: origin, Scale: scale}

	occupied := make(map[v3i.Vec]bool)
	tree := buildTriangleIndex(points, triangles, origin, scale)

	for i := 0; i < dims.X; i++ {
		for j := 0; j < dims.Y; j++ {
			columnRect := columnBounds(i, j, origin, scale)
			seen := map[int]bool{}
			for _, obj := range tree.SearchIntersect(columnRect) {
				tb := obj.(*triBox)
				if seen[tb.tri] {
					continue
				}
				seen[tb.tri] = true
				markTriangleColumn(points, triangles[tb.tri], origin, scale, i, j, dims.Z, occupied)
			}
		}
	}

	for c := range occupied {
		vs.Voxels = append(vs.Voxels, Voxel{Coord: c, Loc: OnSurface})
	}

	fillInterior(vs, occupied, dims)
	return vs
}

func boundsOf(pts []v3.Vec) (min, max v3.Vec) {
	min, max = pts[0], pts[0]
	for _, p := range pts[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return
}

// buildTriangleIndex indexes every triangle's world-space AABB into an
// Rtree so the column scan below can ask which triangles might touch a
// given (i, j) column instead of testing all of them.
func buildTriangleIndex(points []v3.Vec, triangles [][3]int32, origin v3.Vec, scale float64) *rtreego.Rtree {
	tree := rtreego.NewTree(3, 25, 50)
	for i, t := range triangles {
		a, b, c := points[t[0]], points[t[1]], points[t[2]]
		tMin := a.Min(b).Min(c)
		tMax := a.Max(b).Max(c)
		lengths := tMax.Sub(tMin)
		lengths = lengths.Max(v3.Vec{X: 1e-9, Y: 1e-9, Z: 1e-9})
		rect, err := rtreego.NewRect(rtreego.Point{tMin.X, tMin.Y, tMin.Z}, []float64{lengths.X, lengths.Y, lengths.Z})
		if err != nil {
			continue
		}
		tree.Insert(&triBox{tri: i, rect: rect})
	}
	return tree
}

// columnBounds returns the world-space AABB of the (i, j) voxel column
// spanning the full Z extent of the grid, used to query the triangle index
// built in the same world-space frame.
func columnBounds(i, j int, origin v3.Vec, scale float64) *rtreego.Rect {
	x := origin.X + float64(i)*scale
	y := origin.Y + float64(j)*scale
	const zSpan = 1e12
	rect, _ := rtreego.NewRect(rtreego.Point{x, y, -zSpan / 2}, []float64{scale, scale, zSpan})
	return rect
}

// markTriangleColumn walks the Z range of column (i, j) and marks every
// voxel whose box is plane-overlapped by the triangle.
func markTriangleColumn(points []v3.Vec, t [3]int32, origin v3.Vec, scale float64, i, j, depthZ int, occupied map[v3i.Vec]bool) {
	a, b, c := points[t[0]], points[t[1]], points[t[2]]
	n := a.Sub(b).Cross(c.Sub(b))
	if n.Length() == 0 {
		return
	}
	tMin := a.Min(b).Min(c)
	tMax := a.Max(b).Max(c)

	kMin := int(math.Floor((tMin.Z - origin.Z) / scale))
	kMax := int(math.Floor((tMax.Z - origin.Z) / scale))
	if kMin < 0 {
		kMin = 0
	}
	if kMax > depthZ-1 {
		kMax = depthZ - 1
	}

	half := scale * 0.5
	halfExtent := math.Abs(n.X)*half + math.Abs(n.Y)*half + math.Abs(n.Z)*half
	d := n.Dot(a)

	for k := kMin; k <= kMax; k++ {
		center := v3.Vec{
			X: origin.X + (float64(i)+0.5)*scale,
			Y: origin.Y + (float64(j)+0.5)*scale,
			Z: origin.Z + (float64(k)+0.5)*scale,
		}
		dist := n.Dot(center) - d
		if math.Abs(dist) <= halfExtent {
			occupied[v3i.Vec{X: i, Y: j, Z: k}] = true
		}
	}
}

// fillInterior flood-fills from the grid's (guaranteed exterior, since the
// grid is padded by one cell) corner and marks every unvisited, unoccupied
// cell enclosed by the surface shell as InsideSurface.
func fillInterior(vs *VoxelSet, occupied map[v3i.Vec]bool, dims v3i.Vec) {
	outside := make(map[v3i.Vec]bool, len(occupied))
	queue := []v3i.Vec{{X: 0, Y: 0, Z: 0}}
	outside[queue[0]] = true
	dirs := []v3i.Vec{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			nb := cur.Add(d)
			if nb.X < 0 || nb.Y < 0 || nb.Z < 0 || nb.X >= dims.X || nb.Y >= dims.Y || nb.Z >= dims.Z {
				continue
			}
			if outside[nb] || occupied[nb] {
				continue
			}
			outside[nb] = true
			queue = append(queue, nb)
		}
	}

	for i := 0; i < dims.X; i++ {
		for j := 0; j < dims.Y; j++ {
			for k := 0; k < dims.Z; k++ {
				c := v3i.Vec{X: i, Y: j, Z: k}
				if occupied[c] || outside[c] {
					continue
				}
				vs.Voxels = append(vs.Voxels, Voxel{Coord: c, Loc: InsideSurface})
			}
		}
	}
}
