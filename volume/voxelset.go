package volume

import (
	"math"

	"github.com/deadsy/vhacd/geom"
	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
	"github.com/deadsy/vhacd/vec/v3i"
)

// Voxel is one cell of a VoxelSet: integer grid coordinates plus its
// classification relative to the input surface.
type Voxel struct {
	Coord v3i.Vec
	Loc   Location
}

// VoxelSet is a uniform grid of voxels: an origin, a uniform cell edge
// length (Scale), and a flat list of occupied voxels. There is no
// duplicate (i,j,k); unoccupied cells (fully outside the input surface)
// simply don't appear.
type VoxelSet struct {
	Origin v3.Vec
	Scale  float64
	Voxels []Voxel
}

// unitVolume is the volume of a single voxel cell.
func (v *VoxelSet) unitVolume() float64 {
	return v.Scale * v.Scale * v.Scale
}

// CellSize returns the grid's cell edge length, used by the decomposer to
// pick candidate planes at grid resolution rather than at a fixed
// world-unit step.
func (v *VoxelSet) CellSize() float64 { return v.Scale }

// Center returns the world-space center of voxel vx.
func (v *VoxelSet) Center(vx Voxel) v3.Vec {
	return v3.Vec{
		X: v.Origin.X + (float64(vx.Coord.X)+0.5)*v.Scale,
		Y: v.Origin.Y + (float64(vx.Coord.Y)+0.5)*v.Scale,
		Z: v.Origin.Z + (float64(vx.Coord.Z)+0.5)*v.Scale,
	}
}

// Corners returns the 8 corner points of voxel vx.
func (v *VoxelSet) Corners(vx Voxel) [8]v3.Vec {
	base := v3.Vec{
		X: v.Origin.X + float64(vx.Coord.X)*v.Scale,
		Y: v.Origin.Y + float64(vx.Coord.Y)*v.Scale,
		Z: v.Origin.Z + float64(vx.Coord.Z)*v.Scale,
	}
	var out [8]v3.Vec
	i := 0
	for dx := 0; dx <= 1; dx++ {
		for dy := 0; dy <= 1; dy++ {
			for dz := 0; dz <= 1; dz++ {
				out[i] = v3.Vec{
					X: base.X + float64(dx)*v.Scale,
					Y: base.Y + float64(dy)*v.Scale,
					Z: base.Z + float64(dz)*v.Scale,
				}
				i++
			}
		}
	}
	return out
}

// Count returns the number of voxels in the set.
func (v *VoxelSet) Count() int { return len(v.Voxels) }

// SurfaceCount returns the number of on-surface voxels.
func (v *VoxelSet) SurfaceCount() int {
	n := 0
	for _, vx := range v.Voxels {
		if vx.Loc == OnSurface {
			n++
		}
	}
	return n
}

// InsideCount returns the number of inside-surface voxels.
func (v *VoxelSet) InsideCount() int {
	return v.Count() - v.SurfaceCount()
}

// Volume returns the set's total volume (voxel count times unit volume).
func (v *VoxelSet) Volume() float64 {
	return float64(v.Count()) * v.unitVolume()
}

// Bounds returns the AABB of the occupied voxels.
func (v *VoxelSet) Bounds() (min, max v3.Vec) {
	if len(v.Voxels) == 0 {
		return
	}
	c0 := v.Corners(v.Voxels[0])
	min, max = c0[0], c0[0]
	for _, vx := range v.Voxels {
		for _, c := range v.Corners(vx) {
			min = min.Min(c)
			max = max.Max(c)
		}
	}
	return
}

// Clip partitions the voxel set by plane p. On-surface voxels whose center
// straddles neither side cleanly are duplicated into both sides (still
// tagged OnSurface) so that the surface shell of each child remains closed;
// inside voxels go to exactly one side with their classification preserved.
func (v *VoxelSet) Clip(p geom.Plane) (PrimitiveSet, PrimitiveSet) {
	pos := &VoxelSet{Origin: v.Origin, Scale: v.Scale}
	neg := &VoxelSet{Origin: v.Origin, Scale: v.Scale}
	for _, vx := range v.Voxels {
		c := v.Center(vx)
		side := p.Eval(c)
		if vx.Loc == OnSurface {
			if side >= 0 {
				pos.Voxels = append(pos.Voxels, vx)
			}
			if side <= 0 {
				neg.Voxels = append(neg.Voxels, vx)
			}
			continue
		}
		if side >= 0 {
			pos.Voxels = append(pos.Voxels, vx)
		} else {
			neg.Voxels = append(neg.Voxels, vx)
		}
	}
	return pos, neg
}

// ComputeClippedVolumes returns the volume on each side of p, computed
// directly from voxel counts without materializing new sets.
func (v *VoxelSet) ComputeClippedVolumes(p geom.Plane) (float64, float64) {
	var nPos, nNeg int
	unit := v.unitVolume()
	for _, vx := range v.Voxels {
		if p.Eval(v.Center(vx)) >= 0 {
			nPos++
		} else {
			nNeg++
		}
	}
	return float64(nPos) * unit, float64(nNeg) * unit
}

// SelectSurface returns a new set containing only the on-surface voxels.
func (v *VoxelSet) SelectSurface() PrimitiveSet {
	out := &VoxelSet{Origin: v.Origin, Scale: v.Scale}
	for _, vx := range v.Voxels {
		if vx.Loc == OnSurface {
			out.Voxels = append(out.Voxels, vx)
		}
	}
	return out
}

// ComputeConvexHull collects the 8 corner points of every kth on-surface
// voxel (k = downsample, minimum 1) and builds their convex hull.
func (v *VoxelSet) ComputeConvexHull(downsample int) (*mesh.Mesh, error) {
	if downsample < 1 {
		downsample = 1
	}
	var pts []v3.Vec
	idx := 0
	for _, vx := range v.Voxels {
		if vx.Loc != OnSurface {
			continue
		}
		if idx%downsample == 0 {
			corners := v.Corners(vx)
			pts = append(pts, corners[:]...)
		}
		idx++
	}
	m, _, err := mesh.ConvexHull(pts, math.MaxInt32, 0)
	return m, err
}

// Intersect samples corner points of on-surface voxels into the two point
// lists used by the approximate convex-hull path: a voxel's corners go to
// whichever side(s) of plane p they fall on, and every downsample-th
// on-surface voxel is sampled (the same stride ComputeConvexHull uses),
// whatever its distance from p.
func (v *VoxelSet) Intersect(p geom.Plane, downsample int) ([]v3.Vec, []v3.Vec) {
	if downsample < 1 {
		downsample = 1
	}
	var right, left []v3.Vec
	idx := 0
	for _, vx := range v.Voxels {
		if vx.Loc != OnSurface {
			continue
		}
		if idx%downsample == 0 {
			for _, c := range v.Corners(vx) {
				if p.Eval(c) >= 0 {
					right = append(right, c)
				} else {
					left = append(left, c)
				}
			}
		}
		idx++
	}
	return right, left
}
