// Package volume implements the voxel and tetrahedron primitive sets the
// decomposer works with: rasterizing a mesh into a uniform grid, clipping
// and intersecting that grid (or a tetrahedral dissection of it) by a
// plane, and extracting convex hulls and principal axes from it.
package volume

import (
	"github.com/deadsy/vhacd/geom"
	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

// Location classifies a primitive relative to the input surface.
type Location int

// The closed set of primitive classifications.
const (
	OnSurface Location = iota
	InsideSurface
)

// PrimitiveSet is the capability surface the decomposer needs from either a
// VoxelSet or a TetrahedronSet. It is a closed, tagged interface rather than
// an open class hierarchy: every hot call site in decomp knows statically
// which of the two concrete types it is driving.
type PrimitiveSet interface {
	// Count returns the total number of primitives.
	Count() int
	// SurfaceCount returns the number of on-surface primitives.
	SurfaceCount() int
	// InsideCount returns the number of inside-surface primitives.
	InsideCount() int
	// Volume returns the total volume of the set.
	Volume() float64
	// Bounds returns the axis-aligned bounding box of the set's primitives.
	Bounds() (min, max v3.Vec)
	// CellSize returns the edge length of the grid cell the set's
	// primitives were generated from, i.e. the spacing between adjacent
	// candidate planes at downsampling 1.
	CellSize() float64
	// PrincipalAxes diagonalizes the inertia tensor of the set and returns
	// its center, the 3 orthonormal eigenvectors sorted by eigenvalue, and
	// the eigenvalues themselves.
	PrincipalAxes() (center v3.Vec, axes [3]v3.Vec, eigenvalues v3.Vec)
	// AlignToPrincipalAxes returns a copy of the set rotated into its own
	// principal frame, plus the rotation+translation needed to undo it.
	AlignToPrincipalAxes() (aligned PrimitiveSet, revert func(m *mesh.Mesh) *mesh.Mesh)
	// ComputeConvexHull returns the convex hull of every kth on-surface
	// primitive's corner points (k = downsample).
	ComputeConvexHull(downsample int) (*mesh.Mesh, error)
	// Clip partitions the set by plane p into the primitives strictly (or,
	// for on-surface primitives, also straddling) on each side.
	Clip(p geom.Plane) (pos, neg PrimitiveSet)
	// ComputeClippedVolumes returns the volume on each side of p without
	// materializing the clipped sets.
	ComputeClippedVolumes(p geom.Plane) (volPos, volNeg float64)
	// SelectSurface returns a new set containing only the on-surface
	// primitives of this one.
	SelectSurface() PrimitiveSet
	// Intersect splits the corner points of every downsample-th on-surface
	// primitive by side of plane p into the two point lists used by the
	// approximate convex-hull path; primitives are not filtered by their
	// distance from p.
	Intersect(p geom.Plane, downsample int) (rightPts, leftPts []v3.Vec)
}
