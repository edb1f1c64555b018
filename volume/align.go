package volume

import (
	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

// PrincipalAxes diagonalizes the inertia tensor of the voxel set's centers.
func (v *VoxelSet) PrincipalAxes() (v3.Vec, [3]v3.Vec, v3.Vec) {
	pts := make([]v3.Vec, len(v.Voxels))
	mass := make([]float64, len(v.Voxels))
	for i, vx := range v.Voxels {
		pts[i] = v.Center(vx)
		mass[i] = 1
	}
	return principalAxes(pts, mass)
}

// AlignToPrincipalAxes is a no-op for VoxelSet: rotating a regular voxel
// grid off-axis would require re-rasterizing it (the grid only has meaning
// axis-aligned), which the voxel pipeline does not do. PCA alignment is
// fully supported by TetrahedronSet (see TetrahedronSet.AlignToPrincipalAxes);
// the voxel pipeline still computes principal axes (above) to drive the
// cost function's symmetry term even when it cannot re-grid to them. See
// DESIGN.md for this decision.
func (v *VoxelSet) AlignToPrincipalAxes() (PrimitiveSet, func(m *mesh.Mesh) *mesh.Mesh) {
	return v, func(m *mesh.Mesh) *mesh.Mesh { return m }
}
