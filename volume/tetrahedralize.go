package volume

import v3 "github.com/deadsy/vhacd/vec/v3"

// kuhnTets lists the Kuhn triangulation of a unit cube into 6 tetrahedra,
// each entry a set of 4 corner indices into VoxelSet.Corners' ordering
// (dx,dy,dz each in {0,1}, flattened as dx*4+dy*2+dz). This split is valid
// for every cube without needing a parity-dependent diagonal choice,
// unlike the classic 5-tet decomposition.
var kuhnTets = [6][4]int{
	{0, 1, 3, 7},
	{0, 1, 5, 7},
	{0, 4, 5, 7},
	{0, 2, 3, 7},
	{0, 2, 6, 7},
	{0, 4, 6, 7},
}

// Tetrahedralize builds a TetrahedronSet by voxelizing the mesh at the
// given resolution and splitting every voxel cube into 6 tetrahedra via
// the Kuhn triangulation, grounded on the teacher's uniform-grid finite-
// element mesher (render.MarchingCubesFEUniform.RenderTet4): a
// tetrahedral mesh over a bounding volume, built cube-by-cube, rather than
// a boundary-conforming Delaunay tetrahedralization.
func Tetrahedralize(points []v3.Vec, triangles [][3]int32, resolution int) *TetrahedronSet {
	vs := Voxelize(points, triangles, resolution)
	out := &TetrahedronSet{Tets: make([]Tetrahedron, 0, len(vs.Voxels)*6), Scale: vs.Scale}
	for _, vx := range vs.Voxels {
		corners := vs.Corners(vx)
		for _, tet := range kuhnTets {
			out.Tets = append(out.Tets, Tetrahedron{
				V:   [4]v3.Vec{corners[tet[0]], corners[tet[1]], corners[tet[2]], corners[tet[3]]},
				Loc: vx.Loc,
			})
		}
	}
	return out
}
