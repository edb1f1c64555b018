package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadsy/vhacd/geom"
	v3 "github.com/deadsy/vhacd/vec/v3"
	"github.com/deadsy/vhacd/vec/v3i"
)

// cubeVoxelSet returns a 2x2x2 grid of unit voxels (all classified
// OnSurface, since every cell of a 2x2x2 grid touches the boundary).
func cubeVoxelSet() *VoxelSet {
	vs := &VoxelSet{Origin: v3.Vec{}, Scale: 1}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				vs.Voxels = append(vs.Voxels, Voxel{Coord: v3i.Vec{X: i, Y: j, Z: k}, Loc: OnSurface})
			}
		}
	}
	return vs
}

func TestVoxelSetVolume(t *testing.T) {
	vs := cubeVoxelSet()
	assert.InDelta(t, 8.0, vs.Volume(), 1e-12)
	assert.Equal(t, 8, vs.Count())
	assert.Equal(t, 8, vs.SurfaceCount())
	assert.Equal(t, 0, vs.InsideCount())
}

func TestVoxelSetClipSplitsByPlane(t *testing.T) {
	vs := cubeVoxelSet()
	p := geom.NewAxisPlane(geom.AxisX, 1, 0)
	posAny, negAny := vs.Clip(p)
	pos, neg := posAny.(*VoxelSet), negAny.(*VoxelSet)

	// Every voxel center falls strictly on one side (x in {0.5, 1.5}), so
	// the halves partition the set exactly.
	assert.Equal(t, 4, pos.Count())
	assert.Equal(t, 4, neg.Count())
	assert.Equal(t, vs.Count(), pos.Count()+neg.Count())
}

func TestVoxelSetComputeClippedVolumesSumsToTotal(t *testing.T) {
	vs := cubeVoxelSet()
	p := geom.NewAxisPlane(geom.AxisX, 1, 0)
	volPos, volNeg := vs.ComputeClippedVolumes(p)
	assert.InDelta(t, vs.Volume(), volPos+volNeg, 1e-9)
}

func TestVoxelSetSelectSurfaceExcludesInterior(t *testing.T) {
	vs := &VoxelSet{Origin: v3.Vec{}, Scale: 1}
	vs.Voxels = []Voxel{
		{Coord: v3i.Vec{X: 0, Y: 0, Z: 0}, Loc: OnSurface},
		{Coord: v3i.Vec{X: 1, Y: 1, Z: 1}, Loc: InsideSurface},
	}
	surf := vs.SelectSurface()
	assert.Equal(t, 1, surf.Count())
}

func TestVoxelSetComputeConvexHull(t *testing.T) {
	vs := cubeVoxelSet()
	m, err := vs.ComputeConvexHull(1)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Greater(t, m.Volume(), 0.0)
}

func TestVoxelSetIntersectBucketsByPlaneSide(t *testing.T) {
	vs := cubeVoxelSet()
	p := geom.NewAxisPlane(geom.AxisX, 1, 0)
	right, left := vs.Intersect(p, 1)
	assert.NotEmpty(t, right)
	assert.NotEmpty(t, left)
}

func TestVoxelSetPrincipalAxesCenteredOnCube(t *testing.T) {
	vs := cubeVoxelSet()
	center, axes, _ := vs.PrincipalAxes()
	assert.InDelta(t, 1.0, center.X, 1e-9)
	assert.InDelta(t, 1.0, center.Y, 1e-9)
	assert.InDelta(t, 1.0, center.Z, 1e-9)
	for _, a := range axes {
		assert.InDelta(t, 1.0, a.Length(), 1e-9)
	}
}

func TestVoxelSetAlignIsNoop(t *testing.T) {
	vs := cubeVoxelSet()
	aligned, revert := vs.AlignToPrincipalAxes()
	assert.Same(t, PrimitiveSet(vs), aligned)
	assert.Nil(t, revert(nil))
}
