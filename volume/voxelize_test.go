package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

// unitCube returns a closed, consistently outward-wound triangulation of the
// [0,1]^3 cube (the same triangulation as the mesh package's unexported
// test helper unitCube, which is not reachable from here).
func unitCube() ([]v3.Vec, [][3]int32) {
	pts := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	tris := [][3]int32{
		{0, 3, 2}, {0, 2, 1},
		{4, 5, 6}, {4, 6, 7},
		{0, 1, 5}, {0, 5, 4},
		{3, 7, 6}, {3, 6, 2},
		{1, 2, 6}, {1, 6, 5},
		{0, 4, 7}, {0, 7, 3},
	}
	return pts, tris
}

func TestVoxelizeUnitCubeVolume(t *testing.T) {
	pts, tris := unitCube()
	vs := Voxelize(pts, tris, 8000)

	assert.Greater(t, vs.Count(), 0)
	assert.Greater(t, vs.SurfaceCount(), 0)
	// Coarse grid rasterization can't hit 1.0 exactly; it should be in the
	// right ballpark for a unit-volume input.
	assert.InDelta(t, 1.0, vs.Volume(), 0.5)
}

func TestVoxelizeClassifiesInteriorVoxels(t *testing.T) {
	pts, tris := unitCube()
	vs := Voxelize(pts, tris, 30000)

	assert.Greater(t, vs.InsideCount(), 0, "a 30000-resolution unit cube should have interior voxels")
	assert.Equal(t, vs.Count(), vs.SurfaceCount()+vs.InsideCount())
}

func TestVoxelizeEmptyInput(t *testing.T) {
	vs := Voxelize(nil, nil, 1000)
	assert.Equal(t, 0, vs.Count())
}

func TestVoxelizeDefaultsResolutionWhenInvalid(t *testing.T) {
	pts, tris := unitCube()
	vs := Voxelize(pts, tris, 0)
	assert.Greater(t, vs.Count(), 0)
}
