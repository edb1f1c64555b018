package decomp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadsy/vhacd/volume"
	v3 "github.com/deadsy/vhacd/vec/v3"
	"github.com/deadsy/vhacd/vec/v3i"
)

func defaultParams() Params {
	return Params{
		Concavity:               0.0025,
		Alpha:                   0.05,
		Beta:                    0.05,
		PlaneDownsampling:       1,
		ConvexHullDownsampling:  1,
		ConvexHullApproximation: true,
		MaxVerticesPerHull:      64,
		Depth:                   16,
	}
}

// soloCube returns a 2x2x2 voxel block (every cell OnSurface), a shape whose
// convex hull exactly equals its own volume.
func soloCube(originX int) *volume.VoxelSet {
	vs := &volume.VoxelSet{Origin: v3.Vec{}, Scale: 1}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				vs.Voxels = append(vs.Voxels, volume.Voxel{
					Coord: v3i.Vec{X: originX + i, Y: j, Z: k},
					Loc:   volume.OnSurface,
				})
			}
		}
	}
	return vs
}

func TestDecomposeConvexCubeStaysWhole(t *testing.T) {
	vs := soloCube(0)
	result, err := Decompose(context.Background(), vs, defaultParams())
	require.NoError(t, err)
	require.Len(t, result.Hulls, 1)
	assert.InDelta(t, 8.0, result.Hulls[0].Volume, 1e-6)
}

func TestDecomposeDumbbellSplits(t *testing.T) {
	// Two separated 2x2x2 blocks: the combined convex hull spans the gap
	// between them, so the whole-shape concavity is large and a split is
	// forced; once cut apart, each half is itself an exact cube.
	vs := &volume.VoxelSet{Origin: v3.Vec{}, Scale: 1}
	vs.Voxels = append(vs.Voxels, soloCube(0).Voxels...)
	vs.Voxels = append(vs.Voxels, soloCube(6).Voxels...)

	result, err := Decompose(context.Background(), vs, defaultParams())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(result.Hulls), 2)

	var total float64
	for _, h := range result.Hulls {
		assert.Greater(t, h.Volume, 0.0)
		total += h.Volume
	}
	// Clipping never loses volume (on-surface voxels straddling a cut are
	// duplicated to keep each child's shell closed), so the terminal hulls
	// must cover at least the true total.
	assert.GreaterOrEqual(t, total, 16.0-1e-6)
}

func TestDecomposeCancelledContextReturnsPartialResult(t *testing.T) {
	vs := soloCube(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Decompose(ctx, vs, defaultParams())
	assert.Error(t, err)
	assert.NotEmpty(t, result.Hulls)
}

func TestDecomposeDegenerateRootReturnsEmptyResult(t *testing.T) {
	vs := &volume.VoxelSet{Origin: v3.Vec{}, Scale: 1}
	// A flat, coplanar sliver: ComputeConvexHull will fail to build a
	// non-degenerate hull from it.
	vs.Voxels = []volume.Voxel{{Coord: v3i.Vec{X: 0, Y: 0, Z: 0}, Loc: volume.OnSurface}}
	vs.Scale = 0

	result, err := Decompose(context.Background(), vs, defaultParams())
	require.NoError(t, err)
	assert.Empty(t, result.Hulls)
}
