package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

// cubeHull returns the convex hull of a unit cube translated by offset.
func cubeHull(offset v3.Vec) *mesh.Hull {
	pts := []v3.Vec{
		{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
	}
	for i := range pts {
		pts[i] = pts[i].Add(offset)
	}
	m, _, err := mesh.ConvexHull(pts, 64, 0)
	if err != nil {
		panic(err)
	}
	return mesh.NewHull(m)
}

func TestIndexUnindexRoundTrip(t *testing.T) {
	for n := 2; n <= 12; n++ {
		for row := 1; row < n; row++ {
			for col := 0; col < row; col++ {
				k := index(row, col)
				r, c := unindex(k)
				assert.Equal(t, row, r, "n=%d row=%d col=%d", n, row, col)
				assert.Equal(t, col, c, "n=%d row=%d col=%d", n, row, col)
			}
		}
	}
}

func TestMergeAdjacentHullsDownToTarget(t *testing.T) {
	hulls := []*mesh.Hull{
		cubeHull(v3.Vec{X: 0}),
		cubeHull(v3.Vec{X: 1}),
		cubeHull(v3.Vec{X: 2}),
		cubeHull(v3.Vec{X: 3}),
	}
	merged := Merge(hulls, 1.0, Params{Gamma: 1.0, MaxConvexHulls: 2})
	assert.LessOrEqual(t, len(merged), 2)
	assert.GreaterOrEqual(t, len(merged), 1)
	for _, h := range merged {
		assert.Greater(t, h.Volume, 0.0)
	}
}

func TestMergeStopsWhenAlreadyAtBudget(t *testing.T) {
	hulls := []*mesh.Hull{
		cubeHull(v3.Vec{X: 0}),
		cubeHull(v3.Vec{X: 100}),
	}
	merged := Merge(hulls, 1.0, Params{Gamma: 0.001, MaxConvexHulls: 2})
	assert.Len(t, merged, 2)
}

func TestMergeSingleHullIsNoop(t *testing.T) {
	hulls := []*mesh.Hull{cubeHull(v3.Vec{})}
	merged := Merge(hulls, 1.0, Params{Gamma: 1.0, MaxConvexHulls: 1})
	assert.Len(t, merged, 1)
	assert.Same(t, hulls[0], merged[0])
}

func TestMergeCombinesAdjacentIntoSingleBoundingHull(t *testing.T) {
	hulls := []*mesh.Hull{
		cubeHull(v3.Vec{X: 0}),
		cubeHull(v3.Vec{X: 1}),
	}
	merged := Merge(hulls, 1.0, Params{Gamma: 1.0, MaxConvexHulls: 1})
	assert.Len(t, merged, 1)
	assert.InDelta(t, 2.0, merged[0].Volume, 1e-9)
}
