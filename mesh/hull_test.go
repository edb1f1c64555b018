package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

func cube(offset v3.Vec) []v3.Vec {
	var pts []v3.Vec
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				pts = append(pts, v3.Vec{X: x, Y: y, Z: z}.Add(offset))
			}
		}
	}
	return pts
}

func TestNewHull(t *testing.T) {
	m := unitCube()
	h := NewHull(m)
	assert.InDelta(t, 1.0, h.Volume, 1e-9)
	assert.InDelta(t, 0.5, h.Centroid.X, 1e-9)
}

func TestCombineHullsOfTwoAdjacentCubes(t *testing.T) {
	a, _, err := ConvexHull(cube(v3.Vec{}), 64, 0)
	require.NoError(t, err)
	b, _, err := ConvexHull(cube(v3.Vec{X: 1}), 64, 0)
	require.NoError(t, err)

	combined, err := CombineHulls(NewHull(a), NewHull(b))
	require.NoError(t, err)
	// The bounding hull of two adjacent unit cubes is a 2x1x1 box.
	assert.InDelta(t, 2.0, combined.Volume, 1e-9)
}

func TestConcavityIsZeroForExactHull(t *testing.T) {
	assert.Equal(t, 0.0, Concavity(1.0, 1.0, 1.0))
}

func TestConcavityScalesWithVolumeGap(t *testing.T) {
	c := Concavity(1.0, 1.2, 1.0)
	assert.InDelta(t, 0.2, c, 1e-9)
}

func TestConcavityZeroReferenceVolume(t *testing.T) {
	assert.Equal(t, 0.0, Concavity(1.0, 1.2, 0))
}
