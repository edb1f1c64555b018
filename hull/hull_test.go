package hull

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

func cubePoints() []v3.Vec {
	var pts []v3.Vec
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				pts = append(pts, v3.Vec{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

func meshVolume(verts []v3.Vec, tris [][3]int) float64 {
	var sum float64
	for _, t := range tris {
		a, b, c := verts[t[0]], verts[t[1]], verts[t[2]]
		sum += a.Dot(b.Cross(c))
	}
	return math.Abs(sum) / 6
}

func TestProcessCube(t *testing.T) {
	h := NewIncrementalHull()
	h.AddPoints(cubePoints())
	res, err := h.Process(math.MaxInt32, 0)
	require.NoError(t, err)
	assert.Equal(t, OK, res)

	verts, tris := h.Mesh()
	assert.Len(t, verts, 8)
	assert.InDelta(t, 1.0, meshVolume(verts, tris), 1e-9)
}

func TestProcessCoplanarIsCoplanar(t *testing.T) {
	h := NewIncrementalHull()
	h.AddPoints([]v3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0.5, Y: 0.5, Z: 0},
	})
	res, err := h.Process(math.MaxInt32, 0)
	require.NoError(t, err)
	assert.Equal(t, Coplanar, res)
}

func TestProcessNotEnoughPoints(t *testing.T) {
	h := NewIncrementalHull()
	h.AddPoints([]v3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}})
	res, err := h.Process(math.MaxInt32, 0)
	require.NoError(t, err)
	assert.Equal(t, NotEnoughPoints, res)
}

func TestProcessWithInteriorPointIgnoresIt(t *testing.T) {
	pts := cubePoints()
	pts = append(pts, v3.Vec{X: 0.5, Y: 0.5, Z: 0.5})
	h := NewIncrementalHull()
	h.AddPoints(pts)
	res, err := h.Process(math.MaxInt32, 0)
	require.NoError(t, err)
	assert.Equal(t, OK, res)
	verts, _ := h.Mesh()
	assert.Len(t, verts, 8, "interior point must not become a hull vertex")
}

func TestSimplifyReducesVertexCount(t *testing.T) {
	// A cube with one extra near-coplanar bump point on a face, simplified
	// back down to 8 vertices.
	pts := cubePoints()
	pts = append(pts, v3.Vec{X: 0.5, Y: 0.5, Z: 1.001})
	verts, tris, res, err := Simplify(pts, 8, 0.02)
	require.NoError(t, err)
	assert.Equal(t, OK, res)
	assert.LessOrEqual(t, len(verts), 8)
	assert.NotEmpty(t, tris)
}

func TestProcessResultString(t *testing.T) {
	assert.Equal(t, "OK", OK.String())
	assert.Equal(t, "Coplanar", Coplanar.String())
	assert.Equal(t, "Degenerate", Degenerate.String())
	assert.Equal(t, "NotEnoughPoints", NotEnoughPoints.String())
}
