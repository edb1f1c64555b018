package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

func TestOrient3DSign(t *testing.T) {
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 0, Y: 1, Z: 0}
	above := v3.Vec{X: 0, Y: 0, Z: 1}
	below := v3.Vec{X: 0, Y: 0, Z: -1}

	assert.Equal(t, 1, Orient3D(a, b, c, above, 10))
	assert.Equal(t, -1, Orient3D(a, b, c, below, 10))
}

func TestOrient3DCoplanarIsZero(t *testing.T) {
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 0, Y: 1, Z: 0}
	d := v3.Vec{X: 1, Y: 1, Z: 0}
	assert.Equal(t, 0, Orient3D(a, b, c, d, 10))
}

func TestOrient3DConsistentUnderCyclicPermutation(t *testing.T) {
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 0, Y: 1, Z: 0}
	d := v3.Vec{X: 0, Y: 0, Z: 1}
	s1 := Orient3D(a, b, c, d, 10)
	s2 := Orient3D(b, c, a, d, 10)
	s3 := Orient3D(c, a, b, d, 10)
	assert.Equal(t, s1, s2)
	assert.Equal(t, s1, s3)
}

func TestTriangleAreaAndNormal(t *testing.T) {
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 0, Y: 1, Z: 0}
	assert.InDelta(t, 0.5, TriangleArea(a, b, c), 1e-12)
	n := TriangleNormal(a, b, c)
	assert.Equal(t, v3.Vec{X: 0, Y: 0, Z: 1}, n)
}

func TestTetVolume(t *testing.T) {
	a := v3.Vec{X: 0, Y: 0, Z: 0}
	b := v3.Vec{X: 1, Y: 0, Z: 0}
	c := v3.Vec{X: 0, Y: 1, Z: 0}
	d := v3.Vec{X: 0, Y: 0, Z: 1}
	assert.InDelta(t, 1.0/6.0, TetVolume(a, b, c, d), 1e-12)
}

func TestPlaneEvalAndSide(t *testing.T) {
	p := NewAxisPlane(AxisX, 2, 0)
	assert.Equal(t, v3.Vec{X: 1}, p.Normal())
	assert.Equal(t, 1.0, p.Eval(v3.Vec{X: 3}))
	assert.Equal(t, -1.0, p.Eval(v3.Vec{X: 1}))
	assert.Equal(t, 1, p.Side(v3.Vec{X: 3}, 1e-9))
	assert.Equal(t, -1, p.Side(v3.Vec{X: 1}, 1e-9))
	assert.Equal(t, 0, p.Side(v3.Vec{X: 2}, 1e-9))
}

func TestBoundsDiagonal(t *testing.T) {
	pts := []v3.Vec{{X: 0, Y: 0, Z: 0}, {X: 3, Y: 4, Z: 0}}
	assert.InDelta(t, 5.0, BoundsDiagonal(pts), 1e-12)
}
