package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSub(t *testing.T) {
	a := Vec{1, 2, 3}
	b := Vec{4, 5, 6}
	assert.Equal(t, Vec{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec{-3, -3, -3}, a.Sub(b))
}

func TestDotCross(t *testing.T) {
	x := Vec{1, 0, 0}
	y := Vec{0, 1, 0}
	assert.Equal(t, 0.0, x.Dot(y))
	assert.Equal(t, Vec{0, 0, 1}, x.Cross(y))
}

func TestLength(t *testing.T) {
	v := Vec{3, 4, 0}
	assert.Equal(t, 25.0, v.Length2())
	assert.Equal(t, 5.0, v.Length())
}

func TestNormalize(t *testing.T) {
	v := Vec{3, 4, 0}.Normalize()
	assert.InDelta(t, 1.0, v.Length(), 1e-12)

	zero := Vec{}.Normalize()
	assert.Equal(t, Vec{}, zero)
}

func TestMinMax(t *testing.T) {
	a := Vec{1, 5, -1}
	b := Vec{3, 2, 4}
	assert.Equal(t, Vec{1, 2, -1}, a.Min(b))
	assert.Equal(t, Vec{3, 5, 4}, a.Max(b))
	assert.Equal(t, 5.0, a.MaxComponent())
	assert.Equal(t, -1.0, a.MinComponent())
}

func TestComponent(t *testing.T) {
	v := Vec{1, 2, 3}
	assert.Equal(t, 1.0, v.Component(0))
	assert.Equal(t, 2.0, v.Component(1))
	assert.Equal(t, 3.0, v.Component(2))
}

func TestEquals(t *testing.T) {
	a := Vec{1, 1, 1}
	b := Vec{1.0000001, 1, 1}
	assert.True(t, a.Equals(b, 1e-6))
	assert.False(t, a.Equals(b, 1e-9))
}
