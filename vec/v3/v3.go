// Package v3 provides a 3D double-precision vector and the small set of
// operations the geometry, hull, and volume packages need.
package v3

import "math"

// Vec is a 3D vector or point with double-precision components.
type Vec struct {
	X, Y, Z float64
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec) Sub(b Vec) Vec {
	return Vec{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// MulScalar returns a * k.
func (a Vec) MulScalar(k float64) Vec {
	return Vec{a.X * k, a.Y * k, a.Z * k}
}

// DivScalar returns a / k.
func (a Vec) DivScalar(k float64) Vec {
	return Vec{a.X / k, a.Y / k, a.Z / k}
}

// AddScalar returns a with k added to every component.
func (a Vec) AddScalar(k float64) Vec {
	return Vec{a.X + k, a.Y + k, a.Z + k}
}

// Dot returns the dot product of a and b.
func (a Vec) Dot(b Vec) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean norm of a.
func (a Vec) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

// Length2 returns the squared Euclidean norm of a (avoids the sqrt).
func (a Vec) Length2() float64 {
	return a.Dot(a)
}

// Normalize returns a scaled to unit length. The zero vector is returned
// unchanged.
func (a Vec) Normalize() Vec {
	l := a.Length()
	if l == 0 {
		return a
	}
	return a.DivScalar(l)
}

// Min returns the component-wise minimum of a and b.
func (a Vec) Min(b Vec) Vec {
	return Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

// Max returns the component-wise maximum of a and b.
func (a Vec) Max(b Vec) Vec {
	return Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// MaxComponent returns the largest of X, Y, Z.
func (a Vec) MaxComponent() float64 {
	return math.Max(a.X, math.Max(a.Y, a.Z))
}

// MinComponent returns the smallest of X, Y, Z.
func (a Vec) MinComponent() float64 {
	return math.Min(a.X, math.Min(a.Y, a.Z))
}

// Ceil rounds every component up.
func (a Vec) Ceil() Vec {
	return Vec{math.Ceil(a.X), math.Ceil(a.Y), math.Ceil(a.Z)}
}

// Abs returns the component-wise absolute value.
func (a Vec) Abs() Vec {
	return Vec{math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)}
}

// Component returns the i'th component (0=X, 1=Y, 2=Z).
func (a Vec) Component(i int) float64 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

// Equals reports whether a and b are identical within tolerance eps.
func (a Vec) Equals(b Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}
