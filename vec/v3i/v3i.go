// Package v3i provides an integer 3D vector used for voxel grid indices and
// layer/step counts.
package v3i

import v3 "github.com/deadsy/vhacd/vec/v3"

// Vec is a 3D vector of ints, used for voxel coordinates and grid step counts.
type Vec struct {
	X, Y, Z int
}

// Add returns a + b.
func (a Vec) Add(b Vec) Vec {
	return Vec{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// ToV3 converts to a double-precision vector.
func (a Vec) ToV3() v3.Vec {
	return v3.Vec{X: float64(a.X), Y: float64(a.Y), Z: float64(a.Z)}
}

// Packed packs X, Y, Z into three int16s; Vec itself holds ints.
func (a Vec) Packed() [3]int16 {
	return [3]int16{int16(a.X), int16(a.Y), int16(a.Z)}
}

// FromPacked unpacks a voxel coordinate triple.
func FromPacked(p [3]int16) Vec {
	return Vec{int(p[0]), int(p[1]), int(p[2])}
}
