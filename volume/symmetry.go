package volume

import v3 "github.com/deadsy/vhacd/vec/v3"

// PreferredCuttingDirection exposes preferredCuttingDirection to other
// packages (the decomposer's cost function needs it for the symmetry
// term).
func PreferredCuttingDirection(axes [3]v3.Vec, eigen v3.Vec) (v3.Vec, float64) {
	return preferredCuttingDirection(axes, eigen)
}
