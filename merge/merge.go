// Package merge implements the greedy hull-merging pass that enforces the
// final hull-count budget: given a list of hulls, repeatedly combine the
// pair with the lowest merge cost until either no pair is cheap enough or
// the count target is met.
package merge

import (
	"math"

	"github.com/deadsy/vhacd/mesh"
)

// Params controls when the merge loop stops.
type Params struct {
	// Gamma is the concavity threshold: once the cheapest remaining merge
	// costs at least Gamma, the loop stops early if the hull count is
	// already at or below MaxConvexHulls.
	Gamma float64
	// MaxConvexHulls is the final hull-count budget; the loop keeps
	// merging past Gamma if the count is still above this target.
	MaxConvexHulls int
}

// costMatrix is the strictly lower-triangular packed cost matrix over the
// current hull list, grounded directly on VHACD::MergeConvexHulls: entry
// (row, col), row > col, holds the merge cost of hulls[row] and
// hulls[col], stored packed row-major in a flat slice of size n(n-1)/2.
type costMatrix struct {
	n     int
	costs []float64
	hulls []*mesh.Hull
	v0    float64
}

func newCostMatrix(hulls []*mesh.Hull, v0 float64) *costMatrix {
	cm := &costMatrix{n: len(hulls), hulls: append([]*mesh.Hull(nil), hulls...), v0: v0}
	cm.costs = make([]float64, packedSize(cm.n))
	for row := 1; row < cm.n; row++ {
		for col := 0; col < row; col++ {
			cm.set(row, col, cm.computeCost(row, col))
		}
	}
	return cm
}

func packedSize(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// index maps (row, col), row > col, to its packed offset.
func index(row, col int) int {
	return row*(row-1)/2 + col
}

// unindex recovers (row, col) from a packed offset k, per the closed-form
// row = ceil((sqrt(1+8k)-1)/2).
func unindex(k int) (row, col int) {
	row = int(math.Ceil((math.Sqrt(1+8*float64(k)) - 1) / 2))
	for row*(row-1)/2 > k {
		row--
	}
	for (row+1)*row/2 <= k {
		row++
	}
	col = k - row*(row-1)/2
	if row <= col {
		panic("merge: corrupt packed index")
	}
	return row, col
}

func (cm *costMatrix) get(row, col int) float64 {
	if row < col {
		row, col = col, row
	}
	return cm.costs[index(row, col)]
}

func (cm *costMatrix) set(row, col int, v float64) {
	if row < col {
		row, col = col, row
	}
	cm.costs[index(row, col)] = v
}

// computeCost builds the combined hull of hulls[row] and hulls[col] (an
// expensive operation — the reason recomputation is scoped to exactly the
// affected row/column on every merge) and returns its concavity cost.
func (cm *costMatrix) computeCost(row, col int) float64 {
	combined, err := mesh.CombineHulls(cm.hulls[row], cm.hulls[col])
	if err != nil || combined == nil || combined.Volume == 0 {
		return math.Inf(1)
	}
	trueVol := cm.hulls[row].Volume + cm.hulls[col].Volume
	return mesh.Concavity(trueVol, combined.Volume, cm.v0)
}

// findMinimum does the linear scan the original FindMinimumElement does:
// the globally smallest entry, ties broken by smaller (row, col)
// lexicographically with row > col.
func (cm *costMatrix) findMinimum() (row, col int, cost float64) {
	cost = math.Inf(1)
	row, col = -1, -1
	for k, v := range cm.costs {
		r, c := unindex(k)
		if r <= c {
			panic("merge: packed index recovered row <= col")
		}
		if v < cost || (v == cost && (r < row || (r == row && c < col))) {
			cost, row, col = v, r, c
		}
	}
	return
}

// removeLast swaps the last hull into slot idx and shrinks the matrix by
// one, compacting the packed row/column storage to match — the Go
// equivalent of the original's swap-with-last-then-pop-back.
func (cm *costMatrix) removeLast(idx int) {
	last := cm.n - 1
	if idx != last {
		cm.hulls[idx] = cm.hulls[last]
		for c := 0; c < idx; c++ {
			cm.set(idx, c, cm.get(last, c))
		}
		for r := idx + 1; r < last; r++ {
			cm.set(r, idx, cm.get(last, r))
		}
	}
	cm.hulls = cm.hulls[:last]
	cm.n = last
	cm.costs = cm.costs[:packedSize(cm.n)]
}

// recomputeRow recomputes every cost entry touching idx against the
// current surviving hull list.
func (cm *costMatrix) recomputeRow(idx int) {
	for other := 0; other < cm.n; other++ {
		if other == idx {
			continue
		}
		cm.set(idx, other, cm.computeCost(maxInt(idx, other), minInt(idx, other)))
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Merge greedily combines the cheapest remaining pair of hulls until the
// minimum merge cost is at or above params.Gamma and the hull count is
// already at or below params.MaxConvexHulls. v0 is the normalizer every
// cost in the matrix is divided by: the volume of the decomposition's
// first-iteration root hull, the same V0 the decomposer's own concavity
// scores were computed against, not a scale re-derived from this hull
// list.
func Merge(hulls []*mesh.Hull, v0 float64, params Params) []*mesh.Hull {
	if len(hulls) < 2 {
		return hulls
	}
	if v0 == 0 {
		v0 = 1
	}

	cm := newCostMatrix(hulls, v0)
	for cm.n > 1 {
		row, col, cost := cm.findMinimum()
		if row < 0 {
			break
		}
		if cost >= params.Gamma && cm.n <= params.MaxConvexHulls {
			break
		}
		if math.IsInf(cost, 1) {
			// Every remaining pair is unmergeable; stop rather than
			// spin forever trying to satisfy MaxConvexHulls.
			break
		}
		combined, err := mesh.CombineHulls(cm.hulls[row], cm.hulls[col])
		if err != nil || combined == nil {
			// Treat an unmergeable pair as permanently expensive and
			// keep going; avoids an infinite loop on a single bad pair.
			cm.set(row, col, math.Inf(1))
			continue
		}
		cm.hulls[col] = combined
		cm.removeLast(row)
		cm.recomputeRow(col)
	}
	return cm.hulls
}
