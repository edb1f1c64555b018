// Package decomp drives the recursive plane-based subdivision that turns a
// single voxelized (or tetrahedralized) part into a list of near-convex
// parts: for each part on a work stack, search axis-aligned candidate
// planes, score them by a concavity/balance/symmetry cost, and either
// split the part into two children or call it terminal.
package decomp

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/deadsy/vhacd/geom"
	"github.com/deadsy/vhacd/hull"
	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
	"github.com/deadsy/vhacd/volume"
)

// Params holds the subset of the orchestrator's parameters the decomposer
// needs directly (the rest, such as resolution, are consumed before the
// decomposer ever sees the primitive set).
type Params struct {
	Concavity               float64
	Alpha                   float64
	Beta                    float64
	PlaneDownsampling       int
	ConvexHullDownsampling  int
	ConvexHullApproximation bool
	MaxVerticesPerHull      int
	Depth                   int
	Logger                  Logger
}

// Logger receives decomposer progress lines; it mirrors the orchestrator's
// sink so a caller driving Decompose directly (as the tests do) can still
// observe it.
type Logger interface {
	Logf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Logf(string, ...interface{}) {}

// Part is an owning handle to a PrimitiveSet plus its computed convex hull
// and volume. It lives on the decomposer's work stack until it is either
// pushed to results (terminal) or replaced by two children (split).
type Part struct {
	Prims    volume.PrimitiveSet
	Hull     *mesh.Hull
	Volume   float64
	MaxError float64
}

// Result is the outcome of a full decomposition run: the terminal parts'
// hulls, in the order they became terminal, plus the root hull's volume
// (V0), the normalizer every concavity score in this run was computed
// against and the value the merge stage must reuse for its own cost
// matrix to stay on the same scale.
type Result struct {
	Hulls []*mesh.Hull
	V0    float64
}

// Decompose repeatedly applies the ENTRY/SPLIT/TERMINAL state machine to a
// work stack seeded with root, until the stack empties, depth iterations
// have run, or ctx is cancelled.
func Decompose(ctx context.Context, root volume.PrimitiveSet, params Params) (Result, error) {
	if params.Logger == nil {
		params.Logger = nopLogger{}
	}
	if params.PlaneDownsampling < 1 {
		params.PlaneDownsampling = 1
	}
	if params.ConvexHullDownsampling < 1 {
		params.ConvexHullDownsampling = 1
	}
	if params.Depth < 1 {
		params.Depth = 1
	}

	rootHull, ok, err := computeHull(root, params)
	if err != nil {
		return Result{}, err
	}
	var result Result
	if !ok {
		// Degenerate root (coplanar/zero volume): nothing usable to
		// decompose or return.
		return result, nil
	}
	v0 := rootHull.Volume
	if v0 == 0 {
		v0 = 1
	}
	result.V0 = v0

	stack := []*Part{{Prims: root, Hull: rootHull, Volume: root.Volume()}}

	for iter := 0; len(stack) > 0 && iter < params.Depth; iter++ {
		select {
		case <-ctx.Done():
			// Flush whatever is left on the stack as terminal so the
			// caller still gets a (possibly coarser) full cover.
			for _, p := range stack {
				result.Hulls = append(result.Hulls, p.Hull)
			}
			return result, ctx.Err()
		default:
		}

		part := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		concavity := mesh.Concavity(part.Volume, part.Hull.Volume, v0)
		errBound := 1.01 * part.MaxError / v0
		if concavity <= params.Concavity || concavity <= errBound {
			result.Hulls = append(result.Hulls, part.Hull)
			continue
		}

		left, right, splitErr := split(ctx, part, params, v0)
		if splitErr != nil || left == nil || right == nil {
			// Couldn't find a usable split (degenerate candidate
			// geometry, or no room left to cut): fall back to terminal.
			result.Hulls = append(result.Hulls, part.Hull)
			continue
		}
		stack = append(stack, left, right)
	}

	for _, p := range stack {
		result.Hulls = append(result.Hulls, p.Hull)
	}
	return result, nil
}

func computeHull(prims volume.PrimitiveSet, params Params) (*mesh.Hull, bool, error) {
	m, err := prims.ComputeConvexHull(params.ConvexHullDownsampling)
	if err != nil {
		return nil, false, err
	}
	if m == nil || len(m.Triangles) == 0 {
		return nil, false, nil
	}
	return mesh.NewHull(m), true, nil
}

// candidate is one axis-aligned plane to score, carrying the grid step it
// was generated from (needed to refine its neighborhood) and a
// monotonically increasing index used as the tie-break.
type candidate struct {
	plane geom.Plane
	idx   int
	coord float64
	step  float64
}

// scored is a candidate plane together with its evaluated cost.
type scored struct {
	c     candidate
	total float64
}

func betterThan(a, b scored) bool {
	return a.total < b.total || (a.total == b.total && a.c.idx < b.c.idx)
}

// split runs the coarse-then-fine plane search, clips the part along the
// winning plane, reverts any principal-axis alignment on the children, and
// returns them as new Parts.
func split(ctx context.Context, part *Part, params Params, v0 float64) (*Part, *Part, error) {
	aligned, revert := part.Prims.AlignToPrincipalAxes()
	_, axes, eigen := aligned.PrincipalAxes()
	dir, w := volume.PreferredCuttingDirection(axes, eigen)

	min, max := aligned.Bounds()
	candidates := generateCandidates(min, max, aligned.CellSize(), params.PlaneDownsampling)
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	// The cost function's concavity term needs the hull of the part's
	// surface shell only (spec: "clip the part's surface-only primitive
	// set"); ComputeClippedVolumes still runs against the full set since
	// it needs the true enclosed volume, not just the shell's.
	surface := aligned.SelectSurface()

	best, err := search(ctx, aligned, surface, candidates, dir, w, params, v0)
	if err != nil {
		return nil, nil, err
	}
	if params.PlaneDownsampling > 1 || params.ConvexHullDownsampling > 1 {
		refined := refineCandidates(best.c, params.PlaneDownsampling)
		if len(refined) > 0 {
			if fine, ferr := search(ctx, aligned, surface, refined, dir, w, params, v0); ferr == nil && fine.total <= best.total {
				best = fine
			}
		}
	}

	posPrims, negPrims := aligned.Clip(best.c.plane)
	leftPart, leftErr := makePart(posPrims, revert, params)
	rightPart, rightErr := makePart(negPrims, revert, params)
	if leftErr != nil || rightErr != nil || leftPart == nil || rightPart == nil {
		return nil, nil, nil
	}
	return leftPart, rightPart, nil
}

func makePart(prims volume.PrimitiveSet, revert func(*mesh.Mesh) *mesh.Mesh, params Params) (*Part, error) {
	h, ok, err := computeHull(prims, params)
	if err != nil || !ok {
		return nil, err
	}
	h.Mesh = revert(h.Mesh)
	h.Volume = h.Mesh.Volume()
	h.Centroid = h.Mesh.Centroid()
	return &Part{Prims: prims, Hull: h, Volume: prims.Volume()}, nil
}

// generateCandidates builds every k-th grid plane on each axis spanning
// [min, max], k = downsampling, each tagged with a monotonically
// increasing index for the tie-break rule. cellSize is the primitive
// set's grid spacing, so the plane count scales with the voxelization
// resolution rather than with the mesh's world-unit extent.
func generateCandidates(min, max v3.Vec, cellSize float64, downsampling int) []candidate {
	var out []candidate
	idx := 0
	axes := []struct {
		axis geom.Axis
		lo   float64
		hi   float64
	}{
		{geom.AxisX, min.X, max.X},
		{geom.AxisY, min.Y, max.Y},
		{geom.AxisZ, min.Z, max.Z},
	}
	if cellSize <= 0 {
		cellSize = 1
	}
	for _, a := range axes {
		span := a.hi - a.lo
		if span <= 0 {
			continue
		}
		step := cellSize
		steps := int(math.Round(span / step))
		for i := 1; i < steps; i += downsampling {
			coord := a.lo + float64(i)*step
			out = append(out, candidate{
				plane: geom.NewAxisPlane(a.axis, coord, idx),
				idx:   idx,
				coord: coord,
				step:  step,
			})
			idx++
		}
	}
	return out
}

// refineCandidates generates the single-step neighborhood around best on
// its own axis, within ±downsampling grid steps.
func refineCandidates(best candidate, downsampling int) []candidate {
	if best.plane.Axis == geom.AxisNone {
		return nil
	}
	var out []candidate
	for d := -downsampling; d <= downsampling; d++ {
		if d == 0 {
			continue
		}
		coord := best.coord + float64(d)*best.step
		idx := best.idx + d
		out = append(out, candidate{
			plane: geom.NewAxisPlane(best.plane.Axis, coord, idx),
			idx:   idx,
			coord: coord,
			step:  best.step,
		})
	}
	return out
}

// search partitions candidates across a worker pool (grounded on
// render/march3.go's evalRoutines/evalProcessCh channel pattern), scores
// each in parallel, and reduces to the single best by the total/index
// tie-break rule — replacing the reference implementation's
// `#pragma omp critical` shared-state reduction with a per-worker local
// best plus one deterministic combine step.
func search(ctx context.Context, prims, surface volume.PrimitiveSet, candidates []candidate, dir v3.Vec, w float64, params Params, v0 float64) (scored, error) {
	jobs := make(chan candidate)

	type partial struct {
		best scored
		set  bool
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}
	results := make(chan partial, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local partial
			n := 0
			for c := range jobs {
				s := scoreCandidate(prims, surface, c, dir, w, params, v0)
				n++
				if !local.set || betterThan(s, local.best) {
					local.best = s
					local.set = true
				}
				if n%128 == 0 {
					params.Logger.Logf("decomp: evaluated %d candidate planes", n)
				}
			}
			results <- local
		}()
	}

	go func() {
		defer close(jobs)
		for _, c := range candidates {
			select {
			case <-ctx.Done():
				return
			case jobs <- c:
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var best scored
	set := false
	for r := range results {
		if !r.set {
			continue
		}
		if !set || betterThan(r.best, best) {
			best = r.best
			set = true
		}
	}
	if !set {
		if err := ctx.Err(); err != nil {
			return scored{}, err
		}
		return scored{}, nil
	}
	return best, nil
}

// scoreCandidate computes concavity + balance + symmetry for one candidate
// plane, per the decomposer's cost function. prims is the full primitive
// set (for the true clipped volumes) and surface is its on-surface-only
// subset (for the hull-approximation terms, per the spec's "clip the
// part's surface-only primitive set").
func scoreCandidate(prims, surface volume.PrimitiveSet, c candidate, dir v3.Vec, w float64, params Params, v0 float64) scored {
	volPos, volNeg := prims.ComputeClippedVolumes(c.plane)

	var chPos, chNeg float64
	if params.ConvexHullApproximation {
		rightPts, leftPts := surface.Intersect(c.plane, params.ConvexHullDownsampling)
		chPos = hullVolumeOf(rightPts)
		chNeg = hullVolumeOf(leftPts)
	} else {
		pos, neg := surface.Clip(c.plane)
		chPos = hullVolumeOfSet(pos, params.ConvexHullDownsampling)
		chNeg = hullVolumeOfSet(neg, params.ConvexHullDownsampling)
	}

	concavity := math.Abs(chPos-volPos)/v0 + math.Abs(chNeg-volNeg)/v0
	balance := params.Alpha * math.Abs(volPos-volNeg) / v0
	n := c.plane.Normal()
	symmetry := params.Beta * w * (n.X*dir.X + n.Y*dir.Y + n.Z*dir.Z)

	return scored{c: c, total: concavity + balance + symmetry}
}

func hullVolumeOf(pts []v3.Vec) float64 {
	if len(pts) < 4 {
		return 0
	}
	m, res, err := mesh.ConvexHull(pts, math.MaxInt32, 0)
	if err != nil || res != hull.OK || m == nil {
		return 0
	}
	return m.Volume()
}

func hullVolumeOfSet(s volume.PrimitiveSet, downsample int) float64 {
	m, err := s.ComputeConvexHull(downsample)
	if err != nil || m == nil {
		return 0
	}
	return m.Volume()
}
