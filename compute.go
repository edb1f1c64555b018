// Package vhacd orchestrates the approximate convex decomposition
// pipeline: voxelize the input mesh, recursively split it into near-convex
// parts, merge parts back together under a concavity budget, and simplify
// every resulting hull to a target vertex count.
package vhacd

import (
	"context"
	"fmt"

	"github.com/deadsy/vhacd/decomp"
	"github.com/deadsy/vhacd/hull"
	"github.com/deadsy/vhacd/merge"
	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
	"github.com/deadsy/vhacd/volume"
)

// Result is the ordered list of convex hulls the pipeline produced.
type Result struct {
	Hulls []ResultHull
}

// ResultHull is one output convex part.
type ResultHull struct {
	Points    []v3.Vec
	Triangles [][3]int
	Centroid  v3.Vec
	Volume    float64
}

// Compute runs the full seven-stage pipeline over an input mesh (points
// plus triangle indices) and returns its approximate convex decomposition.
//
// An empty input, or a context cancelled before the merge stage finishes,
// returns a zero-value Result with a nil error — only host misuse
// (mismatched buffers) is reported as an error, per the error-handling
// design.
func Compute(ctx context.Context, points []v3.Vec, triangles [][3]int32, params Params) (Result, error) {
	if err := validateInput(points, triangles); err != nil {
		return Result{}, err
	}
	params = params.clamp()
	if len(points) == 0 || len(triangles) == 0 {
		return Result{}, nil
	}

	params.Logger.Logf("vhacd: starting decomposition (%d points, %d triangles)", len(points), len(triangles))
	params.Callback.OnProgress("voxelize", 0)

	prims, err := buildPrimitiveSet(points, triangles, params)
	if err != nil {
		params.Logger.Logf("vhacd: voxelization failed: %v", err)
		return Result{}, nil
	}
	select {
	case <-ctx.Done():
		return Result{}, nil
	default:
	}
	params.Callback.OnProgress("voxelize", 5)

	revert := func(m *mesh.Mesh) *mesh.Mesh { return m }
	if params.PCA {
		prims, revert = prims.AlignToPrincipalAxes()
	}
	params.Callback.OnProgress("align", 15)

	decompResult, err := decomp.Decompose(ctx, prims, decomp.Params{
		Concavity:               params.Concavity,
		Alpha:                   params.Alpha,
		Beta:                    params.Beta,
		PlaneDownsampling:       params.PlaneDownsampling,
		ConvexHullDownsampling:  params.ConvexHullDownsampling,
		ConvexHullApproximation: params.ConvexHullApproximation,
		MaxVerticesPerHull:      params.MaxVerticesPerHull,
		Depth:                   params.Depth,
		Logger:                  loggerAdapter{params.Logger},
	})
	if err != nil || ctx.Err() != nil {
		params.Logger.Logf("vhacd: decomposition stopped early: %v", err)
		return Result{}, nil
	}
	for i, h := range decompResult.Hulls {
		decompResult.Hulls[i] = mesh.NewHull(revert(h.Mesh))
	}
	params.Callback.OnProgress("decompose", 90)

	merged := merge.Merge(decompResult.Hulls, decompResult.V0, merge.Params{
		Gamma:          params.Gamma,
		MaxConvexHulls: params.MaxConvexHulls,
	})
	if ctx.Err() != nil {
		return Result{}, nil
	}
	params.Callback.OnProgress("merge", 95)

	final := make([]ResultHull, 0, len(merged))
	for _, h := range merged {
		verts, tris, _, serr := hull.Simplify(h.Mesh.Points, params.MaxVerticesPerHull, params.MinVolumePerHull)
		if serr != nil || verts == nil {
			// Simplification failed on an already-tiny or degenerate
			// hull: ship it unsimplified rather than dropping it.
			final = append(final, ResultHull{
				Points:    h.Mesh.Points,
				Triangles: h.Mesh.Triangles,
				Centroid:  h.Centroid,
				Volume:    h.Volume,
			})
			continue
		}
		simplified := mesh.New(verts, tris)
		final = append(final, ResultHull{
			Points:    simplified.Points,
			Triangles: simplified.Triangles,
			Centroid:  simplified.Centroid(),
			Volume:    simplified.Volume(),
		})
	}
	params.Callback.OnProgress("simplify", 99)
	params.Callback.OnProgress("done", 100)
	params.Logger.Logf("vhacd: decomposition complete: %d hulls", len(final))

	return Result{Hulls: final}, nil
}

func validateInput(points []v3.Vec, triangles [][3]int32) error {
	for i, t := range triangles {
		for _, idx := range t {
			if idx < 0 || int(idx) >= len(points) {
				return fmt.Errorf("vhacd: triangle %d references out-of-range point index %d (have %d points)", i, idx, len(points))
			}
		}
	}
	return nil
}

func buildPrimitiveSet(points []v3.Vec, triangles [][3]int32, params Params) (volume.PrimitiveSet, error) {
	switch params.Mode {
	case ModeTetrahedron:
		return volume.Tetrahedralize(points, triangles, params.Resolution), nil
	default:
		return volume.Voxelize(points, triangles, params.Resolution), nil
	}
}

// loggerAdapter lets decomp.Logger (defined independently to avoid an
// import cycle back into the root package) share this package's Logger
// implementations.
type loggerAdapter struct{ l Logger }

func (a loggerAdapter) Logf(format string, args ...interface{}) { a.l.Logf(format, args...) }
