/*

Read an STL, decompose it into approximately convex hulls, write the
result as one STL per hull, a single 3MF, or a debug DXF cross-section.

*/

package main

import (
	"context"
	"flag"
	"log"

	"github.com/deadsy/vhacd"
	"github.com/deadsy/vhacd/geom"
	"github.com/deadsy/vhacd/mesh"
	"github.com/deadsy/vhacd/obj"
	"github.com/deadsy/vhacd/render"
)

type logAdapter struct{}

func (logAdapter) Logf(format string, args ...interface{}) { log.Printf(format, args...) }

func main() {
	input := flag.String("in", "", "input STL path")
	outPrefix := flag.String("out", "hull", "output path prefix")
	format := flag.String("format", "stl", "output format: stl, 3mf or dxf")
	maxHulls := flag.Int("hulls", 32, "maximum number of output hulls")
	resolution := flag.Int("resolution", 100000, "voxel grid resolution")
	concavity := flag.Float64("concavity", 0.0025, "split-stopping concavity threshold")
	sliceZ := flag.Float64("slice-z", 0, "z coordinate of the debug cross-section (format=dxf only)")
	flag.Parse()

	if *input == "" {
		log.Fatal("vhacd-decompose: -in is required")
	}

	if err := run(*input, *outPrefix, *format, *maxHulls, *resolution, *concavity, *sliceZ); err != nil {
		log.Fatalf("error: %s", err)
	}
}

func run(input, outPrefix, format string, maxHulls, resolution int, concavity, sliceZ float64) error {
	points, triangles, err := obj.ImportSTL(input, 1e-6)
	if err != nil {
		return err
	}

	params := vhacd.DefaultParams().
		WithMaxConvexHulls(maxHulls).
		WithResolution(resolution).
		WithConcavity(concavity).
		WithLogger(logAdapter{})

	result, err := vhacd.Compute(context.Background(), points, triangles, params)
	if err != nil {
		return err
	}
	log.Printf("vhacd-decompose: produced %d hulls", len(result.Hulls))

	hulls := make([]*mesh.Mesh, len(result.Hulls))
	for i, h := range result.Hulls {
		hulls[i] = mesh.New(h.Points, h.Triangles)
	}

	switch format {
	case "3mf":
		return render.To3MF(hulls, outPrefix+".3mf")
	case "dxf":
		p := geom.NewAxisPlane(geom.AxisZ, sliceZ, 0)
		return render.RenderDXF(hulls, p, outPrefix+".dxf")
	default:
		return render.ToSTLs(hulls, outPrefix)
	}
}
