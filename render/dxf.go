package render

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/deadsy/vhacd/geom"
	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

// RenderDXF writes a debug cross-section of every hull, sliced by plane p,
// to a DXF drawing: one layer per hull, its cut polyline as a sequence of
// LINE entities. Grounded on the teacher's per-subsystem render.RenderDXF
// debug dumps (render/march3fe.go uses the same "one file, one layer per
// part" shape for finite-element layers).
func RenderDXF(hulls []*mesh.Mesh, p geom.Plane, path string) error {
	d := dxf.NewDrawing()
	for i, h := range hulls {
		layer := fmt.Sprintf("hull-%03d", i)
		d.AddLayer(layer, dxf.DefaultColor, drawing.DASHED, true)
		loop := sliceLoop(h, p)
		for k := 0; k < len(loop); k++ {
			a := loop[k]
			b := loop[(k+1)%len(loop)]
			d.ChangeLayer(layer)
			d.Line(a.X, a.Y, 0, b.X, b.Y, 0)
		}
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("render: save dxf %s: %w", path, err)
	}
	return nil
}

// sliceLoop collects, in no particular cyclic order, the 2D projection
// (dropping the component aligned with p's normal) of every edge-plane
// intersection point of h near p — a coarse debug visualization, not a
// guaranteed closed loop.
func sliceLoop(h *mesh.Mesh, p geom.Plane) []geom2D {
	var out []geom2D
	seen := map[[2]int]bool{}
	for _, t := range h.Triangles {
		for k := 0; k < 3; k++ {
			i, j := t[k], t[(k+1)%3]
			key := [2]int{i, j}
			if i > j {
				key = [2]int{j, i}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			a, b := h.Points[i], h.Points[j]
			sa, sb := p.Eval(a), p.Eval(b)
			if (sa >= 0) == (sb >= 0) {
				continue
			}
			frac := sa / (sa - sb)
			cut := a.Add(b.Sub(a).MulScalar(frac))
			out = append(out, project(cut, p))
		}
	}
	return out
}

type geom2D struct{ X, Y float64 }

// project drops the plane normal's dominant axis to get a 2D coordinate
// suitable for a flat DXF cross-section.
func project(v v3.Vec, p geom.Plane) geom2D {
	n := p.Normal()
	if abs(n.Z) >= abs(n.X) && abs(n.Z) >= abs(n.Y) {
		return geom2D{v.X, v.Y}
	}
	if abs(n.Y) >= abs(n.X) {
		return geom2D{v.X, v.Z}
	}
	return geom2D{v.Y, v.Z}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
