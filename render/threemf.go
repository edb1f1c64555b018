package render

import (
	"fmt"
	"os"

	"github.com/hpinc/go3mf"

	"github.com/deadsy/vhacd/mesh"
)

// To3MF writes every hull as a separate build object in one 3MF package,
// the format downstream physics/slicer tooling expects when a decomposition
// result needs to travel as a single file instead of one STL per hull.
func To3MF(hulls []*mesh.Mesh, path string) error {
	model := &go3mf.Model{Units: go3mf.UnitMillimeter}

	for i, h := range hulls {
		obj := &go3mf.Object{
			ID:   uint32(i + 1),
			Type: go3mf.ObjectTypeModel,
			Mesh: &go3mf.Mesh{},
		}
		for _, p := range h.Points {
			obj.Mesh.Vertices.Vertex = append(obj.Mesh.Vertices.Vertex, go3mf.Point3D{
				float32(p.X), float32(p.Y), float32(p.Z),
			})
		}
		for _, t := range h.Triangles {
			obj.Mesh.Triangles.Triangle = append(obj.Mesh.Triangles.Triangle, go3mf.Triangle{
				V1: uint32(t[0]), V2: uint32(t[1]), V3: uint32(t[2]),
			})
		}
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()

	enc := go3mf.NewEncoder(f)
	if err := enc.Encode(model); err != nil {
		return fmt.Errorf("render: encode 3mf: %w", err)
	}
	return nil
}
