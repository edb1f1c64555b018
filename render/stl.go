package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

const binaryHeaderSize = 80

// ToSTL writes a single hull mesh to path as a binary STL file, in the
// teacher's writeFE/writeVertices idiom: a plain synchronous writer rather
// than a channel consumer, since a decomposition's hull count is small
// enough that per-hull parallel writers would add overhead without benefit.
func ToSTL(m *mesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 1<<16)
	var header [binaryHeaderSize]byte
	copy(header[:], "vhacd decomposition output")
	if _, err := w.Write(header[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return err
	}
	for _, t := range m.Triangles {
		a, b, c := m.Points[t[0]], m.Points[t[1]], m.Points[t[2]]
		n := triangleNormal(a, b, c)
		if err := writeSTLTriangle(w, n, a, b, c); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ToSTLs writes one binary STL file per hull, suffixed by its index —
// the shape a caller wants when downstream tooling (physics engines,
// collision baking) expects one convex part per file.
func ToSTLs(hulls []*mesh.Mesh, pathPrefix string) error {
	for i, h := range hulls {
		path := fmt.Sprintf("%s-%03d.stl", pathPrefix, i)
		if err := ToSTL(h, path); err != nil {
			return err
		}
	}
	return nil
}

func writeSTLTriangle(w *bufio.Writer, n, a, b, c v3.Vec) error {
	vals := []float32{
		float32(n.X), float32(n.Y), float32(n.Z),
		float32(a.X), float32(a.Y), float32(a.Z),
		float32(b.X), float32(b.Y), float32(b.Z),
		float32(c.X), float32(c.Y), float32(c.Z),
	}
	for _, v := range vals {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, uint16(0))
}

func triangleNormal(a, b, c v3.Vec) v3.Vec {
	n := b.Sub(a).Cross(c.Sub(a))
	l := n.Length()
	if l == 0 {
		return n
	}
	return n.DivScalar(l)
}
