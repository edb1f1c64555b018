// Package obj imports triangle meshes from on-disk formats, mirroring the
// teacher's obj package (obj.ImportSTL is the entry point every example
// program in this corpus starts from).
package obj

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

const binaryHeaderSize = 80

// ImportSTL reads an ASCII or binary STL file and returns an indexed point
// buffer and triangle list, welding vertices that are within eps of each
// other (binary STL repeats a vertex verbatim for every triangle that
// touches it, so welding is required before any topological operation,
// such as convex-hull construction, is meaningful).
func ImportSTL(path string, eps float64) ([]v3.Vec, [][3]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("obj: open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 1<<16)
	isASCII, err := looksLikeASCII(br)
	if err != nil {
		return nil, nil, err
	}

	var tris [][3]v3.Vec
	if isASCII {
		tris, err = readASCIISTL(br)
	} else {
		tris, err = readBinarySTL(br)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("obj: parse %s: %w", path, err)
	}
	pts, idx := weldTriangles(tris, eps)
	return pts, idx, nil
}

// looksLikeASCII peeks the first non-whitespace bytes: ASCII STL files
// begin with the literal "solid"; binary files generally don't. A binary
// file whose 80-byte header happens to start with it is taken for ASCII;
// no triangle-count-vs-file-size check is made.
func looksLikeASCII(br *bufio.Reader) (bool, error) {
	peek, err := br.Peek(5)
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.EqualFold(string(peek), "solid"), nil
}

func readASCIISTL(r io.Reader) ([][3]v3.Vec, error) {
	var tris [][3]v3.Vec
	scanner := newWordScanner(r)
	var cur [3]v3.Vec
	n := 0
	for scanner.Scan() {
		switch scanner.Word() {
		case "vertex":
			x, err1 := scanner.NextFloat()
			y, err2 := scanner.NextFloat()
			z, err3 := scanner.NextFloat()
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("malformed vertex")
			}
			if n < 3 {
				cur[n] = v3.Vec{X: x, Y: y, Z: z}
				n++
			}
		case "endfacet":
			if n == 3 {
				tris = append(tris, cur)
			}
			n = 0
		}
	}
	return tris, nil
}

func readBinarySTL(r io.Reader) ([][3]v3.Vec, error) {
	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	tris := make([][3]v3.Vec, 0, count)
	var rec struct {
		Normal [3]float32
		V      [3][3]float32
		Attr   uint16
	}
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		var t [3]v3.Vec
		for k, v := range rec.V {
			t[k] = v3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
		}
		tris = append(tris, t)
	}
	return tris, nil
}

// weldTriangles merges near-duplicate vertices into a shared point buffer
// via a coarse spatial hash keyed on eps-quantized coordinates.
func weldTriangles(tris [][3]v3.Vec, eps float64) ([]v3.Vec, [][3]int32) {
	if eps <= 0 {
		eps = 1e-6
	}
	type key [3]int64
	quantize := func(v v3.Vec) key {
		return key{
			int64(math.Round(v.X / eps)),
			int64(math.Round(v.Y / eps)),
			int64(math.Round(v.Z / eps)),
		}
	}
	index := make(map[key]int32)
	var pts []v3.Vec
	out := make([][3]int32, len(tris))
	for i, t := range tris {
		for k, v := range t {
			key := quantize(v)
			idx, ok := index[key]
			if !ok {
				idx = int32(len(pts))
				pts = append(pts, v)
				index[key] = idx
			}
			out[i][k] = idx
		}
	}
	return pts, out
}
