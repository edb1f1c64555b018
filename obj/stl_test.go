package obj

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/deadsy/vhacd/vec/v3"
)

const asciiTriangle = `solid test
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 1 0 0
    vertex 0 1 0
  endloop
endfacet
endsolid test
`

func TestReadASCIISTLSingleTriangle(t *testing.T) {
	tris, err := readASCIISTL(strings.NewReader(asciiTriangle))
	require.NoError(t, err)
	require.Len(t, tris, 1)
	assert.Equal(t, v3.Vec{X: 0, Y: 0, Z: 0}, tris[0][0])
	assert.Equal(t, v3.Vec{X: 1, Y: 0, Z: 0}, tris[0][1])
	assert.Equal(t, v3.Vec{X: 0, Y: 1, Z: 0}, tris[0][2])
}

func TestWeldTrianglesMergesSharedVertices(t *testing.T) {
	tris := [][3]v3.Vec{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
	}
	pts, idx := weldTriangles(tris, 1e-6)
	assert.Len(t, pts, 4, "the shared edge's two vertices should be welded to one index each")
	assert.Equal(t, idx[0][1], idx[1][0], "vertex (1,0,0) shared by both triangles should share an index")
	assert.Equal(t, idx[0][2], idx[1][2], "vertex (0,1,0) shared by both triangles should share an index")
}

func TestWeldTrianglesDefaultsEpsWhenNonPositive(t *testing.T) {
	tris := [][3]v3.Vec{{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}}
	pts, _ := weldTriangles(tris, 0)
	assert.Len(t, pts, 3)
}

func TestImportSTLRoundTripsASCIIFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(asciiTriangle), 0o644))

	pts, tris, err := ImportSTL(path, 1e-6)
	require.NoError(t, err)
	assert.Len(t, pts, 3)
	require.Len(t, tris, 1)
	assert.Equal(t, [3]int32{0, 1, 2}, tris[0])
}

func TestImportSTLMissingFile(t *testing.T) {
	_, _, err := ImportSTL(filepath.Join(t.TempDir(), "missing.stl"), 1e-6)
	assert.Error(t, err)
}
