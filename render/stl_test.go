package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deadsy/vhacd/mesh"
	v3 "github.com/deadsy/vhacd/vec/v3"
)

func triangleMesh() *mesh.Mesh {
	return mesh.New(
		[]v3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		[][3]int{{0, 1, 2}},
	)
}

func TestToSTLWritesBinaryHeaderAndTriangleCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.stl")
	require.NoError(t, ToSTL(triangleMesh(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// 80-byte header + 4-byte count + 1 * 50-byte triangle record.
	assert.Len(t, data, binaryHeaderSize+4+50)
}

func TestToSTLsWritesOneFilePerHull(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "hull")
	hulls := []*mesh.Mesh{triangleMesh(), triangleMesh()}
	require.NoError(t, ToSTLs(hulls, prefix))

	_, err0 := os.Stat(prefix + "-000.stl")
	_, err1 := os.Stat(prefix + "-001.stl")
	assert.NoError(t, err0)
	assert.NoError(t, err1)
}

func TestTriangleNormalDegenerateReturnsZero(t *testing.T) {
	n := triangleNormal(v3.Vec{}, v3.Vec{}, v3.Vec{})
	assert.Equal(t, v3.Vec{}, n)
}
