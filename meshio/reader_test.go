package meshio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/meshjoin/utils"
)

// Helper function to create temporary test files
func createTempMeshFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.mesh")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

const leftPartition = `MESHFILE 1.0
TITLE left partition
DIMENSION 2
SETS 0 0
NODES 3
0.0 0.0
1.0 0.0
1.0 1.0
BLOCK 1 TRI3 3 1
1 2 3
VARIABLES 1
temp
STEP 1 0
VALUES temp
1 2 3
STEP 2 0.5
VALUES temp
4 5 6
END`

func TestReadMeshFile(t *testing.T) {
	m, err := ReadMeshFile(createTempMeshFile(t, leftPartition))
	require.NoError(t, err)

	assert.Equal(t, "left partition", m.Title)
	assert.Equal(t, 2, m.Dim)
	assert.Equal(t, 3, m.NumNodes())
	assert.Equal(t, []float64{0, 1, 1}, m.X)
	assert.Equal(t, []float64{0, 0, 1}, m.Y)
	assert.Equal(t, []float64{0, 0, 0}, m.Z)

	require.Len(t, m.Blocks, 1)
	assert.Equal(t, 1, m.Blocks[0].ID)
	assert.Equal(t, "TRI3", m.Blocks[0].ElementType)
	assert.Equal(t, 3, m.Blocks[0].NodesPerElem)
	// file connectivity is 1-based, in-memory is 0-based
	assert.Equal(t, utils.Index{0, 1, 2}, m.Blocks[0].Connectivity)
	assert.Equal(t, 1, m.NumElements())

	assert.Equal(t, []string{"temp"}, m.VarNames)
	assert.Equal(t, []float64{0, 0.5}, m.Times)
	require.Len(t, m.Values, 2)
	assert.Equal(t, []float64{4, 5, 6}, m.NodalVariableValues(1, 0))
}

func TestReadMesh3D(t *testing.T) {
	content := `MESHFILE 1.0
DIMENSION 3
NODES 4
0 0 0
1 0 0
0 1 0
0 0 1
BLOCK 10 TET4 4 1
1 2 3 4
VARIABLES 0
END`
	m, err := ReadMesh(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Dim)
	assert.Equal(t, []float64{0, 0, 0, 1}, m.Z)
	assert.Empty(t, m.VarNames)
	assert.Empty(t, m.Times)
}

func TestReadMeshWrappedValues(t *testing.T) {
	// connectivity and values may span multiple lines
	content := `MESHFILE 1.0
DIMENSION 2
NODES 4
0 0
1 0
1 1
0 1
BLOCK 1 QUAD4 4 1
1 2
3 4
VARIABLES 0
END`
	m, err := ReadMesh(strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, utils.Index{0, 1, 2, 3}, m.Blocks[0].Connectivity)
}

func TestReadMeshBadMagic(t *testing.T) {
	_, err := ReadMesh(strings.NewReader("GAMBIT NEUTRAL\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a mesh file")
}

func TestReadMeshTruncated(t *testing.T) {
	content := `MESHFILE 1.0
DIMENSION 2
NODES 3
0.0 0.0
1.0 0.0
`
	_, err := ReadMesh(strings.NewReader(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")
}

func TestReadMeshMissingEnd(t *testing.T) {
	content := `MESHFILE 1.0
DIMENSION 2
NODES 1
0.0 0.0
`
	_, err := ReadMesh(strings.NewReader(content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing END")
}
