package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/meshjoin/mesh"
	"github.com/notargets/meshjoin/meshio"
	"github.com/notargets/meshjoin/utils"
)

const leftPartition = `MESHFILE 1.0
DIMENSION 2
NODES 3
0 0
1 0
1 1
BLOCK 1 TRI3 3 1
1 2 3
VARIABLES 1
temp
STEP 1 0
VALUES temp
1 1 1
END`

const rightPartition = `MESHFILE 1.0
DIMENSION 2
NODES 3
1 0
1 1
0 1
BLOCK 1 TRI3 3 1
1 2 3
VARIABLES 1
temp
STEP 1 0
VALUES temp
2 2 2
END`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunJoinEndToEnd(t *testing.T) {
	dir := t.TempDir()
	left := writeFixture(t, dir, "left.mesh", leftPartition)
	right := writeFixture(t, dir, "right.mesh", rightPartition)
	out := filepath.Join(dir, "joined.mesh")

	err := runJoin([]string{left, right}, out, joinOptions{})
	require.NoError(t, err)

	m, err := meshio.ReadMeshFile(out)
	require.NoError(t, err)

	// the two triangles tile the unit square with a shared edge
	assert.Equal(t, 4, m.NumNodes())
	assert.Equal(t, 2, m.NumElements())
	require.Len(t, m.Blocks, 1)
	assert.Equal(t, utils.Index{0, 1, 2, 1, 2, 3}, m.Blocks[0].Connectivity)

	// shared-edge nodes take the later file's values
	require.Len(t, m.Times, 1)
	assert.Equal(t, []float64{1, 2, 2, 2}, m.NodalVariableValues(0, 0))
}

func TestRunJoinSingleInputIdentity(t *testing.T) {
	dir := t.TempDir()
	left := writeFixture(t, dir, "left.mesh", leftPartition)
	out := filepath.Join(dir, "joined.mesh")

	require.NoError(t, runJoin([]string{left}, out, joinOptions{}))

	in, err := meshio.ReadMeshFile(left)
	require.NoError(t, err)
	joined, err := meshio.ReadMeshFile(out)
	require.NoError(t, err)

	assert.Equal(t, in.NumNodes(), joined.NumNodes())
	assert.Equal(t, in.NumElements(), joined.NumElements())
	assert.Equal(t, in.Blocks[0].Connectivity, joined.Blocks[0].Connectivity)
	assert.Equal(t, in.NodalVariableValues(0, 0), joined.NodalVariableValues(0, 0))
}

func TestRunJoinBlockConflictProducesNoOutput(t *testing.T) {
	conflicting := `MESHFILE 1.0
DIMENSION 2
NODES 4
2 0
3 0
3 1
2 1
BLOCK 1 QUAD4 4 1
1 2 3 4
VARIABLES 1
temp
STEP 1 0
VALUES temp
0 0 0 0
END`

	dir := t.TempDir()
	left := writeFixture(t, dir, "left.mesh", leftPartition)
	quad := writeFixture(t, dir, "quad.mesh", conflicting)
	out := filepath.Join(dir, "joined.mesh")

	err := runJoin([]string{left, quad}, out, joinOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mesh.ErrBlockTypeConflict))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "failed join must not leave an output file")
}

func TestJoinParametersParse(t *testing.T) {
	jp := &JoinParameters{}
	require.NoError(t, jp.Parse([]byte("Title: \"merged run\"\nValidateVariables: false\n")))
	assert.Equal(t, "merged run", jp.Title)
	require.NotNil(t, jp.ValidateVariables)
	assert.False(t, *jp.ValidateVariables)
}
