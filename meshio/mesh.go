// Package meshio reads and writes the sectioned text mesh container format.
// The join core never sees the container syntax; it consumes a *Mesh through
// the mesh.Source interface and writes through a *Writer via mesh.Sink.
package meshio

import (
	"github.com/notargets/meshjoin/mesh"
	"github.com/notargets/meshjoin/utils"
)

// Block is one element block as stored in a mesh file. Connectivity is held
// 0-based in memory; the on-file representation is 1-based.
type Block struct {
	ID           int
	ElementType  string
	NodesPerElem int
	Connectivity utils.Index
}

// NumElements returns the element count of the block
func (b Block) NumElements() int {
	if b.NodesPerElem == 0 {
		return 0
	}
	return len(b.Connectivity) / b.NodesPerElem
}

// Mesh is one decoded mesh file. Z is zero-filled for 2D meshes.
type Mesh struct {
	Title   string
	Dim     int
	X, Y, Z []float64
	Blocks  []Block

	// Nodal variable data: VarNames names the variables, Times holds one
	// entry per time step, Values is indexed [step][variable][node]
	VarNames []string
	Times    []float64
	Values   [][][]float64
}

// NumNodes returns the node count of the mesh
func (m *Mesh) NumNodes() int {
	return len(m.X)
}

// NumElements returns the total element count over all blocks
func (m *Mesh) NumElements() (n int) {
	for _, b := range m.Blocks {
		n += b.NumElements()
	}
	return
}

// Dimension returns the spatial dimension, 2 or 3
func (m *Mesh) Dimension() int {
	return m.Dim
}

// Coordinates returns the per-axis coordinate arrays, local node order
func (m *Mesh) Coordinates() (x, y, z []float64) {
	return m.X, m.Y, m.Z
}

// ElementBlocks returns the element blocks in file order
func (m *Mesh) ElementBlocks() []mesh.SourceBlock {
	blocks := make([]mesh.SourceBlock, len(m.Blocks))
	for i, b := range m.Blocks {
		blocks[i] = mesh.SourceBlock{
			ID:           b.ID,
			ElementType:  b.ElementType,
			NodesPerElem: b.NodesPerElem,
			Connectivity: b.Connectivity,
		}
	}
	return blocks
}

// NodalVariableNames returns the nodal variable names in file order
func (m *Mesh) NodalVariableNames() []string {
	return m.VarNames
}

// TimeValues returns the time value of each time step
func (m *Mesh) TimeValues() []float64 {
	return m.Times
}

// NodalVariableValues returns the per-node values for one time step and one
// variable, both 0-based
func (m *Mesh) NodalVariableValues(step, varIdx int) []float64 {
	return m.Values[step][varIdx]
}
