package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/meshjoin/utils"
)

// SourceBlock is one element block as delivered by a mesh file reader.
// Connectivity references local node ids, 0-based.
type SourceBlock struct {
	ID           int
	ElementType  string
	NodesPerElem int
	Connectivity utils.Index
}

// Source is the read side of the mesh container collaborator, one per input
// partition file
type Source interface {
	Dimension() int
	NumNodes() int
	Coordinates() (x, y, z []float64)
	ElementBlocks() []SourceBlock
	NodalVariableNames() []string
	TimeValues() []float64
	// NodalVariableValues returns the per-node values for one time step and
	// one variable, both 0-based
	NodalVariableValues(step, varIdx int) []float64
}

// Sink is the write side of the mesh container collaborator. Calls arrive in
// a fixed order: Init, WriteCoordinates, WriteBlock per block,
// WriteVariableNames, then WriteStep per time step.
type Sink interface {
	Init(title string, dim, numNodes, numElems, numBlocks, numNodeSets, numSideSets int) error
	WriteCoordinates(x, y, z []float64) error
	WriteBlock(id int, elementType string, numElems int, connectivity utils.Index) error
	WriteVariableNames(names []string) error
	// WriteStep writes the time value and one global-indexed value array per
	// variable, and commits the step before returning
	WriteStep(time float64, values [][]float64) error
}

// Remap translates local node references into global ones through a file's
// index set. Every entry of conn must index into is; a reference outside the
// file's node count fails with ErrIndexOutOfRange.
func Remap(conn, is utils.Index) (global utils.Index, err error) {
	global = utils.NewIndex(len(conn))
	for i, local := range conn {
		if local < 0 || local >= len(is) {
			return nil, fmt.Errorf("%w: local node %d, file has %d nodes",
				ErrIndexOutOfRange, local, len(is))
		}
		global[i] = is[local]
	}
	return global, nil
}

// Scatter writes src values into dest at the positions given by is.
// len(src) must equal len(is); dest entries not covered by is are left alone.
func Scatter(src []float64, is utils.Index, dest []float64) {
	for i, v := range src {
		dest[is[i]] = v
	}
}

// Block is one accumulated element block in the merged mesh, holding the
// concatenated global-indexed connectivity of every file that contributed it
type Block struct {
	ID           int
	Type         ElementType
	NodesPerElem int
	Connectivity utils.Index
	firstFile    string // file that established the block's type
}

// NumElements returns the element count implied by the accumulated
// connectivity. A remainder means a corrupt or mismatched contribution.
func (b *Block) NumElements() (int, error) {
	if len(b.Connectivity)%b.NodesPerElem != 0 {
		return 0, fmt.Errorf("block %d: connectivity length %d not divisible by %d nodes per element",
			b.ID, len(b.Connectivity), b.NodesPerElem)
	}
	return len(b.Connectivity) / b.NodesPerElem, nil
}

// fileSeries holds one input file's nodal variable values, local-indexed,
// as [time step][variable][node]
type fileSeries [][][]float64

// Joiner merges an ordered list of mesh partition files into one mesh. It
// owns all join state, so independent joins never interfere. Input order is
// semantically significant: it fixes the global node numbering and decides
// which file wins when coincident boundary nodes carry differing variable
// values (the last file processed wins).
type Joiner struct {
	// Title is written into the output header
	Title string
	// ValidateVariables cross-checks variable names and time steps of every
	// input against the first one
	ValidateVariables bool
	Verbose           bool

	dim       int
	registry  *NodeRegistry
	indexSets []utils.Index // one per ingested file, local -> global
	blocks    map[int]*Block
	varNames  []string
	times     []float64
	series    []fileSeries // one per ingested file
}

func NewJoiner() *Joiner {
	return &Joiner{
		ValidateVariables: true,
		registry:          NewNodeRegistry(),
		blocks:            make(map[int]*Block),
	}
}

// NumNodes returns the global node count registered so far
func (j *Joiner) NumNodes() int {
	return j.registry.NumNodes()
}

// Ingest reads one partition file into the join state. Files must be
// ingested in the intended input order.
func (j *Joiner) Ingest(name string, src Source) error {
	dim := src.Dimension()
	if dim != 2 && dim != 3 {
		return fmt.Errorf("%s: %w %d", name, ErrUnsupportedDimension, dim)
	}
	if j.dim == 0 {
		j.dim = dim
	} else if dim != j.dim {
		return fmt.Errorf("%s: %w: got %d, expected %d", name, ErrDimensionMismatch, dim, j.dim)
	}

	is := j.buildIndexSet(src)
	j.indexSets = append(j.indexSets, is)
	if j.Verbose {
		fmt.Printf("%s: %d local nodes, %d global nodes after dedup\n",
			name, len(is), j.registry.NumNodes())
	}

	for _, sb := range src.ElementBlocks() {
		if err := j.accumulateBlock(name, sb, is); err != nil {
			return err
		}
	}

	if err := j.ingestVariables(name, src); err != nil {
		return err
	}
	j.series = append(j.series, readSeries(src))
	return nil
}

// buildIndexSet snaps every node of the file onto the tolerance grid and
// resolves it through the registry, producing the file's local -> global map
func (j *Joiner) buildIndexSet(src Source) utils.Index {
	x, y, z := src.Coordinates()
	is := utils.NewIndex(src.NumNodes())
	for i := range is {
		p := Point{X: x[i], Y: y[i]}
		if j.dim == 3 {
			p.Z = z[i]
		}
		is[i] = j.registry.LookupOrInsert(SnapPoint(p, SnapTolerance))
	}
	return is
}

func (j *Joiner) accumulateBlock(name string, sb SourceBlock, is utils.Index) error {
	et, err := ParseElementType(sb.ElementType)
	if err != nil {
		return fmt.Errorf("%s: block %d: %w", name, sb.ID, err)
	}
	global, err := Remap(sb.Connectivity, is)
	if err != nil {
		return fmt.Errorf("%s: block %d: %w", name, sb.ID, err)
	}

	blk, ok := j.blocks[sb.ID]
	if !ok {
		// first contribution establishes the block's type
		j.blocks[sb.ID] = &Block{
			ID:           sb.ID,
			Type:         et,
			NodesPerElem: sb.NodesPerElem,
			Connectivity: global,
			firstFile:    name,
		}
		return nil
	}
	if blk.Type != et || blk.NodesPerElem != sb.NodesPerElem {
		return fmt.Errorf("%s: %w: block %d is %s/%d nodes here but %s/%d nodes in %s",
			name, ErrBlockTypeConflict, sb.ID, et, sb.NodesPerElem,
			blk.Type, blk.NodesPerElem, blk.firstFile)
	}
	blk.Connectivity = append(blk.Connectivity, global...)
	return nil
}

// ingestVariables takes the variable and time axes from the first file and,
// when validation is on, requires every later file to agree exactly
func (j *Joiner) ingestVariables(name string, src Source) error {
	names := src.NodalVariableNames()
	times := src.TimeValues()
	if len(j.series) == 0 {
		j.varNames = append([]string{}, names...)
		j.times = append([]float64{}, times...)
		return nil
	}
	if !j.ValidateVariables {
		return nil
	}
	if len(names) != len(j.varNames) {
		return fmt.Errorf("%s: %w: %d variables, expected %d",
			name, ErrVariableMismatch, len(names), len(j.varNames))
	}
	for i, n := range names {
		if n != j.varNames[i] {
			return fmt.Errorf("%s: %w: variable %d is %q, expected %q",
				name, ErrVariableMismatch, i, n, j.varNames[i])
		}
	}
	if len(times) != len(j.times) {
		return fmt.Errorf("%s: %w: %d time steps, expected %d",
			name, ErrVariableMismatch, len(times), len(j.times))
	}
	for i, t := range times {
		if t != j.times[i] {
			return fmt.Errorf("%s: %w: time step %d is %g, expected %g",
				name, ErrVariableMismatch, i, t, j.times[i])
		}
	}
	return nil
}

func readSeries(src Source) fileSeries {
	numVars := len(src.NodalVariableNames())
	fs := make(fileSeries, len(src.TimeValues()))
	for t := range fs {
		fs[t] = make([][]float64, numVars)
		for v := range fs[t] {
			fs[t][v] = src.NodalVariableValues(t, v)
		}
	}
	return fs
}

// sortedBlocks returns the accumulated blocks in ascending block id order,
// the order they are written out in
func (j *Joiner) sortedBlocks() []*Block {
	blocks := make([]*Block, 0, len(j.blocks))
	for _, b := range j.blocks {
		blocks = append(blocks, b)
	}
	sort.Slice(blocks, func(i, k int) bool { return blocks[i].ID < blocks[k].ID })
	return blocks
}

// Emit writes the merged mesh: global coordinates in index order, each
// accumulated block, then per time step the scattered, merged values of
// every variable. Requires at least one ingested file.
func (j *Joiner) Emit(sink Sink) error {
	if len(j.indexSets) == 0 {
		return fmt.Errorf("no input files ingested")
	}

	blocks := j.sortedBlocks()
	numElems := 0
	for _, b := range blocks {
		n, err := b.NumElements()
		if err != nil {
			return err
		}
		numElems += n
	}

	numNodes := j.registry.NumNodes()
	if err := sink.Init(j.Title, j.dim, numNodes, numElems, len(blocks), 0, 0); err != nil {
		return err
	}
	x, y, z := j.registry.Coordinates()
	if err := sink.WriteCoordinates(x, y, z); err != nil {
		return err
	}
	for _, b := range blocks {
		n, _ := b.NumElements()
		if err := sink.WriteBlock(b.ID, b.Type.String(), n, b.Connectivity); err != nil {
			return err
		}
	}

	if err := sink.WriteVariableNames(j.varNames); err != nil {
		return err
	}
	for t := range j.times {
		values := make([][]float64, len(j.varNames))
		for v := range j.varNames {
			merged := make([]float64, numNodes)
			// later files overwrite earlier ones at shared nodes. With
			// validation off a file may carry fewer steps or variables than
			// the first one; it simply contributes nothing there.
			for fi, fs := range j.series {
				if t >= len(fs) || v >= len(fs[t]) {
					continue
				}
				Scatter(fs[t][v], j.indexSets[fi], merged)
			}
			values[v] = merged
		}
		if err := sink.WriteStep(j.times[t], values); err != nil {
			return err
		}
	}
	return nil
}
