package meshio

import (
	"bufio"
	"fmt"
	"os"

	"github.com/notargets/meshjoin/utils"
)

// valuesPerLine wraps numeric sections so files stay diffable
const valuesPerLine = 8

// Writer encodes a mesh container file. Sections must be written in order:
// Init, WriteCoordinates, WriteBlock per block, WriteVariableNames, then
// WriteStep per time step, then Close.
type Writer struct {
	file *os.File
	w    *bufio.Writer

	dim      int
	numNodes int
	varNames []string
	step     int
	err      error
}

// CreateMeshFile creates a mesh container file for writing
func CreateMeshFile(filename string) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return &Writer{
		file: file,
		w:    bufio.NewWriter(file),
	}, nil
}

func (w *Writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Init writes the file header. Node-set and side-set counts are carried for
// format compatibility and are always zero for joined meshes.
func (w *Writer) Init(title string, dim, numNodes, numElems, numBlocks, numNodeSets, numSideSets int) error {
	w.dim = dim
	w.numNodes = numNodes
	w.printf("%s 1.0\n", formatMagic)
	if title != "" {
		w.printf("TITLE %s\n", title)
	}
	w.printf("DIMENSION %d\n", dim)
	w.printf("SETS %d %d\n", numNodeSets, numSideSets)
	return w.err
}

// WriteCoordinates writes the full coordinate arrays in node index order.
// z is ignored for 2D meshes.
func (w *Writer) WriteCoordinates(x, y, z []float64) error {
	if len(x) != w.numNodes {
		return fmt.Errorf("coordinate array length %d differs from declared node count %d",
			len(x), w.numNodes)
	}
	w.printf("NODES %d\n", len(x))
	for i := range x {
		if w.dim == 3 {
			w.printf("%v %v %v\n", x[i], y[i], z[i])
		} else {
			w.printf("%v %v\n", x[i], y[i])
		}
	}
	return w.err
}

// WriteBlock writes one element block. Connectivity arrives 0-based and is
// stored 1-based on file.
func (w *Writer) WriteBlock(id int, elementType string, numElems int, connectivity utils.Index) error {
	npe := 0
	if numElems > 0 {
		npe = len(connectivity) / numElems
	}
	w.printf("BLOCK %d %s %d %d\n", id, elementType, npe, numElems)
	fileConn := connectivity.Add(1)
	for e := 0; e < numElems; e++ {
		for k := 0; k < npe; k++ {
			if k > 0 {
				w.printf(" ")
			}
			w.printf("%d", fileConn[e*npe+k])
		}
		w.printf("\n")
	}
	return w.err
}

// WriteVariableNames writes the nodal variable name list
func (w *Writer) WriteVariableNames(names []string) error {
	w.varNames = names
	w.printf("VARIABLES %d\n", len(names))
	for _, n := range names {
		w.printf("%s\n", n)
	}
	return w.err
}

// WriteStep writes one time step: the time value, then a global-indexed value
// array per variable, in name-list order. The step is flushed to the file
// before returning.
func (w *Writer) WriteStep(time float64, values [][]float64) error {
	if len(values) != len(w.varNames) {
		return fmt.Errorf("step has %d value arrays, expected %d", len(values), len(w.varNames))
	}
	w.step++
	w.printf("STEP %d %v\n", w.step, time)
	for v, name := range w.varNames {
		w.printf("VALUES %s\n", name)
		w.writeFloats(values[v])
	}
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// writeFloats writes values in %v form, the shortest representation that
// parses back to the identical float64
func (w *Writer) writeFloats(vals []float64) {
	for i, v := range vals {
		if i%valuesPerLine == 0 {
			if i > 0 {
				w.printf("\n")
			}
		} else {
			w.printf(" ")
		}
		w.printf("%v", v)
	}
	if len(vals) > 0 {
		w.printf("\n")
	}
}

// Close terminates the file with the END marker and closes it
func (w *Writer) Close() error {
	w.printf("END\n")
	if w.err != nil {
		w.file.Close()
		return w.err
	}
	if err := w.w.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
