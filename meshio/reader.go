package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/meshjoin/utils"
)

// formatMagic opens every mesh file, followed by the format version
const formatMagic = "MESHFILE"

// ReadMeshFile reads a mesh container file
func ReadMeshFile(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	m, err := ReadMesh(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return m, nil
}

// ReadMesh decodes a mesh container from r
func ReadMesh(r io.Reader) (*Mesh, error) {
	lr := newLineReader(r)

	fields, err := lr.next()
	if err != nil {
		return nil, err
	}
	if len(fields) < 1 || fields[0] != formatMagic {
		return nil, lr.errorf("not a mesh file: expected %s header", formatMagic)
	}

	m := &Mesh{}
	// maps variable name -> index while STEP sections are decoded
	varIdx := make(map[string]int)

	for {
		fields, err = lr.next()
		if err == io.EOF {
			return nil, lr.errorf("unexpected EOF: missing END")
		}
		if err != nil {
			return nil, err
		}

		switch fields[0] {
		case "TITLE":
			m.Title = strings.Join(fields[1:], " ")

		case "DIMENSION":
			if m.Dim, err = lr.intField(fields, 1); err != nil {
				return nil, err
			}

		case "SETS":
			// node-set and side-set counts; always zero, not decoded further

		case "NODES":
			if err = lr.readNodes(m, fields); err != nil {
				return nil, err
			}

		case "BLOCK":
			if err = lr.readBlock(m, fields); err != nil {
				return nil, err
			}

		case "VARIABLES":
			n, err := lr.intField(fields, 1)
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				nf, err := lr.next()
				if err != nil {
					return nil, lr.errorf("unexpected EOF reading variable names")
				}
				varIdx[nf[0]] = i
				m.VarNames = append(m.VarNames, nf[0])
			}

		case "STEP":
			if err = lr.readStep(m, fields, varIdx); err != nil {
				return nil, err
			}

		case "END":
			return m, nil

		default:
			return nil, lr.errorf("unknown section %q", fields[0])
		}
	}
}

func (lr *lineReader) readNodes(m *Mesh, fields []string) error {
	if m.Dim != 2 && m.Dim != 3 {
		return lr.errorf("NODES section before a valid DIMENSION")
	}
	n, err := lr.intField(fields, 1)
	if err != nil {
		return err
	}
	coords, err := lr.readFloats(n * m.Dim)
	if err != nil {
		return fmt.Errorf("reading nodes: %w", err)
	}
	m.X = make([]float64, n)
	m.Y = make([]float64, n)
	m.Z = make([]float64, n)
	for i := 0; i < n; i++ {
		m.X[i] = coords[i*m.Dim]
		m.Y[i] = coords[i*m.Dim+1]
		if m.Dim == 3 {
			m.Z[i] = coords[i*m.Dim+2]
		}
	}
	return nil
}

func (lr *lineReader) readBlock(m *Mesh, fields []string) error {
	// BLOCK <id> <type> <nodes-per-elem> <num-elems>
	if len(fields) < 5 {
		return lr.errorf("malformed BLOCK header")
	}
	id, err := lr.intField(fields, 1)
	if err != nil {
		return err
	}
	npe, err := lr.intField(fields, 3)
	if err != nil {
		return err
	}
	nelem, err := lr.intField(fields, 4)
	if err != nil {
		return err
	}
	conn, err := lr.readInts(npe * nelem)
	if err != nil {
		return fmt.Errorf("reading block %d connectivity: %w", id, err)
	}
	m.Blocks = append(m.Blocks, Block{
		ID:           id,
		ElementType:  fields[2],
		NodesPerElem: npe,
		// file connectivity is 1-based
		Connectivity: utils.Index(conn).Add(-1),
	})
	return nil
}

func (lr *lineReader) readStep(m *Mesh, fields []string, varIdx map[string]int) error {
	// STEP <step> <time>
	if len(fields) < 3 {
		return lr.errorf("malformed STEP header")
	}
	t, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return lr.errorf("bad time value %q", fields[2])
	}
	m.Times = append(m.Times, t)
	values := make([][]float64, len(m.VarNames))
	for range m.VarNames {
		vf, err := lr.next()
		if err != nil || vf[0] != "VALUES" || len(vf) < 2 {
			return lr.errorf("expected VALUES section in STEP %d", len(m.Times))
		}
		idx, ok := varIdx[vf[1]]
		if !ok {
			return lr.errorf("VALUES for undeclared variable %q", vf[1])
		}
		vals, err := lr.readFloats(m.NumNodes())
		if err != nil {
			return fmt.Errorf("reading values of %q: %w", vf[1], err)
		}
		values[idx] = vals
	}
	m.Values = append(m.Values, values)
	return nil
}

// lineReader scans non-empty lines and splits them into fields, keeping the
// current line number for error messages
type lineReader struct {
	scanner *bufio.Scanner
	line    int
}

func newLineReader(r io.Reader) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{scanner: s}
}

// next returns the fields of the next non-empty, non-comment line
func (lr *lineReader) next() ([]string, error) {
	for lr.scanner.Scan() {
		lr.line++
		line := strings.TrimSpace(lr.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.Fields(line), nil
	}
	if err := lr.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", lr.line, fmt.Sprintf(format, args...))
}

func (lr *lineReader) intField(fields []string, i int) (int, error) {
	if i >= len(fields) {
		return 0, lr.errorf("missing field %d in %s section", i, fields[0])
	}
	v, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0, lr.errorf("bad integer %q in %s section", fields[i], fields[0])
	}
	return v, nil
}

// readFloats reads n floats, allowing them to span any number of lines
func (lr *lineReader) readFloats(n int) ([]float64, error) {
	out := make([]float64, 0, n)
	for len(out) < n {
		fields, err := lr.next()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF, got %d of %d values", len(out), n)
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, lr.errorf("bad number %q", f)
			}
			out = append(out, v)
		}
	}
	if len(out) != n {
		return nil, lr.errorf("expected %d values, got %d", n, len(out))
	}
	return out, nil
}

// readInts reads n integers, allowing them to span any number of lines
func (lr *lineReader) readInts(n int) ([]int, error) {
	out := make([]int, 0, n)
	for len(out) < n {
		fields, err := lr.next()
		if err != nil {
			return nil, fmt.Errorf("unexpected EOF, got %d of %d values", len(out), n)
		}
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, lr.errorf("bad integer %q", f)
			}
			out = append(out, v)
		}
	}
	if len(out) != n {
		return nil, lr.errorf("expected %d values, got %d", n, len(out))
	}
	return out, nil
}
