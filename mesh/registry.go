package mesh

import "math"

// SnapTolerance is the coordinate quantization grid spacing used to decide
// when two points from different partition files represent the same physical
// node. Points closer than half a grid cell to a cell boundary can snap to
// either neighboring cell; inputs are expected to carry coincident boundary
// nodes that agree to well within this tolerance.
const SnapTolerance = 1.e-10

// Point holds one node's coordinates. Z is zero for 2D meshes. After
// snapping, a Point is used as a deduplication key and never mutated.
type Point struct {
	X, Y, Z float64
}

// SnapPoint snaps a point to a grid with spacing tol, mapping each coordinate
// to the nearest grid multiple
func SnapPoint(p Point, tol float64) Point {
	snap := func(v float64) float64 {
		return math.Round(v/tol) * tol
	}
	return Point{snap(p.X), snap(p.Y), snap(p.Z)}
}

// NodeRegistry maps snapped points to dense global node indices. Indices are
// assigned sequentially in first-seen order, 0-based with no gaps, so a fixed
// file order and per-file node order always reproduce the same numbering.
type NodeRegistry struct {
	index  map[Point]int
	points []Point // points in global index order
}

func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{
		index: make(map[Point]int),
	}
}

// LookupOrInsert returns the global index for a snapped point, assigning the
// next sequential index if the point has not been seen. The registry only
// grows; there is no removal.
func (nr *NodeRegistry) LookupOrInsert(key Point) int {
	if idx, ok := nr.index[key]; ok {
		return idx
	}
	idx := len(nr.points)
	nr.index[key] = idx
	nr.points = append(nr.points, key)
	return idx
}

// NumNodes returns the number of distinct global nodes registered so far
func (nr *NodeRegistry) NumNodes() int {
	return len(nr.points)
}

// Point returns the snapped coordinates of global node idx
func (nr *NodeRegistry) Point(idx int) Point {
	return nr.points[idx]
}

// Coordinates returns the per-axis coordinate arrays ordered by global index
func (nr *NodeRegistry) Coordinates() (x, y, z []float64) {
	n := len(nr.points)
	x = make([]float64, n)
	y = make([]float64, n)
	z = make([]float64, n)
	for i, p := range nr.points {
		x[i] = p.X
		y[i] = p.Y
		z[i] = p.Z
	}
	return
}
