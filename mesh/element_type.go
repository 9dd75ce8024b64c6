package mesh

import "fmt"

// ElementType represents different element types
type ElementType int

const (
	Point1 ElementType = iota
	Bar2
	Tri3
	Quad4
	Tet4
	Hex8
	Prism6
	Pyramid5
)

func (e ElementType) String() string {
	return [...]string{"POINT1", "BAR2", "TRI3", "QUAD4", "TET4", "HEX8", "PRISM6", "PYRAMID5"}[e]
}

// NumNodes returns the node count per element for the type
func (e ElementType) NumNodes() int {
	return [...]int{1, 2, 3, 4, 4, 8, 6, 5}[e]
}

// ParseElementType converts a mesh-file element type name into an ElementType.
// Short aliases ("TRI", "QUAD", "TETRA", "HEX") are accepted alongside the
// canonical names.
func ParseElementType(name string) (ElementType, error) {
	switch name {
	case "POINT", "POINT1":
		return Point1, nil
	case "BAR2":
		return Bar2, nil
	case "TRI", "TRI3":
		return Tri3, nil
	case "QUAD", "QUAD4":
		return Quad4, nil
	case "TETRA", "TET4":
		return Tet4, nil
	case "HEX", "HEX8":
		return Hex8, nil
	case "PRISM6":
		return Prism6, nil
	case "PYRAMID5":
		return Pyramid5, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedElementType, name)
	}
}
