package mesh

import "errors"

// Fatal join error kinds. Every one of these aborts the whole join; there is
// no partial-result recovery.
var (
	ErrDimensionMismatch      = errors.New("spatial dimension mismatch")
	ErrUnsupportedDimension   = errors.New("unsupported dimension")
	ErrUnsupportedElementType = errors.New("unsupported element type")
	ErrBlockTypeConflict      = errors.New("block type conflict")
	ErrIndexOutOfRange        = errors.New("node index out of range")
	ErrVariableMismatch       = errors.New("nodal variable mismatch")
)
