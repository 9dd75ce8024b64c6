package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElementType(t *testing.T) {
	et, err := ParseElementType("TRI3")
	require.NoError(t, err)
	assert.Equal(t, Tri3, et)
	assert.Equal(t, 3, et.NumNodes())

	// short aliases map to the same types
	for alias, want := range map[string]ElementType{
		"TRI":   Tri3,
		"QUAD":  Quad4,
		"TETRA": Tet4,
		"HEX":   Hex8,
	} {
		et, err = ParseElementType(alias)
		require.NoError(t, err)
		assert.Equal(t, want, et)
	}
}

func TestParseElementTypeRoundTrip(t *testing.T) {
	for _, et := range []ElementType{Point1, Bar2, Tri3, Quad4, Tet4, Hex8, Prism6, Pyramid5} {
		parsed, err := ParseElementType(et.String())
		require.NoError(t, err)
		assert.Equal(t, et, parsed)
	}
}

func TestParseElementTypeUnsupported(t *testing.T) {
	_, err := ParseElementType("WEDGE15")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedElementType))
	assert.Contains(t, err.Error(), "WEDGE15")
}
