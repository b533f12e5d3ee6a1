package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "M", M.String())
	assert.Equal(t, "Ix", Ix.String())
	assert.Equal(t, "Iy", Iy.String())
	assert.Equal(t, "Kind(5)", Kind(5).String())
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("Iz")
	assert.Error(t, err)
}

func TestPointer_String(t *testing.T) {
	assert.Equal(t, "Iy(4,3)", Pointer{Row: 4, Col: 3, Kind: Iy}.String())
}

func TestPointer_OnBoundary(t *testing.T) {
	assert.True(t, Pointer{Row: 0, Col: 3}.OnBoundary())
	assert.True(t, Pointer{Row: 2, Col: 0}.OnBoundary())
	assert.False(t, Pointer{Row: 1, Col: 1}.OnBoundary())
}

func TestPointer_StructuralEquality(t *testing.T) {
	a := Pointer{Row: 1, Col: 2, Kind: Ix}
	b := Pointer{Row: 1, Col: 2, Kind: Ix}
	assert.True(t, a == b)

	set := map[Pointer]bool{a: true}
	assert.True(t, set[b])
}
