package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/internal/nativetest"
	"github.com/wippyai/h3-runtime/native"
)

func TestKRing(t *testing.T) {
	lib := nativetest.New()
	for k, want := range map[int]int{0: 1, 1: 7, 2: 19, 50: 7651} {
		got, err := KRing(lib, k)
		require.NoError(t, err)
		assert.Equal(t, want, got, "k=%d", k)
	}

	_, err := KRing(lib, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Phase: errors.PhaseOracle, Kind: errors.KindOutOfRange}))
	assert.Equal(t, []string{"MaxKringSize", "MaxKringSize", "MaxKringSize", "MaxKringSize"}, lib.Calls(),
		"negative radius never reaches the size query")
}

func TestHexRanges(t *testing.T) {
	lib := nativetest.New()
	got, err := HexRanges(lib, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 57, got)

	got, err = HexRanges(lib, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestHexRing(t *testing.T) {
	tests := []struct {
		k    int
		want int
	}{
		{0, 1},
		{1, 6},
		{2, 12},
		{50, 300},
	}
	for _, tt := range tests {
		got, err := HexRing(tt.k)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "k=%d", tt.k)
	}

	_, err := HexRing(-3)
	assert.Error(t, err)
}

func TestNegativeNativeAnswer(t *testing.T) {
	lib := nativetest.New()
	a := nativetest.MakeCell(5, 10)
	b := nativetest.MakeCell(6, 10)

	_, err := Line(lib, a, b)
	require.Error(t, err)
	assert.True(t, errors.IsNativeFailure(err))

	lib.Size["MaxPolyfillSize"] = -4
	_, err = Polyfill(lib, &native.GeoPolygon{}, 5)
	require.Error(t, err)
	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, -4, e.Code)
}

func TestHierarchyBounds(t *testing.T) {
	lib := nativetest.New()
	h := nativetest.MakeCell(3, 20, 1, 2, 3)

	n, err := Children(lib, h, 5)
	require.NoError(t, err)
	assert.Equal(t, 49, n)

	n, err = Uncompact(lib, []native.Cell{h, nativetest.MakeCell(4, 20, 1, 2, 3, 4)}, 5)
	require.NoError(t, err)
	assert.Equal(t, 49+7, n)

	_, err = Uncompact(lib, []native.Cell{h}, 2)
	assert.True(t, errors.IsNativeFailure(err), "coarser target than input fails")

	n, err = Compact(12)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestFixedBounds(t *testing.T) {
	lib := nativetest.New()

	n, err := Res0(lib)
	require.NoError(t, err)
	assert.Equal(t, 122, n)

	n, err = Pentagons(lib)
	require.NoError(t, err)
	assert.Equal(t, native.PentagonCount, n)

	n, err = EdgeEndpoints()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = HexagonEdges()
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = Faces(lib, nativetest.MakeCell(2, 5))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
