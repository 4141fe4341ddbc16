package linked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/internal/nativetest"
	"github.com/wippyai/h3-runtime/native"
)

func rad(lat, lng float64) native.GeoCoord {
	return codec.LatLng{Lat: lat, Lng: lng}.ToNative()
}

func TestDecodeNested(t *testing.T) {
	lib := nativetest.New()
	root := lib.Linked(
		[][]native.GeoCoord{
			{rad(1, 2), rad(3, 4), rad(5, 6)},
			{rad(1.5, 2.5), rad(2, 3)},
		},
		[][]native.GeoCoord{
			{rad(-10, 170), rad(-11, 171), rad(-12, 172), rad(-13, 173)},
		},
	)

	mp := Decode(lib, root)
	require.Len(t, mp, 2)
	require.Len(t, mp[0], 2)
	assert.Len(t, mp[0][0], 3)
	assert.Len(t, mp[0][1], 2)
	require.Len(t, mp[1], 1)
	assert.Len(t, mp[1][0], 4)

	assert.InDelta(t, 3.0, mp[0][0][1].Lat, 1e-12)
	assert.InDelta(t, 173.0, mp[1][0][3].Lng, 1e-12)

	assert.Equal(t, 1, lib.Destroyed())
	assert.Equal(t, 0, lib.Outstanding())
}

func TestDecodeReleasesOnceAfterTraversal(t *testing.T) {
	lib := nativetest.New()
	root := lib.Linked([][]native.GeoCoord{{rad(0, 0)}})

	_ = Decode(lib, root)

	assert.Equal(t, []string{"DestroyLinkedPolygon"}, lib.Calls())
	assert.Panics(t, func() { root.FirstLoop() }, "structure is gone after decode")
}

func TestDecodeNil(t *testing.T) {
	lib := nativetest.New()
	mp := Decode(lib, nil)
	assert.NotNil(t, mp)
	assert.Len(t, mp, 0)
	assert.Empty(t, lib.Calls(), "nothing to release")

	assert.Equal(t, 0, codec.MultiPolygonValue(mp).Len())
}

func TestDecodeDropsEmptyPolygons(t *testing.T) {
	lib := nativetest.New()
	root := lib.Linked(
		[][]native.GeoCoord{},
		[][]native.GeoCoord{{rad(1, 1)}, {}},
	)

	mp := Decode(lib, root)
	require.Len(t, mp, 1)
	require.Len(t, mp[0], 2)
	assert.Len(t, mp[0][1], 0)
	assert.Equal(t, 1, lib.Destroyed())
}

func TestCellsToMultiPolygon(t *testing.T) {
	lib := nativetest.New()
	defer lib.Mem.AssertSize(t, 0)

	cells := []native.Cell{nativetest.MakeCell(5, 10), nativetest.MakeCell(5, 11)}
	mp, err := CellsToMultiPolygon(lib, lib.Mem, cells)
	require.NoError(t, err)
	require.Len(t, mp, 2)
	assert.Len(t, mp[0][0], 6)
	assert.Equal(t, []string{"H3SetToLinkedGeo", "DestroyLinkedPolygon"}, lib.Calls())

	empty, err := CellsToMultiPolygon(lib, lib.Mem, nil)
	require.NoError(t, err)
	assert.Len(t, empty, 0)
	assert.Equal(t, 0, lib.Outstanding())
}
