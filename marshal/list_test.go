package marshal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/h3-runtime/errors"
)

type coord struct {
	Lat, Lon float64
}

func TestAllocationList(t *testing.T) {
	mem := checked(t)
	al := NewAllocationList()

	a, err := Carve[coord](al, mem, 4)
	require.NoError(t, err)
	require.Len(t, a, 4)
	b, err := Carve[uint64](al, mem, 3)
	require.NoError(t, err)
	require.Len(t, b, 3)

	none, err := Carve[coord](al, mem, 0)
	require.NoError(t, err)
	assert.Nil(t, none)

	assert.Equal(t, 2, al.Count())
	assert.Equal(t, 4*16+3*8, al.Bytes())
	assert.Equal(t, 4*16+3*8, mem.CurrentAlloc())

	a[3] = coord{1, 2}
	assert.Equal(t, coord{}, a[0], "carved slots are zeroed")

	al.FreeAndRelease(mem)
	assert.Equal(t, 0, mem.CurrentAlloc())
}

func TestAllocationListFreeTwice(t *testing.T) {
	mem := checked(t)
	al := NewAllocationList()
	_, err := Carve[uint64](al, mem, 2)
	require.NoError(t, err)

	al.Free(mem)
	al.Free(mem)
	al.Release()
}

func TestCarveNegative(t *testing.T) {
	mem := checked(t)
	al := NewAllocationList()
	defer al.FreeAndRelease(mem)

	_, err := Carve[uint64](al, mem, -1)
	assert.Error(t, err)
	assert.Equal(t, 0, al.Count())
}

func TestCarveOverflowingCount(t *testing.T) {
	mem := checked(t)
	al := NewAllocationList()
	defer al.FreeAndRelease(mem)

	_, err := Carve[coord](al, mem, math.MaxInt/8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &errors.Error{Kind: errors.KindAllocation}))
	assert.Equal(t, 0, al.Count())
	assert.Equal(t, 0, mem.CurrentAlloc())
}

func TestInputBuffer(t *testing.T) {
	mem := checked(t)
	src := []uint64{3, 1, 2}

	in, err := Input(mem, src)
	require.NoError(t, err)
	assert.Equal(t, src, in.Slots)
	assert.Equal(t, 24, in.Bytes())

	src[0] = 99
	assert.Equal(t, uint64(3), in.Slots[0], "input is copied")

	in.Release()
	in.Release()
	assert.Nil(t, in.Slots)

	empty, err := Input[uint64](mem, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	empty.Release()
}
