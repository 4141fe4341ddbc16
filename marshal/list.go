package marshal

import (
	"sync"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/wippyai/h3-runtime/errors"
)

// AllocationList tracks the allocations of one native call so they can be
// freed together.
type AllocationList struct {
	allocations [][]byte
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{allocations: make([][]byte, 0, 8)}
	},
}

func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 128

// Release returns to pool. Must call after Free(); list invalid after Release.
func (al *AllocationList) Release() {
	if cap(al.allocations) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

func (al *AllocationList) FreeAndRelease(mem memory.Allocator) {
	al.Free(mem)
	al.Release()
}

func (al *AllocationList) Add(raw []byte) {
	al.allocations = append(al.allocations, raw)
}

func (al *AllocationList) Free(mem memory.Allocator) {
	if mem == nil {
		return
	}
	for i, raw := range al.allocations {
		if raw != nil {
			mem.Free(raw)
			al.allocations[i] = nil
		}
	}
}

func (al *AllocationList) Reset() {
	clear(al.allocations)
	al.allocations = al.allocations[:0]
}

func (al *AllocationList) Count() int {
	return len(al.allocations)
}

// Bytes sums the tracked allocation sizes.
func (al *AllocationList) Bytes() int {
	n := 0
	for _, raw := range al.allocations {
		n += len(raw)
	}
	return n
}

// Carve allocates n zeroed slots from mem and registers them with al.
// Zero slots register nothing and return nil.
func Carve[T any](al *AllocationList, mem memory.Allocator, n int) ([]T, error) {
	if n < 0 {
		return nil, errors.OutOfRange(errors.PhaseMarshal, nil, n, "negative slot count")
	}
	if n == 0 {
		return nil, nil
	}
	raw, err := allocate[T](mem, n)
	if err != nil {
		return nil, err
	}
	al.Add(raw)
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n), nil
}
