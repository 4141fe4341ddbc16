package marshal

import (
	"math"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/wippyai/h3-runtime/errors"
)

// Buffer is a typed, zeroed view over allocator-owned bytes. T must be a
// fixed-size type without pointers.
type Buffer[T any] struct {
	mem   memory.Allocator
	raw   []byte
	Slots []T
}

// Alloc reserves n zeroed slots from mem. A zero count yields an empty
// buffer that owns no memory.
func Alloc[T any](mem memory.Allocator, n int) (*Buffer[T], error) {
	if n < 0 {
		return nil, errors.OutOfRange(errors.PhaseMarshal, nil, n, "negative slot count")
	}
	b := &Buffer[T]{mem: mem}
	if n == 0 {
		return b, nil
	}

	raw, err := allocate[T](mem, n)
	if err != nil {
		return nil, err
	}

	b.raw = raw
	b.Slots = unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
	return b, nil
}

// allocate reserves n zeroed slots of T as raw bytes. Counts whose byte
// size overflows int fail before reaching the allocator.
func allocate[T any](mem memory.Allocator, n int) ([]byte, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size > 0 && n > math.MaxInt/size {
		return nil, errors.AllocationFailed(errors.PhaseMarshal, n, size)
	}
	raw := mem.Allocate(n * size)
	if len(raw) < n*size {
		if raw != nil {
			mem.Free(raw)
		}
		return nil, errors.AllocationFailed(errors.PhaseMarshal, n, size)
	}
	clear(raw)
	return raw, nil
}

// Input copies items into allocator-owned memory.
func Input[T any](mem memory.Allocator, items []T) (*Buffer[T], error) {
	b, err := Alloc[T](mem, len(items))
	if err != nil {
		return nil, err
	}
	copy(b.Slots, items)
	return b, nil
}

// Len returns the slot count.
func (b *Buffer[T]) Len() int {
	return len(b.Slots)
}

// Bytes returns the reserved size.
func (b *Buffer[T]) Bytes() int {
	return len(b.raw)
}

// Release returns the memory to the allocator. Safe to call more than once.
func (b *Buffer[T]) Release() {
	if b == nil || b.raw == nil {
		return
	}
	b.mem.Free(b.raw)
	b.raw = nil
	b.Slots = nil
}
