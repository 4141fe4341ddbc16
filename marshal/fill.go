// Package marshal implements the size-query, allocate, invoke, copy and
// release cycle shared by every variable-output native operation.
//
// Scratch buffers come from an arrow memory.Allocator and never outlive the
// call that created them. Results are copied into Go memory before the
// buffer is released.
package marshal

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/wippyai/h3-runtime/errors"
)

// Policy selects how live entries are copied out of a scratch buffer.
type Policy uint8

const (
	// Full copies every slot up to the bound.
	Full Policy = iota
	// StopAtSentinel copies the prefix before the first sentinel slot.
	StopAtSentinel
	// SkipSentinel copies every non-sentinel slot in buffer order.
	SkipSentinel
)

func (p Policy) String() string {
	switch p {
	case Full:
		return "full"
	case StopAtSentinel:
		return "stop_at_sentinel"
	case SkipSentinel:
		return "skip_sentinel"
	}
	return "unknown"
}

// Call describes one variable-output native call.
type Call[T comparable] struct {
	// Op names the operation in errors.
	Op string
	// Bound returns the slot count to allocate. It runs immediately before
	// Invoke with the same inputs.
	Bound func() (int, error)
	// Invoke fills out and returns the native status, zero on success.
	Invoke func(out []T) int
	// Sentinel marks unused slots. Nil means the zero value.
	Sentinel func(T) bool
	Policy   Policy
}

// PairCall describes a native call that fills two parallel buffers, such as
// cells and their grid distances. The sentinel is judged on the first.
type PairCall[T comparable, D any] struct {
	Op       string
	Bound    func() (int, error)
	Invoke   func(out []T, aux []D) int
	Sentinel func(T) bool
	Policy   Policy
}

// Fill runs c and returns a Go-owned copy of the live entries. A non-zero
// native status yields an error and no data. The scratch buffer is released
// on every path.
func Fill[T comparable](mem memory.Allocator, c Call[T]) ([]T, error) {
	n, err := bound(c.Op, c.Bound)
	if err != nil {
		return nil, err
	}

	buf, err := Alloc[T](mem, n)
	if err != nil {
		return nil, errors.WithOp(err, c.Op)
	}
	defer buf.Release()

	if status := c.Invoke(buf.Slots); status != 0 {
		return nil, errors.NativeFailure(c.Op, status)
	}

	live := isLive(c.Sentinel)
	out := make([]T, 0, n)
	for _, v := range buf.Slots {
		if live(v) {
			out = append(out, v)
			continue
		}
		if c.Policy == StopAtSentinel {
			break
		}
		if c.Policy == Full {
			out = append(out, v)
		}
	}
	return out, nil
}

// FillPair is Fill for two parallel buffers of the same bound.
func FillPair[T comparable, D any](mem memory.Allocator, c PairCall[T, D]) ([]T, []D, error) {
	n, err := bound(c.Op, c.Bound)
	if err != nil {
		return nil, nil, err
	}

	buf, err := Alloc[T](mem, n)
	if err != nil {
		return nil, nil, errors.WithOp(err, c.Op)
	}
	defer buf.Release()

	aux, err := Alloc[D](mem, n)
	if err != nil {
		return nil, nil, errors.WithOp(err, c.Op)
	}
	defer aux.Release()

	if status := c.Invoke(buf.Slots, aux.Slots); status != 0 {
		return nil, nil, errors.NativeFailure(c.Op, status)
	}

	live := isLive(c.Sentinel)
	out := make([]T, 0, n)
	dist := make([]D, 0, n)
	for i, v := range buf.Slots {
		if !live(v) {
			if c.Policy == StopAtSentinel {
				break
			}
			if c.Policy == SkipSentinel {
				continue
			}
		}
		out = append(out, v)
		dist = append(dist, aux.Slots[i])
	}
	return out, dist, nil
}

func bound(op string, fn func() (int, error)) (int, error) {
	n, err := fn()
	if err != nil {
		return 0, errors.WithOp(err, op)
	}
	if n < 0 {
		return 0, errors.New(errors.PhaseOracle, errors.KindOutOfRange).
			Op(op).
			Value(n).
			Detail("negative capacity %d", n).
			Build()
	}
	return n, nil
}

func isLive[T comparable](fn func(T) bool) func(T) bool {
	if fn == nil {
		var zero T
		return func(v T) bool { return v != zero }
	}
	return func(v T) bool { return !fn(v) }
}
