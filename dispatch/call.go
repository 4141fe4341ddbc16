package dispatch

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/value"
)

// Call is one bound invocation. Args are already checked against the
// descriptor.
type Call struct {
	Desc *Descriptor
	Args []value.Value
	Lib  native.Library
	Mem  memory.Allocator
}

func (c *Call) path(i int) []string {
	return []string{c.Desc.Params[i].Name}
}

// Cell returns argument i as a cell.
func (c *Call) Cell(i int) native.Cell {
	h, _ := codec.Cell(c.Args[i], c.path(i))
	return h
}

// Int returns argument i as a C int.
func (c *Call) Int(i int) (int, error) {
	return codec.Int(c.Args[i], c.path(i))
}

// Res returns argument i as a grid resolution.
func (c *Call) Res(i int) (int, error) {
	r, err := c.Int(i)
	if err != nil {
		return 0, err
	}
	if r < 0 || r > native.MaxResolution {
		return 0, errors.OutOfRange(errors.PhaseParam, c.path(i), r, "resolution must be within 0..15")
	}
	return r, nil
}

// Radius returns argument i as a non-negative grid distance.
func (c *Call) Radius(i int) (int, error) {
	k, err := c.Int(i)
	if err != nil {
		return 0, err
	}
	if k < 0 {
		return 0, errors.OutOfRange(errors.PhaseParam, c.path(i), k, "radius must be non-negative")
	}
	return k, nil
}

// Float returns argument i as a float.
func (c *Call) Float(i int) float64 {
	f, _ := c.Args[i].AsFloat()
	return f
}

// String returns argument i as a string.
func (c *Call) String(i int) string {
	s, _ := c.Args[i].AsString()
	return s
}

// Cells returns argument i as a cell set.
func (c *Call) Cells(i int) ([]native.Cell, error) {
	return codec.Cells(c.Args[i], c.path(i))
}

// Coord returns argument i as a radian coordinate.
func (c *Call) Coord(i int) (native.GeoCoord, error) {
	return codec.GeoCoordFrom(c.Args[i], c.path(i))
}

// fillCells runs a cell-valued marshalled call and encodes the result.
func (c *Call) fillCells(bound func() (int, error), invoke func([]native.Cell) int, policy marshal.Policy) (value.Value, error) {
	cells, err := marshal.Fill(c.Mem, marshal.Call[native.Cell]{
		Op:     c.Desc.Name,
		Bound:  bound,
		Invoke: invoke,
		Policy: policy,
	})
	if err != nil {
		return value.Null(), err
	}
	return codec.CellsValue(cells), nil
}

// fillDistances runs a cell and distance call and encodes [cells, distances].
func (c *Call) fillDistances(bound func() (int, error), invoke func([]native.Cell, []int32) int, policy marshal.Policy) (value.Value, error) {
	cells, dist, err := marshal.FillPair(c.Mem, marshal.PairCall[native.Cell, int32]{
		Op:     c.Desc.Name,
		Bound:  bound,
		Invoke: invoke,
		Policy: policy,
	})
	if err != nil {
		return value.Null(), err
	}
	return value.Seq(codec.CellsValue(cells), codec.IntsValue(dist)), nil
}

// withSet copies a cell set argument into native memory for fn.
func (c *Call) withSet(i int, fn func(set []native.Cell) (value.Value, error)) (value.Value, error) {
	cells, err := c.Cells(i)
	if err != nil {
		return value.Null(), err
	}
	in, err := marshal.Input(c.Mem, cells)
	if err != nil {
		return value.Null(), err
	}
	defer in.Release()
	return fn(in.Slots)
}

// size converts a size query answer, treating negatives as native failure.
func (c *Call) size(n int, err error) (value.Value, error) {
	if err != nil {
		return value.Null(), err
	}
	return value.Int(int64(n)), nil
}

func (c *Call) status(st int) error {
	if st != 0 {
		return errors.NativeFailure(c.Desc.Name, st)
	}
	return nil
}

func (c *Call) nonZero(h native.Cell) (value.Value, error) {
	if h == 0 {
		return value.Null(), errors.NativeFailure(c.Desc.Name, 0)
	}
	return codec.CellValue(h), nil
}
