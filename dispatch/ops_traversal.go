package dispatch

import (
	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/oracle"
	"github.com/wippyai/h3-runtime/value"
)

// origin and radius arguments shared by the k-ring family.
func (c *Call) originRadius() (native.Cell, int, error) {
	k, err := c.Radius(1)
	if err != nil {
		return 0, 0, err
	}
	return c.Cell(0), k, nil
}

func traversalOps() []*Descriptor {
	return withGroup(GroupTraversal, []*Descriptor{
		{
			Name:   "kRing",
			Doc:    "Cells within grid distance k of the origin, in no particular order.",
			Params: params(cell("origin"), integer("k")),
			Result: typeCells,
			handler: func(c *Call) (value.Value, error) {
				h, k, err := c.originRadius()
				if err != nil {
					return value.Null(), err
				}
				return c.fillCells(
					func() (int, error) { return oracle.KRing(c.Lib, k) },
					func(out []native.Cell) int {
						c.Lib.KRing(h, k, out)
						return 0
					},
					marshal.SkipSentinel)
			},
		},
		{
			Name:   "maxKringSize",
			Doc:    "Number of cells within grid distance k.",
			Params: params(integer("k")),
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				k, err := c.Radius(0)
				if err != nil {
					return value.Null(), err
				}
				return c.size(oracle.KRing(c.Lib, k))
			},
		},
		{
			Name:   "kRingDistances",
			Doc:    "Cells within grid distance k and their distance from the origin.",
			Params: params(cell("origin"), integer("k")),
			Result: typeDistances,
			handler: func(c *Call) (value.Value, error) {
				h, k, err := c.originRadius()
				if err != nil {
					return value.Null(), err
				}
				return c.fillDistances(
					func() (int, error) { return oracle.KRing(c.Lib, k) },
					func(out []native.Cell, dist []int32) int {
						c.Lib.KRingDistances(h, k, out, dist)
						return 0
					},
					marshal.SkipSentinel)
			},
		},
		{
			Name:     "hexRange",
			Doc:      "Cells within grid distance k in spiral order. False when a pentagon is encountered.",
			Params:   params(cell("origin"), integer("k")),
			Result:   typeCells,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				h, k, err := c.originRadius()
				if err != nil {
					return value.Null(), err
				}
				return c.fillCells(
					func() (int, error) { return oracle.KRing(c.Lib, k) },
					func(out []native.Cell) int { return c.Lib.HexRange(h, k, out) },
					marshal.Full)
			},
		},
		{
			Name:     "hexRangeDistances",
			Doc:      "Spiral-ordered cells within grid distance k with their distances.",
			Params:   params(cell("origin"), integer("k")),
			Result:   typeDistances,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				h, k, err := c.originRadius()
				if err != nil {
					return value.Null(), err
				}
				return c.fillDistances(
					func() (int, error) { return oracle.KRing(c.Lib, k) },
					func(out []native.Cell, dist []int32) int { return c.Lib.HexRangeDistances(h, k, out, dist) },
					marshal.Full)
			},
		},
		{
			Name:     "hexRanges",
			Doc:      "Concatenated hex ranges of every cell in the set.",
			Params:   params(cellSet("set"), integer("k")),
			Result:   typeCells,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				k, err := c.Radius(1)
				if err != nil {
					return value.Null(), err
				}
				return c.withSet(0, func(set []native.Cell) (value.Value, error) {
					return c.fillCells(
						func() (int, error) { return oracle.HexRanges(c.Lib, len(set), k) },
						func(out []native.Cell) int { return c.Lib.HexRanges(set, k, out) },
						marshal.Full)
				})
			},
		},
		{
			Name:     "hexRing",
			Doc:      "Hollow ring of cells at exactly grid distance k.",
			Params:   params(cell("origin"), integer("k")),
			Result:   typeCells,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				h, k, err := c.originRadius()
				if err != nil {
					return value.Null(), err
				}
				return c.fillCells(
					func() (int, error) { return oracle.HexRing(k) },
					func(out []native.Cell) int { return c.Lib.HexRing(h, k, out) },
					marshal.Full)
			},
		},
		{
			Name:     "h3Line",
			Doc:      "Cells on the grid path between two cells, inclusive.",
			Params:   params(cell("start"), cell("end")),
			Result:   typeCells,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				a, b := c.Cell(0), c.Cell(1)
				return c.fillCells(
					func() (int, error) { return oracle.Line(c.Lib, a, b) },
					func(out []native.Cell) int { return c.Lib.H3Line(a, b, out) },
					marshal.Full)
			},
		},
		{
			Name:     "h3LineSize",
			Doc:      "Number of cells on the line between two cells.",
			Params:   params(cell("start"), cell("end")),
			Result:   typeInt,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				return c.size(oracle.Line(c.Lib, c.Cell(0), c.Cell(1)))
			},
		},
		{
			Name:     "h3Distance",
			Doc:      "Grid distance between two cells.",
			Params:   params(cell("origin"), cell("h")),
			Result:   typeInt,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				d := c.Lib.H3Distance(c.Cell(0), c.Cell(1))
				if d < 0 {
					return value.Null(), errors.NativeFailure(c.Desc.Name, d)
				}
				return value.Int(int64(d)), nil
			},
		},
		{
			Name:         "experimentalH3ToLocalIj",
			Doc:          "Local IJ coordinates of a cell anchored at origin.",
			Params:       params(cell("origin"), cell("h")),
			Result:       typeCoordIJ,
			Fallible:     true,
			Experimental: true,
			handler: func(c *Call) (value.Value, error) {
				ij, st := c.Lib.ExperimentalH3ToLocalIj(c.Cell(0), c.Cell(1))
				if err := c.status(st); err != nil {
					return value.Null(), err
				}
				return codec.IJValue(ij), nil
			},
		},
		{
			Name:         "experimentalLocalIjToH3",
			Doc:          "Cell at local IJ coordinates anchored at origin.",
			Params:       params(cell("origin"), coordIJ("ij")),
			Result:       typeCell,
			Fallible:     true,
			Experimental: true,
			handler: func(c *Call) (value.Value, error) {
				ij, err := codec.IJFrom(c.Args[1], c.path(1))
				if err != nil {
					return value.Null(), err
				}
				h, st := c.Lib.ExperimentalLocalIjToH3(c.Cell(0), ij)
				if err := c.status(st); err != nil {
					return value.Null(), err
				}
				return codec.CellValue(h), nil
			},
		},
	})
}
