package dispatch

import (
	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/oracle"
	"github.com/wippyai/h3-runtime/value"
)

func hierarchyOps() []*Descriptor {
	return withGroup(GroupHierarchy, []*Descriptor{
		{
			Name:   "h3ToParent",
			Doc:    "Parent of a cell at a coarser resolution. 0 when res is finer than the cell.",
			Params: params(cell("h"), integer("res")),
			Result: typeCell,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(1)
				if err != nil {
					return value.Null(), err
				}
				return codec.CellValue(c.Lib.H3ToParent(c.Cell(0), res)), nil
			},
		},
		{
			Name:   "h3ToChildren",
			Doc:    "Children of a cell at a finer resolution.",
			Params: params(cell("h"), integer("res")),
			Result: typeCells,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(1)
				if err != nil {
					return value.Null(), err
				}
				h := c.Cell(0)
				return c.fillCells(
					func() (int, error) { return oracle.Children(c.Lib, h, res) },
					func(out []native.Cell) int {
						c.Lib.H3ToChildren(h, res, out)
						return 0
					},
					marshal.SkipSentinel)
			},
		},
		{
			Name:   "maxH3ToChildrenSize",
			Doc:    "Upper bound on the children of a cell at res.",
			Params: params(cell("h"), integer("res")),
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(1)
				if err != nil {
					return value.Null(), err
				}
				return c.size(oracle.Children(c.Lib, c.Cell(0), res))
			},
		},
		{
			Name:   "h3ToCenterChild",
			Doc:    "Center child of a cell at a finer resolution.",
			Params: params(cell("h"), integer("res")),
			Result: typeCell,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(1)
				if err != nil {
					return value.Null(), err
				}
				return codec.CellValue(c.Lib.H3ToCenterChild(c.Cell(0), res)), nil
			},
		},
		{
			Name:     "h3Compact",
			Doc:      "Replace complete sibling groups by their parents.",
			Params:   params(cellSet("set")),
			Result:   typeCells,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				return c.withSet(0, func(set []native.Cell) (value.Value, error) {
					return c.fillCells(
						func() (int, error) { return oracle.Compact(len(set)) },
						func(out []native.Cell) int { return c.Lib.Compact(set, out) },
						marshal.StopAtSentinel)
				})
			},
		},
		{
			Name:     "uncompact",
			Doc:      "Expand a compacted set to a single resolution.",
			Params:   params(cellSet("set"), integer("res")),
			Result:   typeCells,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(1)
				if err != nil {
					return value.Null(), err
				}
				return c.withSet(0, func(set []native.Cell) (value.Value, error) {
					return c.fillCells(
						func() (int, error) { return oracle.Uncompact(c.Lib, set, res) },
						func(out []native.Cell) int { return c.Lib.Uncompact(set, out, res) },
						marshal.SkipSentinel)
				})
			},
		},
		{
			Name:     "maxUncompactSize",
			Doc:      "Number of cells uncompact would produce. False when a cell is finer than res.",
			Params:   params(cellSet("set"), integer("res")),
			Result:   typeInt,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(1)
				if err != nil {
					return value.Null(), err
				}
				return c.withSet(0, func(set []native.Cell) (value.Value, error) {
					return c.size(oracle.Uncompact(c.Lib, set, res))
				})
			},
		},
	})
}
