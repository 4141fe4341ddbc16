package dispatch

import (
	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/linked"
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/oracle"
	"github.com/wippyai/h3-runtime/polygon"
	"github.com/wippyai/h3-runtime/value"
)

func regionOps() []*Descriptor {
	return withGroup(GroupRegions, []*Descriptor{
		{
			Name:   "polyfill",
			Doc:    "Cells whose centers lie inside the polygon.",
			Params: params(polygonOf("polygon"), integer("res")),
			Result: typeCells,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(1)
				if err != nil {
					return value.Null(), err
				}
				return polygon.With(c.Mem, c.Args[0], c.path(0), func(poly *native.GeoPolygon) (value.Value, error) {
					return c.fillCells(
						func() (int, error) { return oracle.Polyfill(c.Lib, poly, res) },
						func(out []native.Cell) int {
							c.Lib.Polyfill(poly, res, out)
							return 0
						},
						marshal.SkipSentinel)
				})
			},
		},
		{
			Name:   "maxPolyfillSize",
			Doc:    "Upper bound on the cells polyfill returns.",
			Params: params(polygonOf("polygon"), integer("res")),
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(1)
				if err != nil {
					return value.Null(), err
				}
				return polygon.With(c.Mem, c.Args[0], c.path(0), func(poly *native.GeoPolygon) (value.Value, error) {
					return c.size(oracle.Polyfill(c.Lib, poly, res))
				})
			},
		},
		{
			Name:   "h3SetToLinkedGeo",
			Doc:    "Outline of a cell set as polygons of loops in degrees.",
			Params: params(cellSet("set")),
			Result: typeMultiPolygon,
			handler: func(c *Call) (value.Value, error) {
				cells, err := c.Cells(0)
				if err != nil {
					return value.Null(), err
				}
				mp, err := linked.CellsToMultiPolygon(c.Lib, c.Mem, cells)
				if err != nil {
					return value.Null(), err
				}
				return codec.MultiPolygonValue(mp), nil
			},
		},
	})
}
