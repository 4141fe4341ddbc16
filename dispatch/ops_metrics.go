package dispatch

import (
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/oracle"
	"github.com/wippyai/h3-runtime/value"
)

func metricOps() []*Descriptor {
	byRes := func(name, doc string, fn func(native.Library, int) float64) *Descriptor {
		return &Descriptor{
			Name:   name,
			Doc:    doc,
			Params: params(integer("res")),
			Result: typeFloat,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(0)
				if err != nil {
					return value.Null(), err
				}
				return value.Float(fn(c.Lib, res)), nil
			},
		}
	}
	byCell := func(name, param, doc string, fn func(native.Library, native.Cell) float64) *Descriptor {
		return &Descriptor{
			Name:   name,
			Doc:    doc,
			Params: params(cell(param)),
			Result: typeFloat,
			handler: func(c *Call) (value.Value, error) {
				return value.Float(fn(c.Lib, c.Cell(0))), nil
			},
		}
	}
	pointDist := func(name, doc string, fn func(native.Library, native.GeoCoord, native.GeoCoord) float64) *Descriptor {
		return &Descriptor{
			Name:   name,
			Doc:    doc,
			Params: params(latLng("a"), latLng("b")),
			Result: typeFloat,
			handler: func(c *Call) (value.Value, error) {
				a, err := c.Coord(0)
				if err != nil {
					return value.Null(), err
				}
				b, err := c.Coord(1)
				if err != nil {
					return value.Null(), err
				}
				return value.Float(fn(c.Lib, a, b)), nil
			},
		}
	}

	return withGroup(GroupMetrics, []*Descriptor{
		byRes("hexAreaKm2", "Average hexagon area at res in square kilometers.", native.Library.HexAreaKm2),
		byRes("hexAreaM2", "Average hexagon area at res in square meters.", native.Library.HexAreaM2),
		byCell("cellAreaKm2", "h", "Exact area of a cell in square kilometers.", native.Library.CellAreaKm2),
		byCell("cellAreaM2", "h", "Exact area of a cell in square meters.", native.Library.CellAreaM2),
		byCell("cellAreaRads2", "h", "Exact area of a cell in square radians.", native.Library.CellAreaRads2),
		byRes("edgeLengthKm", "Average hexagon edge length at res in kilometers.", native.Library.EdgeLengthKm),
		byRes("edgeLengthM", "Average hexagon edge length at res in meters.", native.Library.EdgeLengthM),
		byCell("exactEdgeLengthKm", "edge", "Length of a directed edge in kilometers.", native.Library.ExactEdgeLengthKm),
		byCell("exactEdgeLengthM", "edge", "Length of a directed edge in meters.", native.Library.ExactEdgeLengthM),
		byCell("exactEdgeLengthRads", "edge", "Length of a directed edge in radians.", native.Library.ExactEdgeLengthRads),
		{
			Name:   "numHexagons",
			Doc:    "Number of cells at res.",
			Params: params(integer("res")),
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(0)
				if err != nil {
					return value.Null(), err
				}
				return value.Int(c.Lib.NumHexagons(res)), nil
			},
		},
		{
			Name:   "getRes0Indexes",
			Doc:    "Every resolution 0 cell.",
			Result: typeCells,
			handler: func(c *Call) (value.Value, error) {
				return c.fillCells(
					func() (int, error) { return oracle.Res0(c.Lib) },
					func(out []native.Cell) int {
						c.Lib.GetRes0Indexes(out)
						return 0
					},
					marshal.Full)
			},
		},
		{
			Name:   "res0IndexCount",
			Doc:    "Number of resolution 0 cells.",
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				return c.size(oracle.Res0(c.Lib))
			},
		},
		{
			Name:   "getPentagonIndexes",
			Doc:    "Every pentagon at res.",
			Params: params(integer("res")),
			Result: typeCells,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Res(0)
				if err != nil {
					return value.Null(), err
				}
				return c.fillCells(
					func() (int, error) { return oracle.Pentagons(c.Lib) },
					func(out []native.Cell) int {
						c.Lib.GetPentagonIndexes(res, out)
						return 0
					},
					marshal.Full)
			},
		},
		{
			Name:   "pentagonIndexCount",
			Doc:    "Number of pentagons at any resolution.",
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				return c.size(oracle.Pentagons(c.Lib))
			},
		},
		pointDist("pointDistKm", "Great circle distance between two points in kilometers.", native.Library.PointDistKm),
		pointDist("pointDistM", "Great circle distance between two points in meters.", native.Library.PointDistM),
		pointDist("pointDistRads", "Great circle distance between two points in radians.", native.Library.PointDistRads),
	})
}
