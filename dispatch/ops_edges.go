package dispatch

import (
	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/oracle"
	"github.com/wippyai/h3-runtime/value"
)

func edgeOps() []*Descriptor {
	return withGroup(GroupEdges, []*Descriptor{
		{
			Name:   "h3IndexesAreNeighbors",
			Doc:    "Whether two cells share an edge.",
			Params: params(cell("origin"), cell("destination")),
			Result: typeBool,
			handler: func(c *Call) (value.Value, error) {
				return value.Bool(c.Lib.H3IndexesAreNeighbors(c.Cell(0), c.Cell(1))), nil
			},
		},
		{
			Name:     "getH3UnidirectionalEdge",
			Doc:      "Directed edge between two neighboring cells.",
			Params:   params(cell("origin"), cell("destination")),
			Result:   typeCell,
			Fallible: true,
			handler: func(c *Call) (value.Value, error) {
				return c.nonZero(c.Lib.GetH3UnidirectionalEdge(c.Cell(0), c.Cell(1)))
			},
		},
		{
			Name:   "h3UnidirectionalEdgeIsValid",
			Doc:    "Whether the index is a valid directed edge.",
			Params: params(cell("edge")),
			Result: typeBool,
			handler: func(c *Call) (value.Value, error) {
				return value.Bool(c.Lib.H3UnidirectionalEdgeIsValid(c.Cell(0))), nil
			},
		},
		{
			Name:   "getOriginH3IndexFromUnidirectionalEdge",
			Doc:    "Origin cell of a directed edge.",
			Params: params(cell("edge")),
			Result: typeCell,
			handler: func(c *Call) (value.Value, error) {
				return codec.CellValue(c.Lib.GetOriginH3IndexFromUnidirectionalEdge(c.Cell(0))), nil
			},
		},
		{
			Name:   "getDestinationH3IndexFromUnidirectionalEdge",
			Doc:    "Destination cell of a directed edge.",
			Params: params(cell("edge")),
			Result: typeCell,
			handler: func(c *Call) (value.Value, error) {
				return codec.CellValue(c.Lib.GetDestinationH3IndexFromUnidirectionalEdge(c.Cell(0))), nil
			},
		},
		{
			Name:   "getH3IndexesFromUnidirectionalEdge",
			Doc:    "Origin and destination of a directed edge.",
			Params: params(cell("edge")),
			Result: typeCells,
			handler: func(c *Call) (value.Value, error) {
				e := c.Cell(0)
				return c.fillCells(oracle.EdgeEndpoints,
					func(out []native.Cell) int {
						c.Lib.GetH3IndexesFromUnidirectionalEdge(e, out)
						return 0
					},
					marshal.Full)
			},
		},
		{
			Name:   "getH3UnidirectionalEdgesFromHexagon",
			Doc:    "Directed edges leaving a cell. Pentagons have five.",
			Params: params(cell("h")),
			Result: typeCells,
			handler: func(c *Call) (value.Value, error) {
				h := c.Cell(0)
				return c.fillCells(oracle.HexagonEdges,
					func(out []native.Cell) int {
						c.Lib.GetH3UnidirectionalEdgesFromHexagon(h, out)
						return 0
					},
					marshal.SkipSentinel)
			},
		},
		{
			Name:   "getH3UnidirectionalEdgeBoundary",
			Doc:    "Vertices of a directed edge in degrees.",
			Params: params(cell("edge")),
			Result: typeRing,
			handler: func(c *Call) (value.Value, error) {
				return codec.BoundaryValue(c.Lib.GetH3UnidirectionalEdgeBoundary(c.Cell(0))), nil
			},
		},
	})
}
