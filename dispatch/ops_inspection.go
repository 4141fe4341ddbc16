package dispatch

import (
	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/oracle"
	"github.com/wippyai/h3-runtime/value"
)

func inspectionOps() []*Descriptor {
	predicate := func(name, doc string, fn func(native.Library, native.Cell) bool) *Descriptor {
		return &Descriptor{
			Name:   name,
			Doc:    doc,
			Params: params(cell("h")),
			Result: typeBool,
			handler: func(c *Call) (value.Value, error) {
				return value.Bool(fn(c.Lib, c.Cell(0))), nil
			},
		}
	}

	return withGroup(GroupInspection, []*Descriptor{
		{
			Name:   "h3GetResolution",
			Doc:    "Resolution of a cell.",
			Params: params(cell("h")),
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				return value.Int(int64(c.Lib.H3GetResolution(c.Cell(0)))), nil
			},
		},
		{
			Name:   "h3GetBaseCell",
			Doc:    "Base cell number of a cell.",
			Params: params(cell("h")),
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				return value.Int(int64(c.Lib.H3GetBaseCell(c.Cell(0)))), nil
			},
		},
		predicate("h3IsValid", "Whether the index is a valid cell.", native.Library.H3IsValid),
		predicate("h3IsResClassIII", "Whether the cell has a Class III resolution.", native.Library.H3IsResClassIII),
		predicate("h3IsPentagon", "Whether the cell is a pentagon.", native.Library.H3IsPentagon),
		{
			Name:   "maxFaceCount",
			Doc:    "Upper bound on the icosahedron faces a cell intersects.",
			Params: params(cell("h")),
			Result: typeInt,
			handler: func(c *Call) (value.Value, error) {
				return c.size(oracle.Faces(c.Lib, c.Cell(0)))
			},
		},
		{
			Name:   "h3GetFaces",
			Doc:    "Icosahedron faces a cell intersects. Unused slots are dropped.",
			Params: params(cell("h")),
			Result: typeFaces,
			handler: func(c *Call) (value.Value, error) {
				h := c.Cell(0)
				faces, err := marshal.Fill(c.Mem, marshal.Call[int32]{
					Op:    c.Desc.Name,
					Bound: func() (int, error) { return oracle.Faces(c.Lib, h) },
					Invoke: func(out []int32) int {
						c.Lib.H3GetFaces(h, out)
						return 0
					},
					Sentinel: func(f int32) bool { return f < 0 },
					Policy:   marshal.SkipSentinel,
				})
				if err != nil {
					return value.Null(), err
				}
				return codec.IntsValue(faces), nil
			},
		},
	})
}
