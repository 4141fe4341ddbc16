package dispatch

import (
	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/value"
)

func withGroup(g Group, ds []*Descriptor) []*Descriptor {
	for _, d := range ds {
		d.Group = g
	}
	return ds
}

func conversionOps() []*Descriptor {
	return withGroup(GroupConversion, []*Descriptor{
		{
			Name:   "geoToH3",
			Doc:    "Index a coordinate in degrees at a resolution.",
			Params: params(float("lat"), float("lon"), integer("res")),
			Result: typeCell,
			handler: func(c *Call) (value.Value, error) {
				res, err := c.Int(2)
				if err != nil {
					return value.Null(), err
				}
				ll := codec.LatLng{Lat: c.Float(0), Lng: c.Float(1)}
				return codec.CellValue(c.Lib.GeoToH3(ll.ToNative(), res)), nil
			},
		},
		{
			Name:   "h3ToGeo",
			Doc:    "Center of a cell in degrees.",
			Params: params(cell("h")),
			Result: typeLatLng,
			handler: func(c *Call) (value.Value, error) {
				return codec.GeoCoordValue(c.Lib.H3ToGeo(c.Cell(0))), nil
			},
		},
		{
			Name:   "h3ToGeoBoundary",
			Doc:    "Boundary vertices of a cell in degrees.",
			Params: params(cell("h")),
			Result: typeRing,
			handler: func(c *Call) (value.Value, error) {
				return codec.BoundaryValue(c.Lib.H3ToGeoBoundary(c.Cell(0))), nil
			},
		},
		{
			Name:   "stringToH3",
			Doc:    "Parse a hexadecimal cell string. Invalid input yields 0.",
			Params: params(str("s")),
			Result: typeCell,
			handler: func(c *Call) (value.Value, error) {
				return codec.CellValue(c.Lib.StringToH3(c.String(0))), nil
			},
		},
		{
			Name:   "h3ToString",
			Doc:    "Hexadecimal form of a cell.",
			Params: params(cell("h")),
			Result: typeString,
			handler: func(c *Call) (value.Value, error) {
				return value.String(c.Lib.H3ToString(c.Cell(0))), nil
			},
		},
		{
			Name:   "degsToRads",
			Doc:    "Convert degrees to radians.",
			Params: params(float("degrees")),
			Result: typeFloat,
			handler: func(c *Call) (value.Value, error) {
				return value.Float(codec.Radians(c.Float(0))), nil
			},
		},
		{
			Name:   "radsToDegs",
			Doc:    "Convert radians to degrees.",
			Params: params(float("radians")),
			Result: typeFloat,
			handler: func(c *Call) (value.Value, error) {
				return value.Float(codec.Degrees(c.Float(0))), nil
			},
		},
	})
}
