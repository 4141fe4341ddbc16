// Package linked decodes native linked multi-polygons.
//
// A linked multi-polygon is three singly linked lists: polygons, the loops
// of each polygon and the vertices of each loop. Decode walks every level,
// converts vertices to degrees and then releases the structure exactly once.
package linked

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
)

// Decode walks root and releases it through lib. A nil root decodes to an
// empty multi-polygon and releases nothing. Polygons without loops are
// dropped.
func Decode(lib native.Regions, root native.LinkedPolygon) codec.MultiPolygon {
	out := codec.MultiPolygon{}
	if root == nil {
		return out
	}
	defer lib.DestroyLinkedPolygon(root)

	for p := root; p != nil; p = p.Next() {
		var poly codec.Polygon
		for l := p.FirstLoop(); l != nil; l = l.Next() {
			loop := codec.Loop{}
			for c := l.FirstCoord(); c != nil; c = c.Next() {
				loop = append(loop, codec.FromNative(c.Vertex()))
			}
			poly = append(poly, loop)
		}
		if len(poly) > 0 {
			out = append(out, poly)
		}
	}
	return out
}

// CellsToMultiPolygon copies cells into native memory, builds their outline
// and decodes it.
func CellsToMultiPolygon(lib native.Regions, mem memory.Allocator, cells []native.Cell) (codec.MultiPolygon, error) {
	in, err := marshal.Input(mem, cells)
	if err != nil {
		return nil, err
	}
	defer in.Release()

	return Decode(lib, lib.H3SetToLinkedGeo(in.Slots)), nil
}
