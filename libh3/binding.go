//go:build cgo && h3

package libh3

/*
#cgo LDFLAGS: -lh3
#include <stdlib.h>
#include <h3/h3api.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/arrow/memory/mallocator"

	"github.com/wippyai/h3-runtime/native"
)

const available = true

// Version returns the linked library version.
func Version() string {
	return fmt.Sprintf("%d.%d.%d", C.H3_VERSION_MAJOR, C.H3_VERSION_MINOR, C.H3_VERSION_PATCH)
}

// Library calls libh3 directly. It holds no state besides the allocator and
// is safe for concurrent use.
type Library struct {
	mem memory.Allocator
}

var _ native.Library = (*Library)(nil)

func open() (native.Library, error) {
	return &Library{mem: mallocator.NewMallocator()}, nil
}

// Allocator returns a C heap allocator.
func (l *Library) Allocator() memory.Allocator { return l.mem }

func cell(h native.Cell) C.H3Index { return C.H3Index(h) }

func cells(s []native.Cell) *C.H3Index {
	if len(s) == 0 {
		return nil
	}
	return (*C.H3Index)(unsafe.Pointer(&s[0]))
}

func ints(s []int32) *C.int {
	if len(s) == 0 {
		return nil
	}
	return (*C.int)(unsafe.Pointer(&s[0]))
}

func coord(g native.GeoCoord) C.GeoCoord {
	return C.GeoCoord{lat: C.double(g.Lat), lon: C.double(g.Lon)}
}

func goCoord(g C.GeoCoord) native.GeoCoord {
	return native.GeoCoord{Lat: float64(g.lat), Lon: float64(g.lon)}
}

func boundary(cb *C.GeoBoundary) native.GeoBoundary {
	b := native.GeoBoundary{NumVerts: int(cb.numVerts)}
	for i := 0; i < b.NumVerts && i < native.MaxCellBoundaryVerts; i++ {
		b.Verts[i] = goCoord(cb.verts[i])
	}
	return b
}

func truth(v C.int) bool { return v != 0 }

// Indexer

func (l *Library) GeoToH3(g native.GeoCoord, res int) native.Cell {
	c := coord(g)
	return native.Cell(C.geoToH3(&c, C.int(res)))
}

func (l *Library) H3ToGeo(h native.Cell) native.GeoCoord {
	var g C.GeoCoord
	C.h3ToGeo(cell(h), &g)
	return goCoord(g)
}

func (l *Library) H3ToGeoBoundary(h native.Cell) native.GeoBoundary {
	var b C.GeoBoundary
	C.h3ToGeoBoundary(cell(h), &b)
	return boundary(&b)
}

func (l *Library) StringToH3(s string) native.Cell {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return native.Cell(C.stringToH3(cs))
}

func (l *Library) H3ToString(h native.Cell) string {
	var buf [native.CellStringLen]C.char
	C.h3ToString(cell(h), &buf[0], C.size_t(len(buf)))
	return C.GoString(&buf[0])
}

// Inspector

func (l *Library) H3GetResolution(h native.Cell) int {
	return int(C.h3GetResolution(cell(h)))
}

func (l *Library) H3GetBaseCell(h native.Cell) int {
	return int(C.h3GetBaseCell(cell(h)))
}

func (l *Library) H3IsValid(h native.Cell) bool {
	return truth(C.h3IsValid(cell(h)))
}

func (l *Library) H3IsResClassIII(h native.Cell) bool {
	return truth(C.h3IsResClassIII(cell(h)))
}

func (l *Library) H3IsPentagon(h native.Cell) bool {
	return truth(C.h3IsPentagon(cell(h)))
}

func (l *Library) MaxFaceCount(h native.Cell) int {
	return int(C.maxFaceCount(cell(h)))
}

func (l *Library) H3GetFaces(h native.Cell, out []int32) {
	if len(out) == 0 {
		return
	}
	C.h3GetFaces(cell(h), ints(out))
}

// Traverser

func (l *Library) MaxKringSize(k int) int { return int(C.maxKringSize(C.int(k))) }

func (l *Library) KRing(h native.Cell, k int, out []native.Cell) {
	C.kRing(cell(h), C.int(k), cells(out))
}

func (l *Library) KRingDistances(h native.Cell, k int, out []native.Cell, dist []int32) {
	C.kRingDistances(cell(h), C.int(k), cells(out), ints(dist))
}

func (l *Library) HexRange(h native.Cell, k int, out []native.Cell) int {
	return int(C.hexRange(cell(h), C.int(k), cells(out)))
}

func (l *Library) HexRangeDistances(h native.Cell, k int, out []native.Cell, dist []int32) int {
	return int(C.hexRangeDistances(cell(h), C.int(k), cells(out), ints(dist)))
}

func (l *Library) HexRanges(set []native.Cell, k int, out []native.Cell) int {
	if len(set) == 0 {
		return 0
	}
	return int(C.hexRanges(cells(set), C.int(len(set)), C.int(k), cells(out)))
}

func (l *Library) HexRing(h native.Cell, k int, out []native.Cell) int {
	return int(C.hexRing(cell(h), C.int(k), cells(out)))
}

func (l *Library) H3LineSize(a, b native.Cell) int {
	return int(C.h3LineSize(cell(a), cell(b)))
}

func (l *Library) H3Line(a, b native.Cell, out []native.Cell) int {
	return int(C.h3Line(cell(a), cell(b), cells(out)))
}

func (l *Library) H3Distance(a, b native.Cell) int {
	return int(C.h3Distance(cell(a), cell(b)))
}

func (l *Library) ExperimentalH3ToLocalIj(origin, h native.Cell) (native.CoordIJ, int) {
	var ij C.CoordIJ
	st := C.experimentalH3ToLocalIj(cell(origin), cell(h), &ij)
	return native.CoordIJ{I: int(ij.i), J: int(ij.j)}, int(st)
}

func (l *Library) ExperimentalLocalIjToH3(origin native.Cell, ij native.CoordIJ) (native.Cell, int) {
	cij := C.CoordIJ{i: C.int(ij.I), j: C.int(ij.J)}
	var out C.H3Index
	st := C.experimentalLocalIjToH3(cell(origin), &cij, &out)
	return native.Cell(out), int(st)
}

// Hierarchy

func (l *Library) H3ToParent(h native.Cell, res int) native.Cell {
	return native.Cell(C.h3ToParent(cell(h), C.int(res)))
}

func (l *Library) MaxH3ToChildrenSize(h native.Cell, res int) int {
	return int(C.maxH3ToChildrenSize(cell(h), C.int(res)))
}

func (l *Library) H3ToChildren(h native.Cell, res int, out []native.Cell) {
	if len(out) == 0 {
		return
	}
	C.h3ToChildren(cell(h), C.int(res), cells(out))
}

func (l *Library) H3ToCenterChild(h native.Cell, res int) native.Cell {
	return native.Cell(C.h3ToCenterChild(cell(h), C.int(res)))
}

func (l *Library) Compact(set []native.Cell, out []native.Cell) int {
	if len(set) == 0 {
		return 0
	}
	return int(C.compact(cells(set), cells(out), C.int(len(set))))
}

func (l *Library) MaxUncompactSize(set []native.Cell, res int) int {
	if len(set) == 0 {
		return 0
	}
	return int(C.maxUncompactSize(cells(set), C.int(len(set)), C.int(res)))
}

func (l *Library) Uncompact(set []native.Cell, out []native.Cell, res int) int {
	if len(set) == 0 {
		return 0
	}
	return int(C.uncompact(cells(set), C.int(len(set)), cells(out), C.int(len(out)), C.int(res)))
}

// Edges

func (l *Library) H3IndexesAreNeighbors(a, b native.Cell) bool {
	return truth(C.h3IndexesAreNeighbors(cell(a), cell(b)))
}

func (l *Library) GetH3UnidirectionalEdge(a, b native.Cell) native.Cell {
	return native.Cell(C.getH3UnidirectionalEdge(cell(a), cell(b)))
}

func (l *Library) H3UnidirectionalEdgeIsValid(e native.Cell) bool {
	return truth(C.h3UnidirectionalEdgeIsValid(cell(e)))
}

func (l *Library) GetOriginH3IndexFromUnidirectionalEdge(e native.Cell) native.Cell {
	return native.Cell(C.getOriginH3IndexFromUnidirectionalEdge(cell(e)))
}

func (l *Library) GetDestinationH3IndexFromUnidirectionalEdge(e native.Cell) native.Cell {
	return native.Cell(C.getDestinationH3IndexFromUnidirectionalEdge(cell(e)))
}

func (l *Library) GetH3IndexesFromUnidirectionalEdge(e native.Cell, out []native.Cell) {
	C.getH3IndexesFromUnidirectionalEdge(cell(e), cells(out))
}

func (l *Library) GetH3UnidirectionalEdgesFromHexagon(h native.Cell, out []native.Cell) {
	C.getH3UnidirectionalEdgesFromHexagon(cell(h), cells(out))
}

func (l *Library) GetH3UnidirectionalEdgeBoundary(e native.Cell) native.GeoBoundary {
	var b C.GeoBoundary
	C.getH3UnidirectionalEdgeBoundary(cell(e), &b)
	return boundary(&b)
}

// Metrics

func (l *Library) HexAreaKm2(res int) float64   { return float64(C.hexAreaKm2(C.int(res))) }
func (l *Library) HexAreaM2(res int) float64    { return float64(C.hexAreaM2(C.int(res))) }
func (l *Library) EdgeLengthKm(res int) float64 { return float64(C.edgeLengthKm(C.int(res))) }
func (l *Library) EdgeLengthM(res int) float64  { return float64(C.edgeLengthM(C.int(res))) }

func (l *Library) CellAreaKm2(h native.Cell) float64   { return float64(C.cellAreaKm2(cell(h))) }
func (l *Library) CellAreaM2(h native.Cell) float64    { return float64(C.cellAreaM2(cell(h))) }
func (l *Library) CellAreaRads2(h native.Cell) float64 { return float64(C.cellAreaRads2(cell(h))) }

func (l *Library) ExactEdgeLengthKm(e native.Cell) float64 {
	return float64(C.exactEdgeLengthKm(cell(e)))
}

func (l *Library) ExactEdgeLengthM(e native.Cell) float64 {
	return float64(C.exactEdgeLengthM(cell(e)))
}

func (l *Library) ExactEdgeLengthRads(e native.Cell) float64 {
	return float64(C.exactEdgeLengthRads(cell(e)))
}

func (l *Library) NumHexagons(res int) int64 { return int64(C.numHexagons(C.int(res))) }

func (l *Library) Res0IndexCount() int { return int(C.res0IndexCount()) }

func (l *Library) GetRes0Indexes(out []native.Cell) {
	C.getRes0Indexes(cells(out))
}

func (l *Library) PentagonIndexCount() int { return int(C.pentagonIndexCount()) }

func (l *Library) GetPentagonIndexes(res int, out []native.Cell) {
	C.getPentagonIndexes(C.int(res), cells(out))
}

func (l *Library) PointDistKm(a, b native.GeoCoord) float64 {
	ca, cb := coord(a), coord(b)
	return float64(C.pointDistKm(&ca, &cb))
}

func (l *Library) PointDistM(a, b native.GeoCoord) float64 {
	ca, cb := coord(a), coord(b)
	return float64(C.pointDistM(&ca, &cb))
}

func (l *Library) PointDistRads(a, b native.GeoCoord) float64 {
	ca, cb := coord(a), coord(b)
	return float64(C.pointDistRads(&ca, &cb))
}
