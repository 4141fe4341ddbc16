// Package native declares the contract of the hexagonal grid library the
// bridge marshals for.
//
// The contract is C-style. Variable-length outputs are written into caller
// supplied slices whose length must equal the matching size query's answer.
// Operations that can fail return an int status where zero means success.
// One operation produces a linked multi-polygon that must be released with
// DestroyLinkedPolygon.
package native

import "github.com/apache/arrow-go/v18/arrow/memory"

// Indexer converts between coordinates, cells and cell strings.
type Indexer interface {
	GeoToH3(g GeoCoord, res int) Cell
	H3ToGeo(h Cell) GeoCoord
	H3ToGeoBoundary(h Cell) GeoBoundary
	StringToH3(s string) Cell
	H3ToString(h Cell) string
}

// Inspector answers per-cell predicates.
type Inspector interface {
	H3GetResolution(h Cell) int
	H3GetBaseCell(h Cell) int
	H3IsValid(h Cell) bool
	H3IsResClassIII(h Cell) bool
	H3IsPentagon(h Cell) bool
	MaxFaceCount(h Cell) int
	// H3GetFaces fills out with icosahedron face numbers, -1 in unused slots.
	H3GetFaces(h Cell, out []int32)
}

// Traverser covers grid neighborhoods, lines and local coordinates.
type Traverser interface {
	MaxKringSize(k int) int
	KRing(h Cell, k int, out []Cell)
	KRingDistances(h Cell, k int, out []Cell, dist []int32)
	HexRange(h Cell, k int, out []Cell) int
	HexRangeDistances(h Cell, k int, out []Cell, dist []int32) int
	HexRanges(set []Cell, k int, out []Cell) int
	HexRing(h Cell, k int, out []Cell) int
	H3LineSize(a, b Cell) int
	H3Line(a, b Cell, out []Cell) int
	H3Distance(a, b Cell) int
	ExperimentalH3ToLocalIj(origin, h Cell) (CoordIJ, int)
	ExperimentalLocalIjToH3(origin Cell, ij CoordIJ) (Cell, int)
}

// Hierarchy moves between resolutions.
type Hierarchy interface {
	H3ToParent(h Cell, res int) Cell
	MaxH3ToChildrenSize(h Cell, res int) int
	H3ToChildren(h Cell, res int, out []Cell)
	H3ToCenterChild(h Cell, res int) Cell
	Compact(set []Cell, out []Cell) int
	MaxUncompactSize(set []Cell, res int) int
	Uncompact(set []Cell, out []Cell, res int) int
}

// Edges covers unidirectional edges.
type Edges interface {
	H3IndexesAreNeighbors(a, b Cell) bool
	GetH3UnidirectionalEdge(a, b Cell) Cell
	H3UnidirectionalEdgeIsValid(e Cell) bool
	GetOriginH3IndexFromUnidirectionalEdge(e Cell) Cell
	GetDestinationH3IndexFromUnidirectionalEdge(e Cell) Cell
	GetH3IndexesFromUnidirectionalEdge(e Cell, out []Cell)
	GetH3UnidirectionalEdgesFromHexagon(h Cell, out []Cell)
	GetH3UnidirectionalEdgeBoundary(e Cell) GeoBoundary
}

// Regions converts between polygons and cell sets.
type Regions interface {
	MaxPolyfillSize(poly *GeoPolygon, res int) int
	Polyfill(poly *GeoPolygon, res int, out []Cell)
	// H3SetToLinkedGeo returns nil when no polygon was produced.
	H3SetToLinkedGeo(set []Cell) LinkedPolygon
	DestroyLinkedPolygon(p LinkedPolygon)
}

// Metrics covers areas, lengths, counts and distances.
type Metrics interface {
	HexAreaKm2(res int) float64
	HexAreaM2(res int) float64
	CellAreaKm2(h Cell) float64
	CellAreaM2(h Cell) float64
	CellAreaRads2(h Cell) float64
	EdgeLengthKm(res int) float64
	EdgeLengthM(res int) float64
	ExactEdgeLengthKm(e Cell) float64
	ExactEdgeLengthM(e Cell) float64
	ExactEdgeLengthRads(e Cell) float64
	NumHexagons(res int) int64
	Res0IndexCount() int
	GetRes0Indexes(out []Cell)
	PentagonIndexCount() int
	GetPentagonIndexes(res int, out []Cell)
	PointDistKm(a, b GeoCoord) float64
	PointDistM(a, b GeoCoord) float64
	PointDistRads(a, b GeoCoord) float64
}

// Library is the full native surface plus the allocator its buffers and
// encoded polygons must come from.
type Library interface {
	Indexer
	Inspector
	Traverser
	Hierarchy
	Edges
	Regions
	Metrics

	Allocator() memory.Allocator
}
