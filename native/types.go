package native

// Cell is a 64-bit grid cell or unidirectional edge index. The bridge never
// interprets it arithmetically.
type Cell uint64

// Fixed output sizes of the native contract.
const (
	// MaxCellBoundaryVerts is the capacity of GeoBoundary.Verts.
	MaxCellBoundaryVerts = 10
	// PentagonCount is the number of pentagons at every resolution.
	PentagonCount = 12
	// EdgeEndpointCount is the number of cells addressed by an edge.
	EdgeEndpointCount = 2
	// HexagonEdgeCount is the number of edges leaving a hexagon.
	HexagonEdgeCount = 6
	// CellStringLen is the buffer size for a cell's hex string, NUL included.
	CellStringLen = 17
	// MaxResolution is the finest grid resolution.
	MaxResolution = 15
)

// GeoCoord is a latitude/longitude pair in radians.
type GeoCoord struct {
	Lat float64
	Lon float64
}

// GeoBoundary is a cell or edge outline in radians.
type GeoBoundary struct {
	NumVerts int
	Verts    [MaxCellBoundaryVerts]GeoCoord
}

// Vertices returns the live prefix of Verts.
func (b *GeoBoundary) Vertices() []GeoCoord {
	n := b.NumVerts
	if n < 0 {
		n = 0
	}
	if n > MaxCellBoundaryVerts {
		n = MaxCellBoundaryVerts
	}
	return b.Verts[:n]
}

// CoordIJ is a local IJ coordinate relative to an origin cell.
type CoordIJ struct {
	I int
	J int
}

// Geofence is one ring. Verts references memory owned by whoever encoded it.
type Geofence struct {
	Verts []GeoCoord
}

// GeoPolygon is an outer ring with zero or more holes.
type GeoPolygon struct {
	Geofence Geofence
	Holes    []Geofence
}

// LinkedPolygon is a cursor over a native polygon list. Next returns nil at
// the end of the list.
type LinkedPolygon interface {
	FirstLoop() LinkedLoop
	Next() LinkedPolygon
}

// LinkedLoop is a cursor over the loops of one polygon.
type LinkedLoop interface {
	FirstCoord() LinkedCoord
	Next() LinkedLoop
}

// LinkedCoord is a cursor over the vertices of one loop.
type LinkedCoord interface {
	Vertex() GeoCoord
	Next() LinkedCoord
}
