// Package nativetest provides an in-memory native.Library for tests.
//
// Stub follows the real index bit layout for resolution, base cell,
// hierarchy and compaction. Spatial operations use a toy model that honours
// the buffer contract: size queries bound what the filling calls write,
// pentagons leave zero holes and ranges touching a pentagon fail.
package nativetest

import (
	"math"
	"strconv"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/wippyai/h3-runtime/native"
)

const earthRadiusKm = 6371.007180918475

// Stub is a programmable native.Library.
type Stub struct {
	// Mem backs every buffer the bridge allocates for this library.
	Mem *memory.CheckedAllocator
	// Pentagons marks cells treated as pentagons.
	Pentagons map[native.Cell]bool
	// Status forces a non-zero status from the named status-returning method.
	Status map[string]int
	// Size overrides the answer of the named size query.
	Size map[string]int
	// Panic makes the named method panic.
	Panic map[string]bool

	mu          sync.Mutex
	calls       []string
	coords      map[native.Cell]native.GeoCoord
	lastPolygon *native.GeoPolygon
	live        []*linkedPolygon
	destroyed   int
}

var _ native.Library = (*Stub)(nil)

// New returns a stub with a leak-checked Go allocator.
func New() *Stub {
	return &Stub{
		Mem:       memory.NewCheckedAllocator(memory.NewGoAllocator()),
		Pentagons: make(map[native.Cell]bool),
		Status:    make(map[string]int),
		Size:      make(map[string]int),
		Panic:     make(map[string]bool),
		coords:    make(map[native.Cell]native.GeoCoord),
	}
}

func (s *Stub) Allocator() memory.Allocator { return s.Mem }

// Calls returns the recorded method names in call order.
func (s *Stub) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// ResetCalls clears the call log.
func (s *Stub) ResetCalls() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

// LastPolygon returns a deep copy of the polygon passed to the last
// MaxPolyfillSize or Polyfill call.
func (s *Stub) LastPolygon() *native.GeoPolygon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPolygon
}

// Destroyed returns how many linked polygons were released.
func (s *Stub) Destroyed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// Outstanding returns how many linked polygons are still unreleased.
func (s *Stub) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

func (s *Stub) record(name string) {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	panics := s.Panic[name]
	s.mu.Unlock()
	if panics {
		panic("nativetest: " + name)
	}
}

func (s *Stub) status(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status[name]
}

func (s *Stub) size(name string, n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Size[name]; ok {
		return o
	}
	return n
}

func (s *Stub) isPentagon(h native.Cell) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Pentagons[h]
}

// Indexer

func (s *Stub) GeoToH3(g native.GeoCoord, res int) native.Cell {
	s.record("GeoToH3")
	if res < 0 || res > native.MaxResolution {
		return 0
	}
	lat := int(math.Floor((g.Lat + math.Pi/2) / math.Pi * 121))
	if lat < 0 {
		lat = 0
	}
	if lat > 121 {
		lat = 121
	}
	h := MakeCell(res, lat)
	s.mu.Lock()
	s.coords[h] = g
	s.mu.Unlock()
	return h
}

func (s *Stub) H3ToGeo(h native.Cell) native.GeoCoord {
	s.record("H3ToGeo")
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coords[h]
}

func (s *Stub) H3ToGeoBoundary(h native.Cell) native.GeoBoundary {
	s.record("H3ToGeoBoundary")
	return s.boundary(h, 6)
}

func (s *Stub) boundary(h native.Cell, n int) native.GeoBoundary {
	s.mu.Lock()
	c := s.coords[h]
	s.mu.Unlock()
	if s.isPentagon(h) {
		n = 5
	}
	b := native.GeoBoundary{NumVerts: n}
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		b.Verts[i] = native.GeoCoord{Lat: c.Lat + 1e-3*math.Sin(a), Lon: c.Lon + 1e-3*math.Cos(a)}
	}
	return b
}

func (s *Stub) StringToH3(str string) native.Cell {
	s.record("StringToH3")
	v, err := strconv.ParseUint(str, 16, 64)
	if err != nil {
		return 0
	}
	return native.Cell(v)
}

func (s *Stub) H3ToString(h native.Cell) string {
	s.record("H3ToString")
	return strconv.FormatUint(uint64(h), 16)
}

// Inspector

func (s *Stub) H3GetResolution(h native.Cell) int {
	s.record("H3GetResolution")
	return resolution(h)
}

func (s *Stub) H3GetBaseCell(h native.Cell) int {
	s.record("H3GetBaseCell")
	return baseCell(h)
}

func (s *Stub) H3IsValid(h native.Cell) bool {
	s.record("H3IsValid")
	return mode(h) == modeCell && baseCell(h) < 122
}

func (s *Stub) H3IsResClassIII(h native.Cell) bool {
	s.record("H3IsResClassIII")
	return resolution(h)%2 == 1
}

func (s *Stub) H3IsPentagon(h native.Cell) bool {
	s.record("H3IsPentagon")
	return s.isPentagon(h)
}

func (s *Stub) MaxFaceCount(h native.Cell) int {
	s.record("MaxFaceCount")
	if s.isPentagon(h) {
		return s.size("MaxFaceCount", 5)
	}
	return s.size("MaxFaceCount", 2)
}

func (s *Stub) H3GetFaces(h native.Cell, out []int32) {
	s.record("H3GetFaces")
	for i := range out {
		out[i] = -1
	}
	if len(out) > 0 {
		out[0] = int32(baseCell(h) % 20)
	}
}

// Traverser

// kRingCells lays the neighborhood of h on a line: h, h+1, h-1, h+2, ...
func kRingCells(h native.Cell, n int) ([]native.Cell, []int32) {
	cells := make([]native.Cell, n)
	dist := make([]int32, n)
	for i := 0; i < n; i++ {
		off := (i + 1) / 2
		if i%2 == 0 {
			off = -off
		}
		cells[i] = native.Cell(int64(h) + int64(off))
		r := 0
		for 3*r*(r+1)+1 <= i {
			r++
		}
		dist[i] = int32(r)
	}
	return cells, dist
}

func (s *Stub) MaxKringSize(k int) int {
	s.record("MaxKringSize")
	return s.size("MaxKringSize", 3*k*(k+1)+1)
}

func (s *Stub) KRing(h native.Cell, k int, out []native.Cell) {
	s.record("KRing")
	s.fillRing(h, out, nil)
}

func (s *Stub) KRingDistances(h native.Cell, k int, out []native.Cell, dist []int32) {
	s.record("KRingDistances")
	s.fillRing(h, out, dist)
}

// fillRing writes a neighborhood; a pentagon origin leaves slot 1 empty.
func (s *Stub) fillRing(h native.Cell, out []native.Cell, dist []int32) {
	cells, d := kRingCells(h, len(out))
	hole := s.isPentagon(h)
	for i := range out {
		if hole && i == 1 {
			continue
		}
		out[i] = cells[i]
		if dist != nil {
			dist[i] = d[i]
		}
	}
}

func (s *Stub) rangeStatus(name string, cells []native.Cell) int {
	if st := s.status(name); st != 0 {
		return st
	}
	for _, c := range cells {
		if s.isPentagon(c) {
			return 1
		}
	}
	return 0
}

func (s *Stub) HexRange(h native.Cell, k int, out []native.Cell) int {
	s.record("HexRange")
	cells, _ := kRingCells(h, len(out))
	copy(out, cells)
	return s.rangeStatus("HexRange", cells)
}

func (s *Stub) HexRangeDistances(h native.Cell, k int, out []native.Cell, dist []int32) int {
	s.record("HexRangeDistances")
	cells, d := kRingCells(h, len(out))
	copy(out, cells)
	copy(dist, d)
	return s.rangeStatus("HexRangeDistances", cells)
}

func (s *Stub) HexRanges(set []native.Cell, k int, out []native.Cell) int {
	s.record("HexRanges")
	if len(set) == 0 {
		return s.status("HexRanges")
	}
	per := len(out) / len(set)
	for i, h := range set {
		cells, _ := kRingCells(h, per)
		copy(out[i*per:], cells)
		if st := s.rangeStatus("HexRanges", cells); st != 0 {
			return st
		}
	}
	return 0
}

func (s *Stub) HexRing(h native.Cell, k int, out []native.Cell) int {
	s.record("HexRing")
	if k == 0 {
		if len(out) > 0 {
			out[0] = h
		}
		return s.rangeStatus("HexRing", []native.Cell{h})
	}
	start := 3*k*(k-1) + 1
	cells, _ := kRingCells(h, start+len(out))
	copy(out, cells[start:])
	return s.rangeStatus("HexRing", out)
}

func (s *Stub) H3LineSize(a, b native.Cell) int {
	s.record("H3LineSize")
	if resolution(a) != resolution(b) {
		return s.size("H3LineSize", -1)
	}
	d := int64(a) - int64(b)
	if d < 0 {
		d = -d
	}
	return s.size("H3LineSize", int(d)+1)
}

func (s *Stub) H3Line(a, b native.Cell, out []native.Cell) int {
	s.record("H3Line")
	if st := s.status("H3Line"); st != 0 {
		return st
	}
	step := int64(1)
	if b < a {
		step = -1
	}
	for i := range out {
		out[i] = native.Cell(int64(a) + step*int64(i))
	}
	return 0
}

func (s *Stub) H3Distance(a, b native.Cell) int {
	s.record("H3Distance")
	if resolution(a) != resolution(b) {
		return -1
	}
	d := int64(a) - int64(b)
	if d < 0 {
		d = -d
	}
	return int(d)
}

func (s *Stub) ExperimentalH3ToLocalIj(origin, h native.Cell) (native.CoordIJ, int) {
	s.record("ExperimentalH3ToLocalIj")
	if resolution(origin) != resolution(h) {
		return native.CoordIJ{}, 1
	}
	return native.CoordIJ{I: int(int64(h) - int64(origin))}, s.status("ExperimentalH3ToLocalIj")
}

func (s *Stub) ExperimentalLocalIjToH3(origin native.Cell, ij native.CoordIJ) (native.Cell, int) {
	s.record("ExperimentalLocalIjToH3")
	if ij.J != 0 {
		return 0, 1
	}
	return native.Cell(int64(origin) + int64(ij.I)), s.status("ExperimentalLocalIjToH3")
}

// Hierarchy

func (s *Stub) H3ToParent(h native.Cell, res int) native.Cell {
	s.record("H3ToParent")
	if res < 0 || res > resolution(h) {
		return 0
	}
	return parent(h, res)
}

func (s *Stub) MaxH3ToChildrenSize(h native.Cell, res int) int {
	s.record("MaxH3ToChildrenSize")
	if res < resolution(h) || res > native.MaxResolution {
		return s.size("MaxH3ToChildrenSize", 0)
	}
	return s.size("MaxH3ToChildrenSize", pow7(res-resolution(h)))
}

func (s *Stub) H3ToChildren(h native.Cell, res int, out []native.Cell) {
	s.record("H3ToChildren")
	if res < resolution(h) {
		return
	}
	pent := s.isPentagon(h)
	// Pentagon descendants keep their positional slot so the hole shows.
	all := children(h, res, false)
	keep := make(map[native.Cell]bool)
	for _, c := range children(h, res, pent) {
		keep[c] = true
	}
	for i, c := range all {
		if i < len(out) && keep[c] {
			out[i] = c
		}
	}
}

func (s *Stub) H3ToCenterChild(h native.Cell, res int) native.Cell {
	s.record("H3ToCenterChild")
	if res < resolution(h) || res > native.MaxResolution {
		return 0
	}
	v := uint64(withRes(h, res))
	for r := resolution(h) + 1; r <= res; r++ {
		v = setDigit(v, r, 0)
	}
	return native.Cell(v)
}

func (s *Stub) Compact(set []native.Cell, out []native.Cell) int {
	s.record("Compact")
	if st := s.status("Compact"); st != 0 {
		return st
	}
	cur := make(map[native.Cell]bool, len(set))
	for _, h := range set {
		if cur[h] {
			return 1
		}
		cur[h] = true
	}
	for {
		groups := make(map[native.Cell][]native.Cell)
		for h := range cur {
			if r := resolution(h); r > 0 {
				p := parent(h, r-1)
				groups[p] = append(groups[p], h)
			}
		}
		merged := false
		for p, kids := range groups {
			if len(kids) == 7 && !s.isPentagon(p) {
				for _, k := range kids {
					delete(cur, k)
				}
				cur[p] = true
				merged = true
			}
		}
		if !merged {
			break
		}
	}
	i := 0
	for _, h := range set {
		for r := resolution(h); r >= 0; r-- {
			p := parent(h, r)
			if cur[p] {
				out[i] = p
				delete(cur, p)
				i++
				break
			}
		}
	}
	return 0
}

func (s *Stub) MaxUncompactSize(set []native.Cell, res int) int {
	s.record("MaxUncompactSize")
	n := 0
	for _, h := range set {
		if h == 0 {
			continue
		}
		if resolution(h) > res {
			return s.size("MaxUncompactSize", -1)
		}
		n += pow7(res - resolution(h))
	}
	return s.size("MaxUncompactSize", n)
}

func (s *Stub) Uncompact(set []native.Cell, out []native.Cell, res int) int {
	s.record("Uncompact")
	if st := s.status("Uncompact"); st != 0 {
		return st
	}
	i := 0
	for _, h := range set {
		if h == 0 {
			continue
		}
		if resolution(h) > res {
			return 1
		}
		for _, c := range children(h, res, false) {
			if i >= len(out) {
				return 2
			}
			out[i] = c
			i++
		}
	}
	return 0
}

// Edges

func (s *Stub) neighbors(a, b native.Cell) bool {
	r := resolution(a)
	if r == 0 || r != resolution(b) || a == b {
		return false
	}
	return parent(a, r-1) == parent(b, r-1)
}

func (s *Stub) H3IndexesAreNeighbors(a, b native.Cell) bool {
	s.record("H3IndexesAreNeighbors")
	return s.neighbors(a, b)
}

func (s *Stub) GetH3UnidirectionalEdge(a, b native.Cell) native.Cell {
	s.record("GetH3UnidirectionalEdge")
	if !s.neighbors(a, b) {
		return 0
	}
	return makeEdge(a, getDigit(uint64(b), resolution(b))+1)
}

func (s *Stub) H3UnidirectionalEdgeIsValid(e native.Cell) bool {
	s.record("H3UnidirectionalEdgeIsValid")
	_, dir := edgeParts(e)
	return mode(e) == modeEdge && dir >= 1 && dir <= 7
}

func (s *Stub) destination(e native.Cell) native.Cell {
	origin, dir := edgeParts(e)
	r := resolution(origin)
	if r == 0 || dir == 0 {
		return 0
	}
	return native.Cell(setDigit(uint64(origin), r, dir-1))
}

func (s *Stub) GetOriginH3IndexFromUnidirectionalEdge(e native.Cell) native.Cell {
	s.record("GetOriginH3IndexFromUnidirectionalEdge")
	origin, _ := edgeParts(e)
	return origin
}

func (s *Stub) GetDestinationH3IndexFromUnidirectionalEdge(e native.Cell) native.Cell {
	s.record("GetDestinationH3IndexFromUnidirectionalEdge")
	return s.destination(e)
}

func (s *Stub) GetH3IndexesFromUnidirectionalEdge(e native.Cell, out []native.Cell) {
	s.record("GetH3IndexesFromUnidirectionalEdge")
	origin, _ := edgeParts(e)
	out[0] = origin
	out[1] = s.destination(e)
}

func (s *Stub) GetH3UnidirectionalEdgesFromHexagon(h native.Cell, out []native.Cell) {
	s.record("GetH3UnidirectionalEdgesFromHexagon")
	r := resolution(h)
	if r == 0 {
		return
	}
	own := getDigit(uint64(h), r)
	i := 0
	for d := 0; d < 7 && i < len(out); d++ {
		if d == own {
			continue
		}
		if !(s.isPentagon(h) && i == 0) {
			out[i] = makeEdge(h, d+1)
		}
		i++
	}
}

func (s *Stub) GetH3UnidirectionalEdgeBoundary(e native.Cell) native.GeoBoundary {
	s.record("GetH3UnidirectionalEdgeBoundary")
	origin, _ := edgeParts(e)
	b := s.boundary(origin, 6)
	b.NumVerts = 2
	return b
}

// Regions

func (s *Stub) keepPolygon(poly *native.GeoPolygon) {
	c := &native.GeoPolygon{
		Geofence: native.Geofence{Verts: append([]native.GeoCoord(nil), poly.Geofence.Verts...)},
		Holes:    make([]native.Geofence, len(poly.Holes)),
	}
	for i, h := range poly.Holes {
		c.Holes[i] = native.Geofence{Verts: append([]native.GeoCoord(nil), h.Verts...)}
	}
	s.mu.Lock()
	s.lastPolygon = c
	s.mu.Unlock()
}

func (s *Stub) MaxPolyfillSize(poly *native.GeoPolygon, res int) int {
	s.record("MaxPolyfillSize")
	s.keepPolygon(poly)
	return s.size("MaxPolyfillSize", (len(poly.Geofence.Verts)+len(poly.Holes))*(res+1))
}

// Polyfill writes one cell per outer vertex followed by zero padding.
func (s *Stub) Polyfill(poly *native.GeoPolygon, res int, out []native.Cell) {
	s.record("Polyfill")
	s.keepPolygon(poly)
	for i := range poly.Geofence.Verts {
		if i < len(out) {
			out[i] = MakeCell(res, i+1)
		}
	}
}

func (s *Stub) H3SetToLinkedGeo(set []native.Cell) native.LinkedPolygon {
	s.record("H3SetToLinkedGeo")
	if len(set) == 0 {
		return nil
	}
	root := &linkedPolygon{stub: s}
	cur := root
	for i, h := range set {
		if i > 0 {
			cur.next = &linkedPolygon{stub: s}
			cur = cur.next
		}
		b := s.boundary(h, 6)
		loop := &linkedLoop{poly: cur}
		var last *linkedCoord
		for _, v := range b.Vertices() {
			c := &linkedCoord{loop: loop, vertex: v}
			if last == nil {
				loop.first = c
			} else {
				last.next = c
			}
			last = c
		}
		cur.first = loop
	}
	s.mu.Lock()
	s.live = append(s.live, root)
	s.mu.Unlock()
	return root
}

func (s *Stub) DestroyLinkedPolygon(p native.LinkedPolygon) {
	s.record("DestroyLinkedPolygon")
	root, ok := p.(*linkedPolygon)
	if !ok || root == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.live {
		if l == root {
			s.live = append(s.live[:i], s.live[i+1:]...)
			for n := root; n != nil; n = n.next {
				n.freed = true
			}
			s.destroyed++
			return
		}
	}
	panic("nativetest: double free of linked polygon")
}

// Metrics

func (s *Stub) HexAreaKm2(res int) float64 {
	s.record("HexAreaKm2")
	return 4250546.848 / math.Pow(7, float64(res))
}

func (s *Stub) HexAreaM2(res int) float64 {
	s.record("HexAreaM2")
	return 4250546.848e6 / math.Pow(7, float64(res))
}

func (s *Stub) cellAreaRads2(h native.Cell) float64 {
	return 4 * math.Pi / (2 + 120*math.Pow(7, float64(resolution(h))))
}

func (s *Stub) CellAreaKm2(h native.Cell) float64 {
	s.record("CellAreaKm2")
	return s.cellAreaRads2(h) * earthRadiusKm * earthRadiusKm
}

func (s *Stub) CellAreaM2(h native.Cell) float64 {
	s.record("CellAreaM2")
	return s.cellAreaRads2(h) * earthRadiusKm * earthRadiusKm * 1e6
}

func (s *Stub) CellAreaRads2(h native.Cell) float64 {
	s.record("CellAreaRads2")
	return s.cellAreaRads2(h)
}

func (s *Stub) EdgeLengthKm(res int) float64 {
	s.record("EdgeLengthKm")
	return 1107.712591 / math.Pow(math.Sqrt(7), float64(res))
}

func (s *Stub) EdgeLengthM(res int) float64 {
	s.record("EdgeLengthM")
	return 1107712.591 / math.Pow(math.Sqrt(7), float64(res))
}

func (s *Stub) edgeRads(e native.Cell) float64 {
	origin, _ := edgeParts(e)
	return 0.17386 / math.Pow(math.Sqrt(7), float64(resolution(origin)))
}

func (s *Stub) ExactEdgeLengthKm(e native.Cell) float64 {
	s.record("ExactEdgeLengthKm")
	return s.edgeRads(e) * earthRadiusKm
}

func (s *Stub) ExactEdgeLengthM(e native.Cell) float64 {
	s.record("ExactEdgeLengthM")
	return s.edgeRads(e) * earthRadiusKm * 1000
}

func (s *Stub) ExactEdgeLengthRads(e native.Cell) float64 {
	s.record("ExactEdgeLengthRads")
	return s.edgeRads(e)
}

func (s *Stub) NumHexagons(res int) int64 {
	s.record("NumHexagons")
	return 2 + 120*int64(pow7(res))
}

func (s *Stub) Res0IndexCount() int {
	s.record("Res0IndexCount")
	return s.size("Res0IndexCount", 122)
}

func (s *Stub) GetRes0Indexes(out []native.Cell) {
	s.record("GetRes0Indexes")
	for i := range out {
		out[i] = MakeCell(0, i)
	}
}

func (s *Stub) PentagonIndexCount() int {
	s.record("PentagonIndexCount")
	return s.size("PentagonIndexCount", native.PentagonCount)
}

var pentagonBaseCells = [native.PentagonCount]int{4, 14, 24, 38, 49, 58, 63, 72, 83, 97, 107, 117}

func (s *Stub) GetPentagonIndexes(res int, out []native.Cell) {
	s.record("GetPentagonIndexes")
	for i := range out {
		if i < len(pentagonBaseCells) {
			out[i] = MakeCell(res, pentagonBaseCells[i])
		}
	}
}

func (s *Stub) PointDistRads(a, b native.GeoCoord) float64 {
	s.record("PointDistRads")
	return haversine(a, b)
}

func (s *Stub) PointDistKm(a, b native.GeoCoord) float64 {
	s.record("PointDistKm")
	return haversine(a, b) * earthRadiusKm
}

func (s *Stub) PointDistM(a, b native.GeoCoord) float64 {
	s.record("PointDistM")
	return haversine(a, b) * earthRadiusKm * 1000
}

func haversine(a, b native.GeoCoord) float64 {
	sinLat := math.Sin((b.Lat - a.Lat) / 2)
	sinLon := math.Sin((b.Lon - a.Lon) / 2)
	h := sinLat*sinLat + math.Cos(a.Lat)*math.Cos(b.Lat)*sinLon*sinLon
	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
