//go:build cgo && h3

package libh3

/*
#include <stdlib.h>
#include <h3/h3api.h>
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/h3-runtime/native"
)

// fence references the vertex array of g, which must already be C memory.
func fence(g native.Geofence) C.Geofence {
	var f C.Geofence
	if len(g.Verts) > 0 {
		f.numVerts = C.int(len(g.Verts))
		f.verts = (*C.GeoCoord)(unsafe.Pointer(&g.Verts[0]))
	}
	return f
}

// withPolygon builds the C polygon header for the duration of fn. The hole
// header array is allocated here since native.GeoPolygon keeps it as a Go
// slice.
func withPolygon(poly *native.GeoPolygon, fn func(*C.GeoPolygon)) {
	var cp C.GeoPolygon
	cp.geofence = fence(poly.Geofence)
	if n := len(poly.Holes); n > 0 {
		holes := (*C.Geofence)(C.calloc(C.size_t(n), C.sizeof_Geofence))
		if holes == nil {
			panic("libh3: hole header allocation failed")
		}
		defer C.free(unsafe.Pointer(holes))
		hs := unsafe.Slice(holes, n)
		for i, h := range poly.Holes {
			hs[i] = fence(h)
		}
		cp.numHoles = C.int(n)
		cp.holes = holes
	}
	fn(&cp)
}

func (l *Library) MaxPolyfillSize(poly *native.GeoPolygon, res int) int {
	var n C.int
	withPolygon(poly, func(cp *C.GeoPolygon) {
		n = C.maxPolyfillSize(cp, C.int(res))
	})
	return int(n)
}

func (l *Library) Polyfill(poly *native.GeoPolygon, res int, out []native.Cell) {
	if len(out) == 0 {
		return
	}
	withPolygon(poly, func(cp *C.GeoPolygon) {
		C.polyfill(cp, C.int(res), cells(out))
	})
}

// H3SetToLinkedGeo allocates the root polygon in C memory. The root is
// returned even when libh3 produced no loops.
func (l *Library) H3SetToLinkedGeo(set []native.Cell) native.LinkedPolygon {
	root := (*C.LinkedGeoPolygon)(C.calloc(1, C.sizeof_LinkedGeoPolygon))
	if root == nil {
		panic("libh3: linked polygon allocation failed")
	}
	C.h3SetToLinkedGeo(cells(set), C.int(len(set)), root)
	return &linkedPolygon{p: root, root: true}
}

// DestroyLinkedPolygon frees the whole structure rooted at p.
func (l *Library) DestroyLinkedPolygon(p native.LinkedPolygon) {
	lp, ok := p.(*linkedPolygon)
	if !ok || lp == nil || lp.p == nil || !lp.root {
		return
	}
	C.destroyLinkedPolygon(lp.p)
	C.free(unsafe.Pointer(lp.p))
	lp.p = nil
}

type linkedPolygon struct {
	p    *C.LinkedGeoPolygon
	root bool
}

func (lp *linkedPolygon) FirstLoop() native.LinkedLoop {
	if lp.p.first == nil {
		return nil
	}
	return &linkedLoop{l: lp.p.first}
}

func (lp *linkedPolygon) Next() native.LinkedPolygon {
	if lp.p.next == nil {
		return nil
	}
	return &linkedPolygon{p: lp.p.next}
}

type linkedLoop struct {
	l *C.LinkedGeoLoop
}

func (ll *linkedLoop) FirstCoord() native.LinkedCoord {
	if ll.l.first == nil {
		return nil
	}
	return &linkedCoord{c: ll.l.first}
}

func (ll *linkedLoop) Next() native.LinkedLoop {
	if ll.l.next == nil {
		return nil
	}
	return &linkedLoop{l: ll.l.next}
}

type linkedCoord struct {
	c *C.LinkedGeoCoord
}

func (lc *linkedCoord) Vertex() native.GeoCoord {
	return goCoord(lc.c.vertex)
}

func (lc *linkedCoord) Next() native.LinkedCoord {
	if lc.c.next == nil {
		return nil
	}
	return &linkedCoord{c: lc.c.next}
}
