// Package oracle computes output capacities for variable-output native
// calls. Each bound is derived from the same inputs handed to the filling
// call that follows it.
package oracle

import (
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/native"
)

func radius(k int) error {
	if k < 0 {
		return errors.OutOfRange(errors.PhaseOracle, []string{"k"}, k, "radius must be non-negative")
	}
	return nil
}

func checked(n int, what string) (int, error) {
	if n < 0 {
		return 0, errors.New(errors.PhaseOracle, errors.KindNativeFailure).
			Value(n).
			Detail("%s size query failed", what).
			Code(n).
			Build()
	}
	return n, nil
}

// KRing bounds kRing, kRingDistances, hexRange and hexRangeDistances.
func KRing(lib native.Traverser, k int) (int, error) {
	if err := radius(k); err != nil {
		return 0, err
	}
	return checked(lib.MaxKringSize(k), "k-ring")
}

// HexRanges bounds a batched hex range over n origins.
func HexRanges(lib native.Traverser, n, k int) (int, error) {
	per, err := KRing(lib, k)
	if err != nil {
		return 0, err
	}
	return per * n, nil
}

// HexRing bounds a hollow ring. Radius zero is the origin alone.
func HexRing(k int) (int, error) {
	if err := radius(k); err != nil {
		return 0, err
	}
	if k == 0 {
		return 1, nil
	}
	return 6 * k, nil
}

// Line bounds h3Line. A negative native answer means no line exists.
func Line(lib native.Traverser, a, b native.Cell) (int, error) {
	return checked(lib.H3LineSize(a, b), "line")
}

// Children bounds h3ToChildren.
func Children(lib native.Hierarchy, h native.Cell, res int) (int, error) {
	return checked(lib.MaxH3ToChildrenSize(h, res), "children")
}

// Compact bounds compaction: never more cells out than in.
func Compact(n int) (int, error) {
	return n, nil
}

// Uncompact bounds uncompaction of set to res.
func Uncompact(lib native.Hierarchy, set []native.Cell, res int) (int, error) {
	return checked(lib.MaxUncompactSize(set, res), "uncompact")
}

// Polyfill bounds the fill of poly at res.
func Polyfill(lib native.Regions, poly *native.GeoPolygon, res int) (int, error) {
	return checked(lib.MaxPolyfillSize(poly, res), "polyfill")
}

// Faces bounds the icosahedron faces a cell intersects.
func Faces(lib native.Inspector, h native.Cell) (int, error) {
	return checked(lib.MaxFaceCount(h), "face")
}

// Res0 bounds the resolution 0 cell enumeration.
func Res0(lib native.Metrics) (int, error) {
	return checked(lib.Res0IndexCount(), "res0")
}

// Pentagons bounds the pentagon enumeration at any resolution.
func Pentagons(lib native.Metrics) (int, error) {
	return checked(lib.PentagonIndexCount(), "pentagon")
}

// EdgeEndpoints bounds the cells of one edge.
func EdgeEndpoints() (int, error) {
	return native.EdgeEndpointCount, nil
}

// HexagonEdges bounds the edges leaving one cell.
func HexagonEdges() (int, error) {
	return native.HexagonEdgeCount, nil
}
