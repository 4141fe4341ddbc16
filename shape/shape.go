// Package shape converts grid results into orb geometries and renders them
// as GeoJSON or WKT.
package shape

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"

	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/value"
)

func point(ll codec.LatLng) orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

// closed appends the first point when the ring is open.
func closed(r orb.Ring) orb.Ring {
	if len(r) > 0 && !r.Closed() {
		r = append(r, r[0])
	}
	return r
}

// Loop converts a degree loop into a closed ring.
func Loop(l codec.Loop) orb.Ring {
	r := make(orb.Ring, 0, len(l)+1)
	for _, ll := range l {
		r = append(r, point(ll))
	}
	return closed(r)
}

// Ring reads a sequence of {lat, lon} maps, such as a cell boundary.
func Ring(v value.Value) (orb.Ring, error) {
	l, err := codec.LoopFrom(v, nil)
	if err != nil {
		return nil, err
	}
	return Loop(l), nil
}

// MultiPolygon converts decoded outlines. Loop 0 of each polygon is the
// outer ring.
func MultiPolygon(mp codec.MultiPolygon) orb.MultiPolygon {
	out := make(orb.MultiPolygon, 0, len(mp))
	for _, p := range mp {
		poly := make(orb.Polygon, 0, len(p))
		for _, l := range p {
			poly = append(poly, Loop(l))
		}
		out = append(out, poly)
	}
	return out
}

// Geometry detects the shape of an operation result:
//
//	{lat, lon}         orb.Point
//	[{lat, lon}]       orb.Polygon with one ring
//	[[[{lat, lon}]]]   orb.MultiPolygon
func Geometry(v value.Value) (orb.Geometry, error) {
	switch depth(v) {
	case 0:
		ll, err := codec.LatLngFrom(v, nil)
		if err != nil {
			return nil, err
		}
		return point(ll), nil
	case 1:
		r, err := Ring(v)
		if err != nil {
			return nil, err
		}
		return orb.Polygon{r}, nil
	case 3:
		mp, err := multiPolygonFrom(v)
		if err != nil {
			return nil, err
		}
		return MultiPolygon(mp), nil
	}
	return nil, errors.New(errors.PhaseHost, errors.KindTypeMismatch).
		Expected("point, boundary or multi-polygon").
		Got(v.Kind().String()).
		Build()
}

// depth counts sequence nesting above the first map. Empty sequences are
// treated as an empty multi-polygon.
func depth(v value.Value) int {
	switch v.Kind() {
	case value.KindMap:
		return 0
	case value.KindSeq:
		if v.Len() == 0 {
			return 3
		}
		d := depth(v.Index(0))
		if d < 0 {
			return d
		}
		return d + 1
	}
	return -1
}

func multiPolygonFrom(v value.Value) (codec.MultiPolygon, error) {
	polys, _ := v.AsSeq()
	out := make(codec.MultiPolygon, len(polys))
	for i, p := range polys {
		path := codec.SubIndex(nil, i)
		loops, ok := p.AsSeq()
		if !ok {
			return nil, errors.TypeMismatch(errors.PhaseHost, path, value.KindSeq.String(), p.Kind().String())
		}
		poly := make(codec.Polygon, len(loops))
		for j, l := range loops {
			loop, err := codec.LoopFrom(l, codec.SubIndex(path, j))
			if err != nil {
				return nil, err
			}
			poly[j] = loop
		}
		out[i] = poly
	}
	return out, nil
}

// GeoJSON renders v as a GeoJSON Feature.
func GeoJSON(v value.Value) ([]byte, error) {
	g, err := Geometry(v)
	if err != nil {
		return nil, err
	}
	return geojson.NewFeature(g).MarshalJSON()
}

// WKT renders v as well-known text.
func WKT(v value.Value) (string, error) {
	g, err := Geometry(v)
	if err != nil {
		return "", err
	}
	return wkt.MarshalString(g), nil
}
