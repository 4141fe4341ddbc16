package codec

import (
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/value"
)

// LatLng is a coordinate pair in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Loop is a ring of coordinates in degrees.
type Loop []LatLng

// Polygon is an outer loop followed by its holes.
type Polygon []Loop

// MultiPolygon is a decoded linked multi-polygon.
type MultiPolygon []Polygon

// ToNative converts to radians.
func (ll LatLng) ToNative() native.GeoCoord {
	return native.GeoCoord{Lat: Radians(ll.Lat), Lon: Radians(ll.Lng)}
}

// FromNative converts a radian coordinate to degrees.
func FromNative(g native.GeoCoord) LatLng {
	return LatLng{Lat: Degrees(g.Lat), Lng: Degrees(g.Lon)}
}

// LatLngFrom reads a {lat, lon} map in degrees.
func LatLngFrom(v value.Value, path []string) (LatLng, error) {
	if v.Kind() != value.KindMap {
		return LatLng{}, errors.TypeMismatch(errors.PhaseParam, path, value.KindMap.String(), v.Kind().String())
	}
	lat, err := floatField(v, path, FieldLat)
	if err != nil {
		return LatLng{}, err
	}
	lng, err := floatField(v, path, FieldLon)
	if err != nil {
		return LatLng{}, err
	}
	return LatLng{Lat: lat, Lng: lng}, nil
}

// GeoCoordFrom reads a {lat, lon} map in degrees and returns radians.
func GeoCoordFrom(v value.Value, path []string) (native.GeoCoord, error) {
	ll, err := LatLngFrom(v, path)
	if err != nil {
		return native.GeoCoord{}, err
	}
	return ll.ToNative(), nil
}

// LatLngValue encodes ll as a {lat, lon} map.
func LatLngValue(ll LatLng) value.Value {
	m := value.NewMap().
		Set(FieldLat, value.Float(ll.Lat)).
		Set(FieldLon, value.Float(ll.Lng))
	return value.FromMap(m)
}

// GeoCoordValue converts g to degrees and encodes it.
func GeoCoordValue(g native.GeoCoord) value.Value {
	return LatLngValue(FromNative(g))
}

// BoundaryValue encodes the live vertices of b in degrees.
func BoundaryValue(b native.GeoBoundary) value.Value {
	return value.SeqOf(b.Vertices(), GeoCoordValue)
}

// LoopValue encodes a loop.
func LoopValue(l Loop) value.Value {
	return value.SeqOf(l, LatLngValue)
}

// MultiPolygonValue encodes polygons as nested sequences.
func MultiPolygonValue(mp MultiPolygon) value.Value {
	return value.SeqOf(mp, func(p Polygon) value.Value {
		return value.SeqOf(p, LoopValue)
	})
}

// LoopFrom reads a sequence of {lat, lon} maps.
func LoopFrom(v value.Value, path []string) (Loop, error) {
	items, ok := v.AsSeq()
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseParam, path, value.KindSeq.String(), v.Kind().String())
	}
	out := make(Loop, len(items))
	for i, it := range items {
		ll, err := LatLngFrom(it, SubIndex(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = ll
	}
	return out, nil
}

// IJFrom reads an {i, j} map.
func IJFrom(v value.Value, path []string) (native.CoordIJ, error) {
	if v.Kind() != value.KindMap {
		return native.CoordIJ{}, errors.TypeMismatch(errors.PhaseParam, path, value.KindMap.String(), v.Kind().String())
	}
	var ij native.CoordIJ
	for _, f := range []struct {
		name string
		dst  *int
	}{{FieldI, &ij.I}, {FieldJ, &ij.J}} {
		fv, ok := v.Field(f.name)
		if !ok {
			return native.CoordIJ{}, errors.FieldMissing(errors.PhaseParam, path, f.name)
		}
		n, err := Int(fv, Sub(path, f.name))
		if err != nil {
			return native.CoordIJ{}, err
		}
		*f.dst = n
	}
	return ij, nil
}

// IJValue encodes ij as an {i, j} map.
func IJValue(ij native.CoordIJ) value.Value {
	m := value.NewMap().
		Set(FieldI, value.Int(int64(ij.I))).
		Set(FieldJ, value.Int(int64(ij.J)))
	return value.FromMap(m)
}

func floatField(v value.Value, path []string, name string) (float64, error) {
	fv, ok := v.Field(name)
	if !ok {
		return 0, errors.FieldMissing(errors.PhaseParam, path, name)
	}
	return Float(fv, Sub(path, name))
}
