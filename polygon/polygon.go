// Package polygon encodes host polygon-with-holes values into the native
// multi-ring layout.
//
// The host shape is a map with an outer ring under "geofence" and an
// optional sequence of hole rings under "holes"; each ring is a sequence of
// {lat, lon} maps in degrees. Vertex arrays are allocated from the native
// allocator and live until Release.
package polygon

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/wippyai/h3-runtime/codec"
	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/marshal"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/value"
)

// Host field names.
const (
	FieldGeofence = "geofence"
	FieldHoles    = "holes"
)

// Parse validates a host polygon and returns it in degrees. The outer ring
// comes first and holes follow.
func Parse(v value.Value, path []string) (codec.Polygon, error) {
	if v.Kind() != value.KindMap {
		return nil, errors.TypeMismatch(errors.PhaseParam, path, value.KindMap.String(), v.Kind().String())
	}

	fence, ok := v.Field(FieldGeofence)
	if !ok {
		return nil, errors.FieldMissing(errors.PhaseParam, path, FieldGeofence)
	}
	outer, err := codec.LoopFrom(fence, codec.Sub(path, FieldGeofence))
	if err != nil {
		return nil, err
	}

	out := codec.Polygon{outer}
	holes, ok := v.Field(FieldHoles)
	if !ok || holes.IsNull() {
		return out, nil
	}
	holesPath := codec.Sub(path, FieldHoles)
	items, ok := holes.AsSeq()
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseParam, holesPath, value.KindSeq.String(), holes.Kind().String())
	}
	for i, h := range items {
		loop, err := codec.LoopFrom(h, codec.SubIndex(holesPath, i))
		if err != nil {
			return nil, err
		}
		out = append(out, loop)
	}
	return out, nil
}

// Encoded is a native polygon whose vertex arrays are owned by the encoder.
type Encoded struct {
	Polygon native.GeoPolygon

	mem  memory.Allocator
	list *marshal.AllocationList
}

// Encode validates v and lowers it into native memory. Validation finishes
// before any allocation.
func Encode(mem memory.Allocator, v value.Value, path []string) (*Encoded, error) {
	p, err := Parse(v, path)
	if err != nil {
		return nil, err
	}
	return Lower(mem, p)
}

// Lower places an already parsed polygon into native memory, converting
// every vertex to radians. Partial allocations are released on error.
func Lower(mem memory.Allocator, p codec.Polygon) (*Encoded, error) {
	if len(p) == 0 {
		return nil, errors.InvalidInput(errors.PhaseEncode, "polygon has no outer ring")
	}

	enc := &Encoded{mem: mem, list: marshal.NewAllocationList()}

	outer, err := lowerLoop(enc, p[0])
	if err != nil {
		enc.Release()
		return nil, err
	}
	enc.Polygon.Geofence = outer

	enc.Polygon.Holes = make([]native.Geofence, 0, len(p)-1)
	for _, hole := range p[1:] {
		fence, err := lowerLoop(enc, hole)
		if err != nil {
			enc.Release()
			return nil, err
		}
		enc.Polygon.Holes = append(enc.Polygon.Holes, fence)
	}
	return enc, nil
}

func lowerLoop(enc *Encoded, loop codec.Loop) (native.Geofence, error) {
	verts, err := marshal.Carve[native.GeoCoord](enc.list, enc.mem, len(loop))
	if err != nil {
		return native.Geofence{}, errors.Wrap(errors.PhaseEncode, errors.KindAllocation, err, "ring vertices")
	}
	for i, ll := range loop {
		verts[i] = ll.ToNative()
	}
	return native.Geofence{Verts: verts}, nil
}

// Bytes reports the native memory held by the encoding.
func (e *Encoded) Bytes() int {
	if e == nil || e.list == nil {
		return 0
	}
	return e.list.Bytes()
}

// Release frees every vertex array. The polygon must not be used afterwards.
func (e *Encoded) Release() {
	if e == nil || e.list == nil {
		return
	}
	e.list.FreeAndRelease(e.mem)
	e.list = nil
	e.Polygon = native.GeoPolygon{}
}

// With encodes v, runs fn with the native polygon and releases it.
func With[T any](mem memory.Allocator, v value.Value, path []string, fn func(*native.GeoPolygon) (T, error)) (T, error) {
	enc, err := Encode(mem, v, path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer enc.Release()
	return fn(&enc.Polygon)
}

// Decode renders a native polygon back into the host shape.
func Decode(p *native.GeoPolygon) value.Value {
	fence := func(f native.Geofence) value.Value {
		return value.SeqOf(f.Verts, codec.GeoCoordValue)
	}
	m := value.NewMap().
		Set(FieldGeofence, fence(p.Geofence)).
		Set(FieldHoles, value.SeqOf(p.Holes, fence))
	return value.FromMap(m)
}
