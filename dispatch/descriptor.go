package dispatch

import (
	"math"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/value"
)

// Group is the concern an operation belongs to.
type Group string

const (
	GroupConversion Group = "conversion"
	GroupInspection Group = "inspection"
	GroupTraversal  Group = "traversal"
	GroupHierarchy  Group = "hierarchy"
	GroupEdges      Group = "edges"
	GroupRegions    Group = "regions"
	GroupMetrics    Group = "metrics"
)

var groupOrder = []Group{
	GroupConversion,
	GroupInspection,
	GroupTraversal,
	GroupHierarchy,
	GroupEdges,
	GroupRegions,
	GroupMetrics,
}

// Param is one declared parameter.
type Param struct {
	Name string
	Type wit.Type
}

// Kind returns the host value kind the parameter accepts.
func (p Param) Kind() value.Kind {
	return kindOf(p.Type)
}

// Handler runs one bound call.
type Handler func(c *Call) (value.Value, error)

// Descriptor declares an exposed operation.
type Descriptor struct {
	Name   string
	Group  Group
	Doc    string
	Params []Param
	Result wit.Type
	// Fallible operations answer false when the native library reports
	// failure.
	Fallible bool
	// Experimental operations may change output across library versions.
	Experimental bool

	handler Handler
}

// bind checks arity and kinds and returns normalized arguments: integral
// floats become Int for integer parameters and Int becomes Float for float
// parameters.
func (d *Descriptor) bind(args []value.Value) ([]value.Value, error) {
	if len(args) != len(d.Params) {
		return nil, errors.Arity(d.Name, len(d.Params), len(args))
	}

	out := make([]value.Value, len(args))
	for i, p := range d.Params {
		a := args[i]
		want := p.Kind()
		switch {
		case a.Kind() == want:
			out[i] = a
		case want == value.KindFloat && a.Kind() == value.KindInt:
			f, _ := a.AsFloat()
			out[i] = value.Float(f)
		case want == value.KindInt && a.Kind() == value.KindFloat:
			f, _ := a.AsFloat()
			if math.IsNaN(f) || math.Trunc(f) != f || math.Abs(f) > 1<<53 {
				e := errors.PrecisionLoss(errors.PhaseParam, []string{p.Name}, f, "int")
				e.Op = d.Name
				return nil, e
			}
			out[i] = value.Int(int64(f))
		default:
			return nil, errors.New(errors.PhaseParam, errors.KindTypeMismatch).
				Op(d.Name).
				Path(p.Name).
				Expected(want.String()).
				Got(a.Kind().String()).
				Build()
		}
	}
	return out, nil
}

func kindOf(t wit.Type) value.Kind {
	switch t := t.(type) {
	case wit.Bool:
		return value.KindBool
	case wit.S32, wit.S64:
		return value.KindInt
	case wit.F64:
		return value.KindFloat
	case wit.String:
		return value.KindString
	case *wit.TypeDef:
		switch t.Kind.(type) {
		case *wit.List, *wit.Tuple:
			return value.KindSeq
		case *wit.Record:
			return value.KindMap
		}
	}
	return value.KindNull
}

// Declared shapes.
var (
	typeCell   wit.Type = wit.S64{}
	typeInt    wit.Type = wit.S64{}
	typeFloat  wit.Type = wit.F64{}
	typeBool   wit.Type = wit.Bool{}
	typeString wit.Type = wit.String{}

	typeCells  = listOf(typeCell)
	typeFaces  = listOf(wit.S32{})
	typeLatLng = record("lat-lng",
		wit.Field{Name: "lat", Type: wit.F64{}},
		wit.Field{Name: "lon", Type: wit.F64{}},
	)
	typeCoordIJ = record("coord-ij",
		wit.Field{Name: "i", Type: wit.S32{}},
		wit.Field{Name: "j", Type: wit.S32{}},
	)
	typeRing    = listOf(typeLatLng)
	typePolygon = record("polygon",
		wit.Field{Name: "geofence", Type: typeRing},
		wit.Field{Name: "holes", Type: listOf(typeRing)},
	)
	typeMultiPolygon = listOf(listOf(typeRing))
	typeDistances    = &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{typeCells, listOf(wit.S32{})}}}
)

func listOf(t wit.Type) *wit.TypeDef {
	return &wit.TypeDef{Kind: &wit.List{Type: t}}
}

func record(name string, fields ...wit.Field) *wit.TypeDef {
	return &wit.TypeDef{Name: &name, Kind: &wit.Record{Fields: fields}}
}

func cell(name string) Param      { return Param{Name: name, Type: typeCell} }
func integer(name string) Param   { return Param{Name: name, Type: typeInt} }
func float(name string) Param     { return Param{Name: name, Type: typeFloat} }
func str(name string) Param       { return Param{Name: name, Type: typeString} }
func cellSet(name string) Param   { return Param{Name: name, Type: typeCells} }
func latLng(name string) Param    { return Param{Name: name, Type: typeLatLng} }
func coordIJ(name string) Param   { return Param{Name: name, Type: typeCoordIJ} }
func polygonOf(name string) Param { return Param{Name: name, Type: typePolygon} }

func params(ps ...Param) []Param { return ps }
