// Package codec converts between host values and native representations.
//
// Cells cross as the host's 64-bit integer with the exact bit pattern of
// the unsigned index. Coordinates are degrees on the host side and radians
// on the native side; every crossing converts exactly once.
package codec

import (
	"math"
	"strconv"

	"github.com/wippyai/h3-runtime/errors"
	"github.com/wippyai/h3-runtime/native"
	"github.com/wippyai/h3-runtime/value"
)

// Host field names.
const (
	FieldLat = "lat"
	FieldLon = "lon"
	FieldI   = "i"
	FieldJ   = "j"
)

// maxExactFloat is the largest magnitude below which every integer is
// representable as a float64.
const maxExactFloat = 1 << 53

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * (math.Pi / 180) }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * (180 / math.Pi) }

// Sub returns path extended by elem without aliasing path.
func Sub(path []string, elem string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = elem
	return out
}

// SubIndex is Sub for sequence positions.
func SubIndex(path []string, i int) []string {
	return Sub(path, strconv.Itoa(i))
}

// Int64 reads an integer argument. Floats are accepted only when integral
// and exactly representable.
func Int64(v value.Value, path []string) (int64, error) {
	switch v.Kind() {
	case value.KindInt:
		i, _ := v.AsInt()
		return i, nil
	case value.KindFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.Trunc(f) != f || math.Abs(f) > maxExactFloat {
			return 0, errors.PrecisionLoss(errors.PhaseParam, path, f, "int")
		}
		return int64(f), nil
	}
	return 0, errors.TypeMismatch(errors.PhaseParam, path, value.KindInt.String(), v.Kind().String())
}

// Int reads an integer argument that must fit a C int.
func Int(v value.Value, path []string) (int, error) {
	i, err := Int64(v, path)
	if err != nil {
		return 0, err
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, errors.OutOfRange(errors.PhaseParam, path, i, "value does not fit a 32-bit integer")
	}
	return int(i), nil
}

// Float reads a float argument. Integers are widened.
func Float(v value.Value, path []string) (float64, error) {
	f, ok := v.AsFloat()
	if !ok {
		return 0, errors.TypeMismatch(errors.PhaseParam, path, value.KindFloat.String(), v.Kind().String())
	}
	return f, nil
}

// Cell reads a cell or edge index.
func Cell(v value.Value, path []string) (native.Cell, error) {
	i, err := Int64(v, path)
	if err != nil {
		return 0, err
	}
	return native.Cell(uint64(i)), nil
}

// CellValue encodes h with its exact bit pattern.
func CellValue(h native.Cell) value.Value {
	return value.Int(int64(uint64(h)))
}

// Cells reads a sequence of cells.
func Cells(v value.Value, path []string) ([]native.Cell, error) {
	items, ok := v.AsSeq()
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseParam, path, value.KindSeq.String(), v.Kind().String())
	}
	out := make([]native.Cell, len(items))
	for i, it := range items {
		c, err := Cell(it, SubIndex(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// CellsValue encodes cells as a sequence.
func CellsValue(cells []native.Cell) value.Value {
	return value.SeqOf(cells, CellValue)
}

// IntsValue encodes 32-bit native integers as a sequence.
func IntsValue(ints []int32) value.Value {
	return value.SeqOf(ints, func(i int32) value.Value { return value.Int(int64(i)) })
}
