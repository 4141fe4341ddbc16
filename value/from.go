package value

import "sort"

// From converts plain Go values into a Value. Unsigned 64-bit integers keep
// their bit pattern. Plain Go maps are ordered by key. Unsupported types
// become null.
func From(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Map:
		return FromMap(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Int(int64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return Int(int64(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return String(t)
	case []Value:
		return Seq(t...)
	case []any:
		return SeqOf(t, From)
	case []int64:
		return SeqOf(t, Int)
	case []float64:
		return SeqOf(t, Float)
	case []string:
		return SeqOf(t, String)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			m.Set(k, From(t[k]))
		}
		return FromMap(m)
	}
	return Null()
}
