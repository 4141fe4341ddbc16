package dispatch

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"go.bytecodealliance.org/wit"
)

// Signature renders d in WIT function syntax, e.g.
//
//	kRing(origin: s64, k: s64) -> list<s64>
//
// Fallible results render as result<T>.
func Signature(d *Descriptor) string {
	var b strings.Builder
	b.WriteString(d.Name)
	b.WriteByte('(')
	for i, p := range d.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(TypeString(p.Type))
	}
	b.WriteByte(')')
	if d.Result != nil {
		res := TypeString(d.Result)
		if d.Fallible {
			res = "result<" + res + ">"
		}
		b.WriteString(" -> ")
		b.WriteString(res)
	}
	return b.String()
}

// TypeString renders a WIT type. Named typedefs render by name.
func TypeString(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.S32:
		return "s32"
	case wit.S64:
		return "s64"
	case wit.F64:
		return "f64"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		switch k := v.Kind.(type) {
		case *wit.List:
			return "list<" + TypeString(k.Type) + ">"
		case *wit.Tuple:
			parts := make([]string, len(k.Types))
			for i, e := range k.Types {
				parts[i] = TypeString(e)
			}
			return "tuple<" + strings.Join(parts, ", ") + ">"
		}
		return "typedef"
	default:
		return fmt.Sprintf("%T", t)
	}
}

// Schema describes the argument list of d as a JSON schema array.
func Schema(d *Descriptor) *jsonschema.Schema {
	items := make([]*jsonschema.Schema, len(d.Params))
	for i, p := range d.Params {
		s := schemaOf(p.Type)
		s.Title = p.Name
		items[i] = s
	}
	n := uint64(len(d.Params))
	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       d.Name,
		Description: d.Doc,
		Type:        "array",
		PrefixItems: items,
		Items:       jsonschema.FalseSchema,
		MinItems:    &n,
		MaxItems:    &n,
	}
}

func schemaOf(t wit.Type) *jsonschema.Schema {
	switch v := t.(type) {
	case wit.Bool:
		return &jsonschema.Schema{Type: "boolean"}
	case wit.S32, wit.S64:
		return &jsonschema.Schema{Type: "integer"}
	case wit.F64:
		return &jsonschema.Schema{Type: "number"}
	case wit.String:
		return &jsonschema.Schema{Type: "string"}
	case *wit.TypeDef:
		switch k := v.Kind.(type) {
		case *wit.List:
			return &jsonschema.Schema{Type: "array", Items: schemaOf(k.Type)}
		case *wit.Tuple:
			items := make([]*jsonschema.Schema, len(k.Types))
			for i, e := range k.Types {
				items[i] = schemaOf(e)
			}
			return &jsonschema.Schema{Type: "array", PrefixItems: items}
		case *wit.Record:
			props := jsonschema.NewProperties()
			var required []string
			for _, f := range k.Fields {
				props.Set(f.Name, schemaOf(f.Type))
				if !optional(f.Type) {
					required = append(required, f.Name)
				}
			}
			return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
		}
	}
	return &jsonschema.Schema{}
}

// Hole lists may be omitted by the host.
func optional(t wit.Type) bool {
	td, ok := t.(*wit.TypeDef)
	if !ok {
		return false
	}
	l, ok := td.Kind.(*wit.List)
	if !ok {
		return false
	}
	inner, ok := l.Type.(*wit.TypeDef)
	if !ok {
		return false
	}
	_, ok = inner.Kind.(*wit.List)
	return ok
}
