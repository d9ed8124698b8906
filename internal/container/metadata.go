package container

import (
	"reflect"

	reflectx "github.com/danpasecinic/ioc/internal/reflect"
)

// TagKey marks a struct field for property injection.
const TagKey = "ioc"

// Constructor is one way of building a type. The zero Constructor is the
// implicit zero-value constructor every struct and pointer-to-struct has.
type Constructor struct {
	Fn       reflect.Value
	Params   []reflect.Type
	HasError bool
}

func (c Constructor) Implicit() bool {
	return !c.Fn.IsValid()
}

type Property struct {
	Name     string
	Index    []int
	Type     reflect.Type
	Settable bool
}

// Markers are the provider/consumer declarations attached to a type.
// An Exports entry equal to the type itself means it exports itself.
type Markers struct {
	ImportConstructor bool
	Exports           []reflect.Type
}

// Metadata is everything the engine needs to know about a type. The
// engine never inspects declarations directly.
type Metadata interface {
	Constructors(t reflect.Type) []Constructor
	Properties(t reflect.Type) []Property
	Markers(t reflect.Type) Markers
}

// Inferred derives metadata from the type alone: the implicit constructor for
// struct kinds, tagged fields as properties, and no markers.
var Inferred Metadata = inferred{}

type inferred struct{}

func (inferred) Constructors(t reflect.Type) []Constructor {
	if reflectx.IsStruct(t) {
		return []Constructor{{}}
	}
	return nil
}

func (inferred) Properties(t reflect.Type) []Property {
	fields := reflectx.StructFields(t, TagKey)
	if len(fields) == 0 {
		return nil
	}

	props := make([]Property, len(fields))
	for i, f := range fields {
		props[i] = Property{
			Name:     f.Name,
			Index:    f.Index,
			Type:     f.Type,
			Settable: f.Settable,
		}
	}
	return props
}

func (inferred) Markers(reflect.Type) Markers {
	return Markers{}
}

// selectConstructor picks the constructor with the most parameters; the
// first declared wins a tie.
func selectConstructor(ctors []Constructor) (Constructor, bool) {
	if len(ctors) == 0 {
		return Constructor{}, false
	}

	best := 0
	for i := 1; i < len(ctors); i++ {
		if len(ctors[i].Params) > len(ctors[best].Params) {
			best = i
		}
	}
	return ctors[best], true
}

func (c Constructor) call(t reflect.Type, args []reflect.Value) (reflect.Value, error) {
	if c.Implicit() {
		if t.Kind() == reflect.Ptr {
			return reflect.New(t.Elem()), nil
		}
		return reflect.New(t).Elem(), nil
	}

	out := c.Fn.Call(args)
	if c.HasError && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}

	v := out[0]
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Zero(t), nil
		}
		v = v.Elem()
	}
	return v, nil
}
