package reflect

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

var typeKeyCache sync.Map

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func TypeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if cached, ok := typeKeyCache.Load(t); ok {
		return cached.(string)
	}

	key := buildTypeKey(t)
	typeKeyCache.Store(t, key)
	return key
}

func buildTypeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + buildTypeKey(t.Elem())
	case reflect.Slice:
		return "[]" + buildTypeKey(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + buildTypeKey(t.Elem())
	case reflect.Map:
		return "map[" + buildTypeKey(t.Key()) + "]" + buildTypeKey(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + buildTypeKey(t.Elem())
		case reflect.SendDir:
			return "chan<- " + buildTypeKey(t.Elem())
		default:
			return "chan " + buildTypeKey(t.Elem())
		}
	case reflect.Func:
		return t.String()
	default:
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}

// TypeName is the short, package-qualified name used in messages.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// IsStruct reports whether t is a struct or a pointer to a struct.
func IsStruct(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

type Field struct {
	Name     string
	Index    []int
	Type     reflect.Type
	Settable bool
}

// StructFields returns the fields of t carrying tagKey, in declaration order.
// t may be a struct or a pointer to a struct; any other kind has no fields.
func StructFields(t reflect.Type, tagKey string) []Field {
	if !IsStruct(t) {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if _, ok := f.Tag.Lookup(tagKey); !ok {
			continue
		}
		fields = append(
			fields, Field{
				Name:     f.Name,
				Index:    f.Index,
				Type:     f.Type,
				Settable: f.IsExported(),
			},
		)
	}
	return fields
}

type Signature struct {
	Params   []reflect.Type
	Out      reflect.Type
	HasError bool
}

var (
	ErrNotFunc         = errors.New("constructor must be a function")
	ErrBadReturnValues = errors.New("constructor must return (T) or (T, error)")
)

// FuncSignature inspects fn, which must be a function returning T or (T, error).
func FuncSignature(fn any) (Signature, error) {
	if fn == nil {
		return Signature{}, ErrNotFunc
	}

	ft := reflect.TypeOf(fn)
	if ft.Kind() != reflect.Func {
		return Signature{}, fmt.Errorf("%w, got %s", ErrNotFunc, ft)
	}
	if ft.IsVariadic() {
		return Signature{}, fmt.Errorf("%w: variadic constructor %s", ErrNotFunc, ft)
	}

	sig := Signature{}
	switch ft.NumOut() {
	case 1:
		if ft.Out(0) == errorType {
			return Signature{}, fmt.Errorf("%w: %s", ErrBadReturnValues, ft)
		}
	case 2:
		if ft.Out(1) != errorType {
			return Signature{}, fmt.Errorf("%w: %s", ErrBadReturnValues, ft)
		}
		sig.HasError = true
	default:
		return Signature{}, fmt.Errorf("%w: %s", ErrBadReturnValues, ft)
	}

	sig.Out = ft.Out(0)
	sig.Params = make([]reflect.Type, ft.NumIn())
	for i := range sig.Params {
		sig.Params[i] = ft.In(i)
	}
	return sig, nil
}
