package ioc

import (
	"fmt"
	reflectPkg "reflect"

	"github.com/danpasecinic/ioc/internal/container"
	"github.com/danpasecinic/ioc/internal/reflect"
)

// Descriptor declares how the container may use one type: which
// constructors it has, whether it is a constructor-injected consumer, and
// which contracts it exports.
type Descriptor struct {
	typ               reflectPkg.Type
	importConstructor bool
	exports           []reflectPkg.Type
	constructors      []container.Constructor
}

type DescriptorOption func(*Descriptor)

// Type declares T. Struct fields tagged `ioc:""` are found by reflection
// and need no option.
func Type[T any](opts ...DescriptorOption) *Descriptor {
	d := &Descriptor{typ: reflect.TypeOf[T]()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Descriptor) Type() reflectPkg.Type {
	return d.typ
}

// ImportConstructor marks the type as a consumer that receives everything
// through its constructor. Its properties are not injected.
func ImportConstructor() DescriptorOption {
	return func(d *Descriptor) {
		d.importConstructor = true
	}
}

// Export binds the type to contract C when the type set is scanned.
// Whether the type implements C is checked when C is resolved.
func Export[C any]() DescriptorOption {
	return func(d *Descriptor) {
		d.exports = append(d.exports, reflect.TypeOf[C]())
	}
}

// ExportSelf binds the type to itself when the type set is scanned.
func ExportSelf() DescriptorOption {
	return func(d *Descriptor) {
		d.exports = append(d.exports, d.typ)
	}
}

// Constructors declares the public constructors of the type. Each must be a
// func returning the type, or the type and an error. Declaring an invalid
// constructor panics.
func Constructors(fns ...any) DescriptorOption {
	return func(d *Descriptor) {
		for _, fn := range fns {
			sig, err := reflect.FuncSignature(fn)
			if err != nil {
				panic(fmt.Sprintf("ioc: invalid constructor for %s: %v", reflect.TypeName(d.typ), err))
			}
			if !sig.Out.AssignableTo(d.typ) {
				panic(
					fmt.Sprintf(
						"ioc: constructor %s returns %s, expected %s",
						reflectPkg.TypeOf(fn), reflect.TypeName(sig.Out), reflect.TypeName(d.typ),
					),
				)
			}

			d.constructors = append(
				d.constructors, container.Constructor{
					Fn:       reflectPkg.ValueOf(fn),
					Params:   sig.Params,
					HasError: sig.HasError,
				},
			)
		}
	}
}

// TypeSet is a named, enumerable set of type declarations, the unit the
// container scans. Sets can include other sets.
type TypeSet struct {
	name    string
	types   []*Descriptor
	subsets []*TypeSet
}

func NewTypeSet(name string) *TypeSet {
	return &TypeSet{
		name: name,
	}
}

func (ts *TypeSet) Name() string {
	return ts.name
}

func (ts *TypeSet) Add(descs ...*Descriptor) *TypeSet {
	ts.types = append(ts.types, descs...)
	return ts
}

func (ts *TypeSet) Include(subset *TypeSet) *TypeSet {
	ts.subsets = append(ts.subsets, subset)
	return ts
}

// Descriptors flattens the set depth-first, included sets before the set's
// own declarations. A set reachable twice is only visited once.
func (ts *TypeSet) Descriptors() []*Descriptor {
	var out []*Descriptor
	seen := make(map[*TypeSet]bool)

	var walk func(s *TypeSet)
	walk = func(s *TypeSet) {
		if s == nil || seen[s] {
			return
		}
		seen[s] = true

		for _, sub := range s.subsets {
			walk(sub)
		}
		out = append(out, s.types...)
	}

	walk(ts)
	return out
}

// DefaultTypes is scanned by New. Packages add their declarations to it
// from init functions with Declare.
var DefaultTypes = NewTypeSet("default")

func Declare(descs ...*Descriptor) {
	DefaultTypes.Add(descs...)
}
