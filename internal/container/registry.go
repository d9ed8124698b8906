package container

import (
	"reflect"
)

// FactoryFunc builds an instance on its own, bypassing constructor selection.
type FactoryFunc func() (any, error)

type BindingKind int

const (
	BindingSelf BindingKind = iota
	BindingContract
	BindingFactory
)

func (k BindingKind) String() string {
	switch k {
	case BindingSelf:
		return "self"
	case BindingContract:
		return "contract"
	case BindingFactory:
		return "factory"
	default:
		return "unknown"
	}
}

type Binding struct {
	Contract reflect.Type
	Target   reflect.Type
	Factory  FactoryFunc
}

func (b *Binding) Kind() BindingKind {
	switch {
	case b.Factory != nil:
		return BindingFactory
	case b.Target == b.Contract:
		return BindingSelf
	default:
		return BindingContract
	}
}

// Registry maps each contract to at most one binding. It is not
// synchronized: it is filled while the container is set up and only read
// afterwards.
type Registry struct {
	bindings map[reflect.Type]*Binding
	order    []reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[reflect.Type]*Binding),
	}
}

// Register stores b unless its contract is already bound, and reports
// whether it did. The first registration always wins.
func (r *Registry) Register(b *Binding) bool {
	if _, exists := r.bindings[b.Contract]; exists {
		return false
	}

	r.bindings[b.Contract] = b
	r.order = append(r.order, b.Contract)
	return true
}

func (r *Registry) Has(contract reflect.Type) bool {
	_, exists := r.bindings[contract]
	return exists
}

func (r *Registry) Get(contract reflect.Type) (*Binding, bool) {
	b, exists := r.bindings[contract]
	return b, exists
}

// Contracts returns the bound contracts in registration order.
func (r *Registry) Contracts() []reflect.Type {
	contracts := make([]reflect.Type, len(r.order))
	copy(contracts, r.order)
	return contracts
}

func (r *Registry) Size() int {
	return len(r.order)
}
