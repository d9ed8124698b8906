package ioc

import (
	reflectPkg "reflect"

	"github.com/danpasecinic/ioc/internal/reflect"
)

// TypeOf returns the contract for T. Unlike reflect.TypeOf it works for
// interface types.
func TypeOf[T any]() reflectPkg.Type {
	return reflect.TypeOf[T]()
}

// Resolve builds a new instance for contract together with its whole
// dependency tree. Nothing is cached: every call builds a fresh graph.
//
// Contracts without a binding are built as their own concrete type, unless
// the container was created WithStrict. Cycles fail with
// ErrCyclicDependency instead of recursing forever.
func (c *Container) Resolve(contract reflectPkg.Type) (any, error) {
	return c.internal.Resolve(contract)
}

// ResolveWithProperties is Resolve, but the root instance always gets its
// properties injected, even when its type is declared ImportConstructor.
func (c *Container) ResolveWithProperties(contract reflectPkg.Type) (any, error) {
	return c.internal.ResolveWithProperties(contract)
}

func Resolve[T any](c *Container) (T, error) {
	return typed[T](c.Resolve(TypeOf[T]()))
}

func ResolveWithProperties[T any](c *Container) (T, error) {
	return typed[T](c.ResolveWithProperties(TypeOf[T]()))
}

func MustResolve[T any](c *Container) T {
	v, err := Resolve[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

func typed[T any](instance any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}

	v, ok := instance.(T)
	if !ok {
		return zero, errIncompatibleResult(
			reflect.TypeName(TypeOf[T]()), reflect.TypeName(reflectPkg.TypeOf(instance)),
		)
	}
	return v, nil
}
