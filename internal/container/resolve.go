package container

import (
	"errors"
	"reflect"
	"slices"
	"time"

	reflectx "github.com/danpasecinic/ioc/internal/reflect"
)

// session is the resolution path of one top-level Resolve call, including
// calls made from factories while it is in flight. A contract that shows up
// twice on the path is a cycle.
type session struct {
	path []reflect.Type
}

func (s *session) push(t reflect.Type) error {
	if i := slices.Index(s.path, t); i >= 0 {
		chain := make([]string, 0, len(s.path)-i+1)
		for _, p := range s.path[i:] {
			chain = append(chain, reflectx.TypeName(p))
		}
		chain = append(chain, reflectx.TypeName(t))
		return errCyclicDependency(chain)
	}

	s.path = append(s.path, t)
	return nil
}

func (s *session) pop() {
	s.path = s.path[:len(s.path)-1]
}

func (s *session) names() []string {
	names := make([]string, len(s.path))
	for i, p := range s.path {
		names[i] = reflectx.TypeName(p)
	}
	return names
}

type request struct {
	viaBinding      bool
	forceProperties bool
}

// Resolve builds a fresh instance of contract and everything it depends on.
func (c *Container) Resolve(contract reflect.Type) (any, error) {
	return c.resolveRoot(contract, false)
}

// ResolveWithProperties is Resolve, except that the root instance always
// gets its properties injected, even if its type is marked for constructor
// injection only.
func (c *Container) ResolveWithProperties(contract reflect.Type) (any, error) {
	return c.resolveRoot(contract, true)
}

func (c *Container) resolveRoot(contract reflect.Type, forceProperties bool) (any, error) {
	start := time.Now()

	s := c.active
	nested := s != nil
	if !nested {
		s = &session{}
		c.active = s
		defer func() { c.active = nil }()
	}

	v, err := c.resolve(s, contract, request{forceProperties: forceProperties})
	if !nested {
		c.callResolveHooks(contract, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

func (c *Container) callResolveHooks(contract reflect.Type, duration time.Duration, err error) {
	for _, hook := range c.onResolve {
		hook(reflectx.TypeName(contract), duration, err)
	}
}

func (c *Container) resolve(s *session, contract reflect.Type, req request) (reflect.Value, error) {
	if contract == nil {
		return reflect.Value{}, errNotRegistered(reflectx.TypeName(nil), s.names())
	}
	if err := s.push(contract); err != nil {
		return reflect.Value{}, err
	}
	defer s.pop()

	c.logger.Debug("resolving", "contract", reflectx.TypeName(contract), "depth", len(s.path))

	var (
		v   reflect.Value
		err error
	)

	binding, ok := c.registry.Get(contract)
	switch {
	case !ok:
		if c.strict && !req.viaBinding {
			return reflect.Value{}, errNotRegistered(reflectx.TypeName(contract), s.names())
		}
		v, err = c.construct(s, contract, req.forceProperties)
	case binding.Factory != nil:
		v, err = c.callFactory(s, contract, binding.Factory)
	case binding.Target != contract:
		v, err = c.resolve(
			s, binding.Target, request{
				viaBinding:      true,
				forceProperties: req.forceProperties,
			},
		)
	default:
		v, err = c.construct(s, contract, req.forceProperties)
	}
	if err != nil {
		return reflect.Value{}, err
	}

	if !v.Type().AssignableTo(contract) {
		return reflect.Value{}, errIncompatibleBinding(
			reflectx.TypeName(contract), reflectx.TypeName(v.Type()), s.names(),
		)
	}

	return v, nil
}

func (c *Container) callFactory(s *session, contract reflect.Type, factory FactoryFunc) (reflect.Value, error) {
	instance, err := factory()
	if err != nil {
		var cycle *Error
		if errors.As(err, &cycle) && cycle.Code == ErrCodeCyclicDependency {
			return reflect.Value{}, cycle
		}
		return reflect.Value{}, errConstructorFailed(reflectx.TypeName(contract), err, s.names())
	}
	if reflectx.IsNil(instance) {
		return reflect.Zero(contract), nil
	}
	return reflect.ValueOf(instance), nil
}

func (c *Container) construct(s *session, t reflect.Type, forceProperties bool) (reflect.Value, error) {
	name := reflectx.TypeName(t)

	ctor, ok := selectConstructor(c.meta.Constructors(t))
	if !ok {
		return reflect.Value{}, errNoPublicConstructor(name, s.names())
	}

	c.logger.Debug("constructor selected", "type", name, "params", len(ctor.Params))

	args := make([]reflect.Value, len(ctor.Params))
	for i, param := range ctor.Params {
		arg, err := c.resolve(s, param, request{})
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = arg
	}

	instance, err := ctor.call(t, args)
	if err != nil {
		return reflect.Value{}, errConstructorFailed(name, err, s.names())
	}

	if !forceProperties && c.meta.Markers(t).ImportConstructor {
		return instance, nil
	}

	return c.injectProperties(s, t, instance)
}
