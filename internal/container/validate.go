package container

import (
	"reflect"

	"go.uber.org/multierr"

	"github.com/danpasecinic/ioc/internal/graph"
	reflectx "github.com/danpasecinic/ioc/internal/reflect"
)

type NodeKind int

const (
	NodeSelf NodeKind = iota
	NodeContract
	NodeFactory
	NodeImplicit
)

func (k NodeKind) String() string {
	switch k {
	case NodeSelf:
		return "self"
	case NodeContract:
		return "contract"
	case NodeFactory:
		return "factory"
	case NodeImplicit:
		return "implicit"
	default:
		return "unknown"
	}
}

type Node struct {
	Key    string
	Type   reflect.Type
	Kind   NodeKind
	Target reflect.Type
}

// Analysis is the static view of what resolving every registered contract
// would touch, computed without building anything.
type Analysis struct {
	Graph    *graph.Graph
	Nodes    map[string]*Node
	Problems []error
}

func (a *Analysis) Name(key string) string {
	if n, ok := a.Nodes[key]; ok {
		return reflectx.TypeName(n.Type)
	}
	return key
}

// CycleFrom reports the first cycle reachable from key as a
// CyclicDependency error, or nil if there is none.
func (a *Analysis) CycleFrom(key string) error {
	path := a.Graph.FindCyclePath(key)
	if path == nil {
		return nil
	}
	return a.cycleError(path)
}

func (a *Analysis) cycleError(path []string) *Error {
	chain := make([]string, len(path))
	for i, key := range path {
		chain[i] = a.Name(key)
	}
	return errCyclicDependency(chain)
}

// Analyze walks the registry the same way Resolve would and records the
// dependency edges plus every node that could not be built.
func (c *Container) Analyze() *Analysis {
	a := &Analysis{
		Graph: graph.New(),
		Nodes: make(map[string]*Node),
	}

	var visit func(t reflect.Type)
	visit = func(t reflect.Type) {
		key := reflectx.TypeKey(t)
		if _, seen := a.Nodes[key]; seen {
			return
		}

		node := &Node{Key: key, Type: t, Kind: NodeImplicit}
		a.Nodes[key] = node

		var deps []reflect.Type
		binding, bound := c.registry.Get(t)
		switch {
		case bound && binding.Factory != nil:
			node.Kind = NodeFactory
		case bound && binding.Target != t:
			node.Kind = NodeContract
			node.Target = binding.Target
			if binding.Target.Kind() != reflect.Interface && !binding.Target.AssignableTo(t) {
				a.Problems = append(
					a.Problems, errIncompatibleBinding(
						reflectx.TypeName(t), reflectx.TypeName(binding.Target), nil,
					),
				)
			}
			a.Graph.AddNode(key, []string{reflectx.TypeKey(binding.Target)})
			visit(binding.Target)
			return
		default:
			if bound {
				node.Kind = NodeSelf
			}
			deps = c.staticDependencies(a, t)
		}

		keys := make([]string, len(deps))
		for i, dep := range deps {
			keys[i] = reflectx.TypeKey(dep)
		}
		a.Graph.AddNode(key, keys)

		for _, dep := range deps {
			if c.strict && !c.registry.Has(dep) {
				continue
			}
			visit(dep)
		}
	}

	for _, contract := range c.registry.Contracts() {
		visit(contract)
	}

	for _, path := range a.Graph.CyclePaths() {
		a.Problems = append(a.Problems, a.cycleError(path))
	}

	return a
}

func (c *Container) staticDependencies(a *Analysis, t reflect.Type) []reflect.Type {
	name := reflectx.TypeName(t)

	ctor, ok := selectConstructor(c.meta.Constructors(t))
	if !ok {
		a.Problems = append(a.Problems, errNoPublicConstructor(name, nil))
		return nil
	}

	var deps []reflect.Type
	for _, param := range ctor.Params {
		if c.strict && !c.registry.Has(param) {
			a.Problems = append(a.Problems, errNotRegistered(reflectx.TypeName(param), []string{name}))
		}
		deps = append(deps, param)
	}

	if c.meta.Markers(t).ImportConstructor {
		return deps
	}

	for _, prop := range c.meta.Properties(t) {
		switch {
		case !prop.Settable:
			a.Problems = append(
				a.Problems, errUnresolvableProperty(name, prop.Name, "field is not exported", nil),
			)
			continue
		case c.strict && !c.registry.Has(prop.Type):
			a.Problems = append(
				a.Problems, errUnresolvableProperty(
					name, prop.Name, "type "+reflectx.TypeName(prop.Type)+" is not registered", nil,
				),
			)
		}
		deps = append(deps, prop.Type)
	}

	return deps
}

// Validate reports every problem Analyze found, or nil.
func (c *Container) Validate() error {
	a := c.Analyze()
	if len(a.Problems) == 0 {
		return nil
	}
	return errValidationFailed(multierr.Combine(a.Problems...))
}
