package container

import (
	"log/slog"
	"reflect"
	"time"

	reflectx "github.com/danpasecinic/ioc/internal/reflect"
)

type ResolveHook func(contract string, duration time.Duration, err error)

type RegisterHook func(contract, target string)

type Config struct {
	Logger     *slog.Logger
	Metadata   Metadata
	Strict     bool
	OnResolve  []ResolveHook
	OnRegister []RegisterHook
}

// Container owns one registry and resolves object graphs out of it.
// Registration and resolution must be serialized by the caller.
type Container struct {
	registry *Registry
	meta     Metadata
	logger   *slog.Logger
	strict   bool

	// active is the session of the resolution in flight. Factories that call
	// back into the container extend it instead of starting a new path.
	active *session

	onResolve  []ResolveHook
	onRegister []RegisterHook
}

func New(cfg *Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	meta := cfg.Metadata
	if meta == nil {
		meta = Inferred
	}

	return &Container{
		registry:   NewRegistry(),
		meta:       meta,
		logger:     logger,
		strict:     cfg.Strict,
		onResolve:  cfg.OnResolve,
		onRegister: cfg.OnRegister,
	}
}

func (c *Container) RegisterSelf(t reflect.Type) bool {
	return c.register(&Binding{Contract: t, Target: t})
}

func (c *Container) RegisterContract(t, contract reflect.Type) bool {
	return c.register(&Binding{Contract: contract, Target: t})
}

func (c *Container) RegisterFactory(contract reflect.Type, factory FactoryFunc) bool {
	return c.register(&Binding{Contract: contract, Factory: factory})
}

func (c *Container) register(b *Binding) bool {
	contract := reflectx.TypeName(b.Contract)
	target := b.Kind().String()
	if b.Target != nil {
		target = reflectx.TypeName(b.Target)
	}

	if !c.registry.Register(b) {
		c.logger.Debug("duplicate binding ignored", "contract", contract, "target", target)
		return false
	}

	c.logger.Debug("binding registered", "contract", contract, "target", target)
	for _, hook := range c.onRegister {
		hook(contract, target)
	}
	return true
}

// Scan registers every consumer under itself and every provider under the
// contracts it exports. Consumers are types marked for constructor injection
// or having at least one property marked for injection.
func (c *Container) Scan(name string, types []reflect.Type) {
	before := c.registry.Size()

	for _, t := range types {
		markers := c.meta.Markers(t)
		if markers.ImportConstructor || len(c.meta.Properties(t)) > 0 {
			c.RegisterSelf(t)
		}
		for _, contract := range markers.Exports {
			c.RegisterContract(t, contract)
		}
	}

	c.logger.Debug(
		"type set scanned",
		"name", name,
		"types", len(types),
		"bindings", c.registry.Size()-before,
	)
}

func (c *Container) Has(contract reflect.Type) bool {
	return c.registry.Has(contract)
}

func (c *Container) Binding(contract reflect.Type) (*Binding, bool) {
	return c.registry.Get(contract)
}

func (c *Container) Contracts() []reflect.Type {
	return c.registry.Contracts()
}

func (c *Container) Size() int {
	return c.registry.Size()
}

func (c *Container) Strict() bool {
	return c.strict
}
