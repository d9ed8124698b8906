package ioc

import (
	"log/slog"
	reflectPkg "reflect"

	"github.com/danpasecinic/ioc/internal/container"
	"github.com/danpasecinic/ioc/internal/reflect"
)

// Container maps contracts to bindings and builds object graphs from them.
//
// A Container is not safe for concurrent use. Registration normally happens
// while it is built; callers that register later must serialize it against
// resolution themselves.
type Container struct {
	internal *container.Container
	catalog  *catalog
	config   *containerConfig
}

type containerConfig struct {
	logger     *slog.Logger
	strict     bool
	onResolve  []ResolveHook
	onRegister []RegisterHook
}

// New creates a container and scans DefaultTypes into it.
func New(opts ...Option) *Container {
	return NewFromTypes(DefaultTypes, opts...)
}

// NewFromTypes creates a container and scans types into it.
func NewFromTypes(types *TypeSet, opts ...Option) *Container {
	c := newContainer(opts...)
	c.AddTypeSet(types)
	return c
}

func newContainer(opts ...Option) *Container {
	cfg := &containerConfig{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cat := newCatalog()

	onResolve := make([]container.ResolveHook, len(cfg.onResolve))
	for i, hook := range cfg.onResolve {
		onResolve[i] = container.ResolveHook(hook)
	}
	onRegister := make([]container.RegisterHook, len(cfg.onRegister))
	for i, hook := range cfg.onRegister {
		onRegister[i] = container.RegisterHook(hook)
	}

	internal := container.New(
		&container.Config{
			Logger:     cfg.logger,
			Metadata:   cat,
			Strict:     cfg.strict,
			OnResolve:  onResolve,
			OnRegister: onRegister,
		},
	)

	return &Container{
		internal: internal,
		catalog:  cat,
		config:   cfg,
	}
}

// AddTypeSet scans types: every consumer is registered under itself and
// every exporter under the contracts it exports. Contracts that are already
// bound keep their binding.
func (c *Container) AddTypeSet(types *TypeSet) {
	if types == nil {
		return
	}

	descs := types.Descriptors()
	scanned := make([]reflectPkg.Type, 0, len(descs))
	for _, d := range descs {
		c.catalog.add(d)
		scanned = append(scanned, d.typ)
	}

	c.internal.Scan(types.Name(), scanned)
}

// RegisterSelf binds t to itself. If t is already bound the call has no
// effect and returns false; first registration wins by contract.
func (c *Container) RegisterSelf(t reflectPkg.Type) bool {
	return c.internal.RegisterSelf(t)
}

// RegisterContract binds contract to t. If contract is already bound the
// call has no effect and returns false; first registration wins by
// contract. t may itself be a bound contract.
func (c *Container) RegisterContract(t, contract reflectPkg.Type) bool {
	return c.internal.RegisterContract(t, contract)
}

// RegisterFactory binds contract to a factory that is called on every
// resolution. Factory results do not get properties injected. The same
// first-registration-wins rule applies.
func (c *Container) RegisterFactory(contract reflectPkg.Type, factory func() (any, error)) bool {
	return c.internal.RegisterFactory(contract, factory)
}

func (c *Container) Has(contract reflectPkg.Type) bool {
	return c.internal.Has(contract)
}

func (c *Container) Size() int {
	return c.internal.Size()
}

// Contracts lists the bound contracts in registration order.
func (c *Container) Contracts() []string {
	contracts := c.internal.Contracts()
	names := make([]string, len(contracts))
	for i, t := range contracts {
		names[i] = reflect.TypeName(t)
	}
	return names
}

// Validate checks statically, without building anything, that every bound
// contract could be resolved. All problems are reported at once.
func (c *Container) Validate() error {
	return c.internal.Validate()
}
