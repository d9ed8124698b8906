package ioc

// Self registers T under itself.
func Self[T any](c *Container) bool {
	return c.RegisterSelf(TypeOf[T]())
}

// Bind registers T as the binding for contract C. T may itself be a
// contract bound elsewhere; resolution follows the chain.
func Bind[C, T any](c *Container) bool {
	return c.RegisterContract(TypeOf[T](), TypeOf[C]())
}

// ProvideFactory binds C to factory. The factory is called for every
// resolution of C.
func ProvideFactory[C any](c *Container, factory func() (C, error)) bool {
	return c.RegisterFactory(
		TypeOf[C](), func() (any, error) {
			return factory()
		},
	)
}
