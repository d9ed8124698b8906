package ioc

import "log/slog"

type Option func(*containerConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *containerConfig) {
		cfg.logger = logger
	}
}

// WithStrict makes resolution refuse contracts that were never registered.
// Constructor parameters fail with ErrNotRegistered and injected properties
// with ErrUnresolvableProperty. The default is to build such contracts as
// their own concrete type.
func WithStrict() Option {
	return func(cfg *containerConfig) {
		cfg.strict = true
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *containerConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}

func WithRegisterObserver(hook RegisterHook) Option {
	return func(cfg *containerConfig) {
		cfg.onRegister = append(cfg.onRegister, hook)
	}
}
