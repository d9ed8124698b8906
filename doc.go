// Package ioc is a small reflection-based inversion of control container.
//
// A container maps contracts (usually interfaces) to bindings and builds
// fresh object graphs on demand. Nothing is cached: every Resolve call
// constructs a new instance and every dependency below it.
//
// # Declaring types
//
// Types are declared in type sets. A type that receives its dependencies
// through a constructor is marked ImportConstructor; a type that implements
// a contract is marked with Export:
//
//	var Types = ioc.NewTypeSet("customers").Add(
//	    ioc.Type[*CustomerBLL](
//	        ioc.ImportConstructor(),
//	        ioc.Constructors(NewCustomerBLL),
//	    ),
//	    ioc.Type[*SQLCustomerDAL](ioc.Export[CustomerDAL]()),
//	)
//
//	c := ioc.NewFromTypes(Types)
//
// Packages that prefer a global registration add their declarations to
// DefaultTypes with Declare, and New scans it.
//
// # Registering bindings
//
// Bindings can also be registered directly. The first registration of a
// contract wins; later ones are ignored and report false:
//
//	ioc.Bind[CustomerDAL, *SQLCustomerDAL](c)
//	ioc.Self[*Logger](c)
//	ioc.ProvideFactory(c, func() (*Config, error) { return loadConfig() })
//
// # Resolving
//
//	bll, err := ioc.Resolve[*CustomerBLL](c)
//
// The constructor with the most parameters is used; ties go to the first
// declared one. Structs without declared constructors are built from their
// zero value. After construction, exported fields tagged `ioc:""` are
// injected, unless the type is marked ImportConstructor:
//
//	type CustomerBLL struct {
//	    DAL    CustomerDAL `ioc:""`
//	    Logger *Logger     `ioc:""`
//	}
//
// By default a contract without a binding is built as its own concrete
// type. WithStrict turns that into ErrNotRegistered for constructor
// parameters and ErrUnresolvableProperty for properties.
//
// # Errors
//
// Every failure is an *Error carrying a code, the offending type and the
// resolution stack. Match them with errors.Is:
//
//	errors.Is(err, ioc.ErrCyclicDependency)
//
// # Validation and debugging
//
// Validate walks all bindings without building anything and reports every
// problem at once. Graph, FprintGraph, FprintGraphDOT, FprintBindings and
// FprintGraphYAML render the dependency graph for inspection.
package ioc
