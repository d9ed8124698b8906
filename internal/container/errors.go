package container

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeNotRegistered
	ErrCodeNoPublicConstructor
	ErrCodeUnresolvableProperty
	ErrCodeCyclicDependency
	ErrCodeConstructorFailed
	ErrCodeIncompatibleBinding
	ErrCodeValidationFailed
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:              "UNKNOWN",
	ErrCodeNotRegistered:        "NOT_REGISTERED",
	ErrCodeNoPublicConstructor:  "NO_PUBLIC_CONSTRUCTOR",
	ErrCodeUnresolvableProperty: "UNRESOLVABLE_PROPERTY",
	ErrCodeCyclicDependency:     "CYCLIC_DEPENDENCY",
	ErrCodeConstructorFailed:    "CONSTRUCTOR_FAILED",
	ErrCodeIncompatibleBinding:  "INCOMPATIBLE_BINDING",
	ErrCodeValidationFailed:     "VALIDATION_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the single failure type of the container. Type names the type
// that could not be built, Property the offending field for property
// injection failures, and Stack the resolution path (or the cycle) at the
// moment of failure.
type Error struct {
	Code     ErrorCode
	Message  string
	Type     string
	Property string
	Cause    error
	Stack    []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Type != "" {
		b.WriteString(fmt.Sprintf(" type=%q", e.Type))
	}
	if e.Property != "" {
		b.WriteString(fmt.Sprintf(" property=%q", e.Property))
	}
	if e.Type != "" || e.Property != "" {
		b.WriteString(":")
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithType(typeName string) *Error {
	e.Type = typeName
	return e
}

func (e *Error) WithStack(stack []string) *Error {
	e.Stack = stack
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

var (
	ErrNotRegistered        = &Error{Code: ErrCodeNotRegistered}
	ErrNoPublicConstructor  = &Error{Code: ErrCodeNoPublicConstructor}
	ErrUnresolvableProperty = &Error{Code: ErrCodeUnresolvableProperty}
	ErrCyclicDependency     = &Error{Code: ErrCodeCyclicDependency}
	ErrConstructorFailed    = &Error{Code: ErrCodeConstructorFailed}
	ErrIncompatibleBinding  = &Error{Code: ErrCodeIncompatibleBinding}
	ErrValidationFailed     = &Error{Code: ErrCodeValidationFailed}
)

func errNotRegistered(typeName string, path []string) *Error {
	return newError(
		ErrCodeNotRegistered,
		fmt.Sprintf("type %s is not registered", typeName),
		nil,
	).WithType(typeName).WithStack(path)
}

func errNoPublicConstructor(typeName string, path []string) *Error {
	return newError(
		ErrCodeNoPublicConstructor,
		fmt.Sprintf("type %s doesn't have a public constructor", typeName),
		nil,
	).WithType(typeName).WithStack(path)
}

func errUnresolvableProperty(owner, property, reason string, path []string) *Error {
	e := newError(
		ErrCodeUnresolvableProperty,
		fmt.Sprintf("can't resolve property %s of %s: %s", property, owner, reason),
		nil,
	).WithType(owner).WithStack(path)
	e.Property = property
	return e
}

func errCyclicDependency(chain []string) *Error {
	return newError(
		ErrCodeCyclicDependency,
		fmt.Sprintf("circular dependency detected: %s", strings.Join(chain, " -> ")),
		nil,
	).WithType(chain[0]).WithStack(chain)
}

func errConstructorFailed(typeName string, cause error, path []string) *Error {
	return newError(
		ErrCodeConstructorFailed,
		fmt.Sprintf("constructor for %s returned error", typeName),
		cause,
	).WithType(typeName).WithStack(path)
}

func errIncompatibleBinding(contract, got string, path []string) *Error {
	return newError(
		ErrCodeIncompatibleBinding,
		fmt.Sprintf("resolved %s is not assignable to %s", got, contract),
		nil,
	).WithType(contract).WithStack(path)
}

func errValidationFailed(cause error) *Error {
	return newError(ErrCodeValidationFailed, "container validation failed", cause)
}
