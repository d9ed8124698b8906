package ioc

import (
	"errors"
	"fmt"

	"github.com/danpasecinic/ioc/internal/container"
)

type ErrorCode = container.ErrorCode

const (
	ErrCodeUnknown              = container.ErrCodeUnknown
	ErrCodeNotRegistered        = container.ErrCodeNotRegistered
	ErrCodeNoPublicConstructor  = container.ErrCodeNoPublicConstructor
	ErrCodeUnresolvableProperty = container.ErrCodeUnresolvableProperty
	ErrCodeCyclicDependency     = container.ErrCodeCyclicDependency
	ErrCodeConstructorFailed    = container.ErrCodeConstructorFailed
	ErrCodeIncompatibleBinding  = container.ErrCodeIncompatibleBinding
	ErrCodeValidationFailed     = container.ErrCodeValidationFailed
)

// Error is returned by every failing operation. Use errors.Is with the
// sentinels below, or errors.As to get at Type, Property and Stack.
type Error = container.Error

var (
	ErrNotRegistered        = container.ErrNotRegistered
	ErrNoPublicConstructor  = container.ErrNoPublicConstructor
	ErrUnresolvableProperty = container.ErrUnresolvableProperty
	ErrCyclicDependency     = container.ErrCyclicDependency
	ErrConstructorFailed    = container.ErrConstructorFailed
	ErrIncompatibleBinding  = container.ErrIncompatibleBinding
	ErrValidationFailed     = container.ErrValidationFailed
)

func errIncompatibleResult(contract, got string) *Error {
	return &Error{
		Code:    ErrCodeIncompatibleBinding,
		Message: fmt.Sprintf("resolved %s is not assignable to %s", got, contract),
		Type:    contract,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsNotRegistered(err error) bool {
	return hasCode(err, ErrCodeNotRegistered)
}

func IsNoPublicConstructor(err error) bool {
	return hasCode(err, ErrCodeNoPublicConstructor)
}

func IsUnresolvableProperty(err error) bool {
	return hasCode(err, ErrCodeUnresolvableProperty)
}

func IsCyclicDependency(err error) bool {
	return hasCode(err, ErrCodeCyclicDependency)
}

func IsConstructorFailed(err error) bool {
	return hasCode(err, ErrCodeConstructorFailed)
}

func IsIncompatibleBinding(err error) bool {
	return hasCode(err, ErrCodeIncompatibleBinding)
}

func IsValidationFailed(err error) bool {
	return hasCode(err, ErrCodeValidationFailed)
}
