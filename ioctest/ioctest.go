// Package ioctest wraps a container with helpers that fail the test
// instead of returning errors.
package ioctest

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/danpasecinic/ioc"
	"github.com/danpasecinic/ioc/internal/reflect"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

type TestContainer struct {
	*ioc.Container
	tb TB
}

// New returns an empty container that logs to the test output. Register
// fakes before scanning type sets: the first binding of a contract wins.
func New(tb TB, opts ...ioc.Option) *TestContainer {
	tb.Helper()

	logger := slog.New(slog.NewTextHandler(logWriter{tb}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]ioc.Option{ioc.WithLogger(logger)}, opts...)

	return &TestContainer{
		Container: ioc.NewFromTypes(nil, opts...),
		tb:        tb,
	}
}

type logWriter struct {
	tb TB
}

func (w logWriter) Write(p []byte) (int, error) {
	w.tb.Logf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func (tc *TestContainer) Scan(types ...*ioc.TypeSet) *TestContainer {
	for _, ts := range types {
		tc.AddTypeSet(ts)
	}
	return tc
}

func (tc *TestContainer) RequireValidate() {
	tc.tb.Helper()

	if err := tc.Validate(); err != nil {
		tc.tb.Fatalf("container validation failed: %v", err)
	}
}

// Fake binds contract C to value. Every resolution of C returns value
// itself.
func Fake[C any](tc *TestContainer, value C) {
	tc.tb.Helper()

	ok := ioc.ProvideFactory(
		tc.Container, func() (C, error) {
			return value, nil
		},
	)
	if !ok {
		tc.tb.Fatalf("cannot fake %s: contract is already bound", name[C]())
	}
}

func MustBind[C, T any](tc *TestContainer) {
	tc.tb.Helper()

	if !ioc.Bind[C, T](tc.Container) {
		tc.tb.Fatalf("cannot bind %s: contract is already bound", name[C]())
	}
}

func AssertHas[T any](tc *TestContainer) {
	tc.tb.Helper()

	if !tc.Has(ioc.TypeOf[T]()) {
		tc.tb.Fatalf("expected container to have %s", name[T]())
	}
}

func AssertNotHas[T any](tc *TestContainer) {
	tc.tb.Helper()

	if tc.Has(ioc.TypeOf[T]()) {
		tc.tb.Fatalf("expected container to not have %s", name[T]())
	}
}

func MustResolve[T any](tc *TestContainer) T {
	tc.tb.Helper()

	v, err := ioc.Resolve[T](tc.Container)
	if err != nil {
		tc.tb.Fatalf("failed to resolve %s: %v", name[T](), err)
	}
	return v
}

// RequireResolveError fails unless resolving T fails with an error
// matching target.
func RequireResolveError[T any](tc *TestContainer, target error) error {
	tc.tb.Helper()

	_, err := ioc.Resolve[T](tc.Container)
	if err == nil {
		tc.tb.Fatalf("expected resolving %s to fail", name[T]())
		return nil
	}
	if !errors.Is(err, target) {
		tc.tb.Fatalf("resolving %s: expected %v, got %v", name[T](), target, err)
	}
	return err
}

func name[T any]() string {
	return reflect.TypeName(reflect.TypeOf[T]())
}
