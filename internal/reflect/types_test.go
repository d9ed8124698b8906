package reflect

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type testInterface interface {
	DoSomething()
}

type testStruct struct {
	Name string
}

func (t *testStruct) DoSomething() {}

type taggedStruct struct {
	Logger  *testStruct   `ioc:""`
	Service testInterface `ioc:"import"`
	plain   string
	hidden  *testStruct `ioc:""`
	Other   int
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	if got := TypeOf[testInterface](); got.Kind() != reflect.Interface {
		t.Errorf("expected interface kind, got %s", got.Kind())
	}
	if got := TypeOf[*testStruct](); got != reflect.TypeOf(&testStruct{}) {
		t.Errorf("unexpected type %s", got)
	}
}

func TestTypeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  reflect.Type
	}{
		{"int", TypeOf[int]()},
		{"string", TypeOf[string]()},
		{"pointer to struct", TypeOf[*testStruct]()},
		{"slice", TypeOf[[]string]()},
		{"array", TypeOf[[12]string]()},
		{"map", TypeOf[map[string]int]()},
		{"interface", TypeOf[testInterface]()},
		{"context.Context", TypeOf[context.Context]()},
		{"anonymous struct", TypeOf[struct{ A int }]()},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()
				if got := TypeKey(tt.typ); got == "" {
					t.Error("TypeKey returned empty string")
				}
			},
		)
	}
}

func TestTypeKeyUnique(t *testing.T) {
	t.Parallel()

	keys := map[string]bool{}
	types := []reflect.Type{
		TypeOf[int](),
		TypeOf[int32](),
		TypeOf[int64](),
		TypeOf[string](),
		TypeOf[*string](),
		TypeOf[[]string](),
		TypeOf[[2]string](),
		TypeOf[[3]string](),
		TypeOf[map[string]int](),
		TypeOf[testStruct](),
		TypeOf[*testStruct](),
	}

	for _, typ := range types {
		key := TypeKey(typ)
		if keys[key] {
			t.Errorf("duplicate key: %s", key)
		}
		keys[key] = true
	}
}

func TestTypeKeyNil(t *testing.T) {
	t.Parallel()

	if TypeKey(nil) != "<nil>" {
		t.Error("expected <nil> key for nil type")
	}
	if TypeName(nil) != "<nil>" {
		t.Error("expected <nil> name for nil type")
	}
}

func TestIsNil(t *testing.T) {
	t.Parallel()

	var nilPtr *testStruct
	var nilSlice []string
	var nilMap map[string]int
	var nilInterface testInterface

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, true},
		{"nil pointer", nilPtr, true},
		{"nil slice", nilSlice, true},
		{"nil map", nilMap, true},
		{"nil interface", nilInterface, true},
		{"non-nil int", 42, false},
		{"non-nil string", "hello", false},
		{"non-nil struct", testStruct{}, false},
		{"non-nil pointer", &testStruct{}, false},
		{"non-nil slice", []string{"a"}, false},
		{"non-nil map", map[string]int{"a": 1}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()
				if got := IsNil(tt.v); got != tt.want {
					t.Errorf("IsNil() = %v, want %v", got, tt.want)
				}
			},
		)
	}
}

func TestIsStruct(t *testing.T) {
	t.Parallel()

	if !IsStruct(TypeOf[testStruct]()) {
		t.Error("testStruct should be a struct")
	}
	if !IsStruct(TypeOf[*testStruct]()) {
		t.Error("*testStruct should be a struct")
	}
	if IsStruct(TypeOf[**testStruct]()) {
		t.Error("**testStruct should not be a struct")
	}
	if IsStruct(TypeOf[testInterface]()) {
		t.Error("interface should not be a struct")
	}
	if IsStruct(nil) {
		t.Error("nil should not be a struct")
	}
}

func TestStructFields(t *testing.T) {
	t.Parallel()

	fields := StructFields(TypeOf[*taggedStruct](), "ioc")
	if len(fields) != 3 {
		t.Fatalf("expected 3 tagged fields, got %d", len(fields))
	}

	want := []struct {
		name     string
		settable bool
	}{
		{"Logger", true},
		{"Service", true},
		{"hidden", false},
	}
	for i, w := range want {
		if fields[i].Name != w.name {
			t.Errorf("field %d: expected %s, got %s", i, w.name, fields[i].Name)
		}
		if fields[i].Settable != w.settable {
			t.Errorf("field %s: expected settable=%v", w.name, w.settable)
		}
	}

	if fields[1].Type != TypeOf[testInterface]() {
		t.Errorf("unexpected field type %s", fields[1].Type)
	}

	if got := StructFields(TypeOf[int](), "ioc"); got != nil {
		t.Errorf("expected no fields for int, got %v", got)
	}
}

func TestFuncSignature(t *testing.T) {
	t.Parallel()

	t.Run(
		"plain constructor", func(t *testing.T) {
			t.Parallel()
			sig, err := FuncSignature(func(a int, b string) *testStruct { return nil })
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sig.Params) != 2 || sig.HasError {
				t.Errorf("unexpected signature %+v", sig)
			}
			if sig.Out != TypeOf[*testStruct]() {
				t.Errorf("unexpected out type %s", sig.Out)
			}
		},
	)

	t.Run(
		"constructor with error", func(t *testing.T) {
			t.Parallel()
			sig, err := FuncSignature(func() (testInterface, error) { return nil, nil })
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sig.HasError || len(sig.Params) != 0 {
				t.Errorf("unexpected signature %+v", sig)
			}
		},
	)

	t.Run(
		"rejects invalid shapes", func(t *testing.T) {
			t.Parallel()
			cases := []struct {
				name string
				fn   any
				want error
			}{
				{"nil", nil, ErrNotFunc},
				{"not a func", 42, ErrNotFunc},
				{"variadic", func(...int) int { return 0 }, ErrNotFunc},
				{"no results", func() {}, ErrBadReturnValues},
				{"error only", func() error { return nil }, ErrBadReturnValues},
				{"second not error", func() (int, int) { return 0, 0 }, ErrBadReturnValues},
				{"three results", func() (int, int, error) { return 0, 0, nil }, ErrBadReturnValues},
			}
			for _, c := range cases {
				if _, err := FuncSignature(c.fn); !errors.Is(err, c.want) {
					t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
				}
			}
		},
	)
}

func BenchmarkTypeKey(b *testing.B) {
	typ := TypeOf[*testStruct]()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = TypeKey(typ)
	}
}
