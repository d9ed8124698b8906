package ioc

import (
	"fmt"
	reflectPkg "reflect"
	"testing"
)

type benchLeaf struct{}

type benchNode struct {
	Leaf *benchLeaf `ioc:""`
}

func BenchmarkResolve_Leaf(b *testing.B) {
	c := NewFromTypes(nil)
	Self[*benchLeaf](c)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Resolve[*benchLeaf](c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolve_Property(b *testing.B) {
	c := NewFromTypes(nil)
	Self[*benchNode](c)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Resolve[*benchNode](c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolve_Chain5(b *testing.B) {
	benchmarkChain(b, 5)
}

func BenchmarkResolve_Chain10(b *testing.B) {
	benchmarkChain(b, 10)
}

func BenchmarkResolve_Chain25(b *testing.B) {
	benchmarkChain(b, 25)
}

func BenchmarkValidate_Chain25(b *testing.B) {
	c, _ := chainContainer(25)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.Validate(); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkChain(b *testing.B, depth int) {
	c, root := chainContainer(depth)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Resolve(root); err != nil {
			b.Fatal(err)
		}
	}
}

// chainContainer binds depth synthetic struct types, each with one injected
// property holding the previous one.
func chainContainer(depth int) (*Container, reflectPkg.Type) {
	c := NewFromTypes(nil, WithStrict())

	prev := TypeOf[*benchLeaf]()
	Self[*benchLeaf](c)

	for i := 0; i < depth; i++ {
		field := reflectPkg.StructField{
			Name: fmt.Sprintf("Dep%d", i),
			Type: prev,
			Tag:  `ioc:""`,
		}
		next := reflectPkg.PointerTo(reflectPkg.StructOf([]reflectPkg.StructField{field}))
		c.RegisterSelf(next)
		prev = next
	}

	return c, prev
}
