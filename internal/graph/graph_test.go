package graph

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build adds nodes in the order given, each followed by its dependencies.
func build(nodes ...[]string) *Graph {
	g := New()
	for _, n := range nodes {
		g.AddNode(n[0], n[1:])
	}
	return g
}

func node(id string, deps ...string) []string {
	return append([]string{id}, deps...)
}

func TestGraph_AddNode(t *testing.T) {
	t.Parallel()

	g := build(node("service", "repository", "logger"))

	assert.Equal(t, []string{"service"}, g.Nodes(), "referenced dependencies are not nodes")
	assert.Equal(t, []string{"repository", "logger"}, g.GetDependencies("service"))
	assert.Nil(t, g.GetDependencies("repository"))
}

func TestGraph_AddNodeReplacesDependencies(t *testing.T) {
	t.Parallel()

	g := build(
		node("service", "repository"),
		node("repository"),
		node("service", "logger"),
	)

	assert.Equal(t, []string{"service", "repository"}, g.Nodes())
	assert.Equal(t, []string{"logger"}, g.GetDependencies("service"))
}

func TestGraph_DependenciesAreCopies(t *testing.T) {
	t.Parallel()

	deps := []string{"repository"}
	g := build(node("service"))
	g.AddNode("service", deps)
	deps[0] = "changed"

	got := g.GetDependencies("service")
	got[0] = "changed again"
	assert.Equal(t, []string{"repository"}, g.GetDependencies("service"))
}

func TestGraph_GetDependents(t *testing.T) {
	t.Parallel()

	g := build(
		node("handler", "logger"),
		node("service", "logger", "logger"),
		node("logger"),
	)

	assert.Equal(t, []string{"handler", "service"}, g.GetDependents("logger"))
	assert.Empty(t, g.GetDependents("handler"))
}

func TestGraph_DetectCycles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		graph *Graph
		want  [][]string
	}{
		{
			name:  "chain",
			graph: build(node("a", "b"), node("b", "c"), node("c")),
		},
		{
			name:  "missing dependency is a leaf",
			graph: build(node("a", "b"), node("b", "ghost")),
		},
		{
			name:  "pair",
			graph: build(node("a", "b"), node("b", "a")),
			want:  [][]string{{"b", "a"}},
		},
		{
			name:  "self reference",
			graph: build(node("a", "a")),
			want:  [][]string{{"a"}},
		},
		{
			name: "loop behind an entry node",
			graph: build(
				node("entry", "b"),
				node("b", "c"),
				node("c", "d"),
				node("d", "b"),
			),
			want: [][]string{{"d", "c", "b"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(
			tt.name, func(t *testing.T) {
				t.Parallel()
				assert.Equal(t, tt.want, tt.graph.DetectCycles())
			},
		)
	}
}

func TestGraph_FindCyclePath(t *testing.T) {
	t.Parallel()

	g := build(
		node("handler", "service"),
		node("service", "repository"),
		node("repository", "service"),
	)

	assert.Equal(t, []string{"service", "repository", "service"}, g.FindCyclePath("handler"))
	assert.Equal(t, []string{"repository", "service", "repository"}, g.FindCyclePath("repository"))

	acyclic := build(node("a", "b", "c"), node("b", "c"), node("c"))
	assert.Nil(t, acyclic.FindCyclePath("a"), "shared dependency is not a cycle")
	assert.Nil(t, acyclic.FindCyclePath("unknown"))
}

func TestGraph_CyclePaths(t *testing.T) {
	t.Parallel()

	g := build(
		node("a", "b"),
		node("b", "a"),
		node("c", "c"),
		node("d", "a"),
	)

	paths := g.CyclePaths()
	require.Len(t, paths, 2)
	assert.Equal(t, []string{"a", "b", "a"}, paths[0])
	assert.Equal(t, []string{"c", "c"}, paths[1])
}

func TestGraph_TopologicalSort(t *testing.T) {
	t.Parallel()

	g := build(
		node("handler", "service", "cache"),
		node("service", "db"),
		node("cache", "db"),
		node("db"),
	)

	sorted, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, sorted, 4)

	before := func(dep, id string) {
		assert.Less(t, slices.Index(sorted, dep), slices.Index(sorted, id), "%s must precede %s", dep, id)
	}
	before("db", "service")
	before("db", "cache")
	before("service", "handler")
	before("cache", "handler")
}

func TestGraph_TopologicalSortKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	g := build(node("z"), node("y"), node("x", "z", "missing"))

	for i := 0; i < 10; i++ {
		sorted, err := g.TopologicalSort()
		require.NoError(t, err)
		assert.Equal(t, []string{"z", "y", "x"}, sorted)
	}
}

func TestGraph_TopologicalSortWithCycle(t *testing.T) {
	t.Parallel()

	g := build(node("a", "b"), node("b", "a"), node("c"))

	_, err := g.TopologicalSort()
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestGraph_ResolutionOrder(t *testing.T) {
	t.Parallel()

	g := build(
		node("handler", "service", "logger"),
		node("service", "db"),
		node("logger"),
		node("db"),
		node("unrelated"),
	)

	order, err := g.ResolutionOrder("handler")
	require.NoError(t, err)
	assert.Equal(t, []string{"db", "service", "logger", "handler"}, order)

	order, err = g.ResolutionOrder("unknown")
	require.NoError(t, err)
	assert.Equal(t, []string{"unknown"}, order)
}

func TestGraph_ResolutionOrderWithCycle(t *testing.T) {
	t.Parallel()

	g := build(node("a", "b"), node("b", "a"), node("c"))

	_, err := g.ResolutionOrder("a")
	assert.ErrorIs(t, err, ErrCycleDetected)

	order, err := g.ResolutionOrder("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, order, "a cycle elsewhere does not block an unrelated node")
}

func chainGraph(depth int) *Graph {
	g := New()
	for i := 0; i < depth; i++ {
		var deps []string
		if i > 0 {
			deps = []string{fmt.Sprintf("n%d", i-1)}
		}
		g.AddNode(fmt.Sprintf("n%d", i), deps)
	}
	return g
}

func BenchmarkGraph_DetectCycles(b *testing.B) {
	g := chainGraph(100)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.DetectCycles()
	}
}

func BenchmarkGraph_TopologicalSort(b *testing.B) {
	g := chainGraph(100)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.TopologicalSort()
	}
}
