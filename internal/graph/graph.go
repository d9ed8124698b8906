package graph

import "slices"

// Graph is a directed dependency graph keyed by type key. Edges point from a
// node to the nodes it needs. Nodes keep insertion order so that every walk
// over the graph is deterministic.
type Graph struct {
	order []string
	edges map[string][]string
}

func New() *Graph {
	return &Graph{
		edges: make(map[string][]string),
	}
}

// AddNode inserts id, or replaces its dependencies if it already exists.
func (g *Graph) AddNode(id string, dependencies []string) {
	if _, exists := g.edges[id]; !exists {
		g.order = append(g.order, id)
	}
	g.edges[id] = slices.Clone(dependencies)
}

func (g *Graph) GetDependencies(id string) []string {
	return slices.Clone(g.edges[id])
}

func (g *Graph) GetDependents(id string) []string {
	var dependents []string
	for _, node := range g.order {
		if slices.Contains(g.edges[node], id) {
			dependents = append(dependents, node)
		}
	}
	return dependents
}

func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// known returns the dependencies of id that are nodes themselves. References
// to types that were never added are leaves for every walk.
func (g *Graph) known(id string) []string {
	var deps []string
	for _, dep := range g.edges[id] {
		if _, exists := g.edges[dep]; exists {
			deps = append(deps, dep)
		}
	}
	return deps
}
