package graph

import "slices"

// tarjan is the state of one strongly connected components walk.
type tarjan struct {
	g       *Graph
	next    int
	index   map[string]int
	low     map[string]int
	stack   []string
	onStack map[string]bool
	sccs    [][]string
}

// DetectCycles returns the strongly connected components that form cycles,
// including single nodes that depend on themselves. The last element of each
// component is the node the walk entered it through.
func (g *Graph) DetectCycles() [][]string {
	t := &tarjan{
		g:       g,
		index:   make(map[string]int),
		low:     make(map[string]int),
		onStack: make(map[string]bool),
	}

	for _, id := range g.order {
		if _, seen := t.index[id]; !seen {
			t.visit(id)
		}
	}

	var cycles [][]string
	for _, scc := range t.sccs {
		if len(scc) > 1 || slices.Contains(g.edges[scc[0]], scc[0]) {
			cycles = append(cycles, scc)
		}
	}
	return cycles
}

func (t *tarjan) visit(id string) {
	t.index[id] = t.next
	t.low[id] = t.next
	t.next++
	t.stack = append(t.stack, id)
	t.onStack[id] = true

	for _, dep := range t.g.known(id) {
		if _, seen := t.index[dep]; !seen {
			t.visit(dep)
			t.low[id] = min(t.low[id], t.low[dep])
		} else if t.onStack[dep] {
			t.low[id] = min(t.low[id], t.index[dep])
		}
	}

	if t.low[id] != t.index[id] {
		return
	}

	root := slices.Index(t.stack, id)
	scc := slices.Clone(t.stack[root:])
	slices.Reverse(scc)
	for _, member := range scc {
		t.onStack[member] = false
	}
	t.stack = t.stack[:root]
	t.sccs = append(t.sccs, scc)
}

// FindCyclePath returns the first cycle reachable from start as a closed
// path (first and last element are equal), or nil.
func (g *Graph) FindCyclePath(start string) []string {
	var path []string
	onPath := make(map[string]int)
	done := make(map[string]bool)

	var walk func(id string) []string
	walk = func(id string) []string {
		if at, open := onPath[id]; open {
			return append(slices.Clone(path[at:]), id)
		}
		if done[id] {
			return nil
		}

		onPath[id] = len(path)
		path = append(path, id)
		for _, dep := range g.known(id) {
			if cycle := walk(dep); cycle != nil {
				return cycle
			}
		}
		path = path[:len(path)-1]
		delete(onPath, id)
		done[id] = true
		return nil
	}

	return walk(start)
}

// CyclePaths returns one closed path per cycle in the graph.
func (g *Graph) CyclePaths() [][]string {
	var paths [][]string
	for _, scc := range g.DetectCycles() {
		if path := g.FindCyclePath(scc[len(scc)-1]); path != nil {
			paths = append(paths, path)
		}
	}
	return paths
}
