package graph

import "errors"

var ErrCycleDetected = errors.New("cycle detected in graph")

// TopologicalSort orders nodes so that every node comes after its
// dependencies. Ties keep insertion order.
func (g *Graph) TopologicalSort() ([]string, error) {
	waiting := make(map[string]int, len(g.order))
	dependents := make(map[string][]string, len(g.order))

	var ready []string
	for _, id := range g.order {
		deps := g.known(id)
		waiting[id] = len(deps)
		for _, dep := range deps {
			dependents[dep] = append(dependents[dep], id)
		}
		if len(deps) == 0 {
			ready = append(ready, id)
		}
	}

	sorted := make([]string, 0, len(g.order))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		sorted = append(sorted, id)

		for _, dependent := range dependents[id] {
			if waiting[dependent]--; waiting[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(sorted) != len(g.order) {
		return nil, ErrCycleDetected
	}
	return sorted, nil
}

// ResolutionOrder lists target and its transitive dependencies in the order
// they have to be built, dependencies first. A target that is not a node
// resolves to itself.
func (g *Graph) ResolutionOrder(target string) ([]string, error) {
	if _, exists := g.edges[target]; !exists {
		return []string{target}, nil
	}
	if g.FindCyclePath(target) != nil {
		return nil, ErrCycleDetected
	}

	var order []string
	built := make(map[string]bool)

	var build func(id string)
	build = func(id string) {
		if built[id] {
			return
		}
		built[id] = true
		for _, dep := range g.known(id) {
			build(dep)
		}
		order = append(order, id)
	}
	build(target)

	return order, nil
}
