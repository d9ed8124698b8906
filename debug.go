package ioc

import (
	"fmt"
	"io"
	"os"
	reflectPkg "reflect"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/danpasecinic/ioc/internal/container"
	"github.com/danpasecinic/ioc/internal/reflect"
)

type GraphInfo struct {
	Bindings []BindingInfo `yaml:"bindings"`
}

type BindingInfo struct {
	Contract     string   `yaml:"contract"`
	Kind         string   `yaml:"kind"`
	Target       string   `yaml:"target,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
	Dependents   []string `yaml:"dependents,omitempty"`
}

// Graph describes every bound contract and every type resolution would
// reach from them. Dependencies come before their dependents unless the
// graph has a cycle.
func (c *Container) Graph() GraphInfo {
	a := c.internal.Analyze()

	keys, err := a.Graph.TopologicalSort()
	if err != nil {
		keys = a.Graph.Nodes()
	}

	names := func(keys []string) []string {
		if len(keys) == 0 {
			return nil
		}
		out := make([]string, len(keys))
		for i, key := range keys {
			out[i] = a.Name(key)
		}
		return out
	}

	bindings := make([]BindingInfo, 0, len(keys))
	for _, key := range keys {
		node := a.Nodes[key]
		info := BindingInfo{
			Contract:     a.Name(key),
			Kind:         node.Kind.String(),
			Dependencies: names(a.Graph.GetDependencies(key)),
			Dependents:   names(a.Graph.GetDependents(key)),
		}
		if node.Kind == container.NodeContract {
			info.Target = reflect.TypeName(node.Target)
			info.Dependencies = nil
		}
		bindings = append(bindings, info)
	}

	return GraphInfo{Bindings: bindings}
}

// ResolutionOrder lists the types Resolve would build for contract,
// dependencies first. A cycle on the way fails with ErrCyclicDependency.
func (c *Container) ResolutionOrder(contract reflectPkg.Type) ([]string, error) {
	a := c.internal.Analyze()

	key := reflect.TypeKey(contract)
	order, err := a.Graph.ResolutionOrder(key)
	if err != nil {
		if cycle := a.CycleFrom(key); cycle != nil {
			return nil, cycle
		}
		return nil, err
	}

	names := make([]string, len(order))
	for i, key := range order {
		if n, ok := a.Nodes[key]; ok {
			names[i] = reflect.TypeName(n.Type)
			continue
		}
		names[i] = reflect.TypeName(contract)
	}
	return names, nil
}

func (c *Container) PrintGraph() {
	c.FprintGraph(os.Stdout)
}

func (c *Container) FprintGraph(w io.Writer) {
	info := c.Graph()

	if len(info.Bindings) == 0 {
		_, _ = fmt.Fprintln(w, "(empty container)")
		return
	}

	for _, b := range info.Bindings {
		status := "●"
		if b.Kind == container.NodeImplicit.String() {
			status = "○"
		}

		switch {
		case b.Target != "":
			_, _ = fmt.Fprintf(w, "%s %s → %s\n", status, b.Contract, b.Target)
		case len(b.Dependencies) == 0:
			_, _ = fmt.Fprintf(w, "%s %s\n", status, b.Contract)
		default:
			_, _ = fmt.Fprintf(w, "%s %s ← %s\n", status, b.Contract, strings.Join(b.Dependencies, ", "))
		}
	}
}

func (c *Container) SprintGraph() string {
	var sb strings.Builder
	c.FprintGraph(&sb)
	return sb.String()
}

func (c *Container) FprintGraphDOT(w io.Writer) {
	info := c.Graph()

	_, _ = fmt.Fprintln(w, "digraph dependencies {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	_, _ = fmt.Fprintln(w, "  node [shape=box];")

	for _, b := range info.Bindings {
		style := ""
		if b.Kind == container.NodeImplicit.String() {
			style = ", style=dashed"
		}
		_, _ = fmt.Fprintf(w, "  %q [label=%q%s];\n", b.Contract, escapeLabel(b.Contract), style)
	}

	_, _ = fmt.Fprintln(w)

	for _, b := range info.Bindings {
		if b.Target != "" {
			_, _ = fmt.Fprintf(w, "  %q -> %q [style=dotted];\n", b.Contract, b.Target)
		}
		for _, dep := range b.Dependencies {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", b.Contract, dep)
		}
	}

	_, _ = fmt.Fprintln(w, "}")
}

func (c *Container) SprintGraphDOT() string {
	var sb strings.Builder
	c.FprintGraphDOT(&sb)
	return sb.String()
}

// FprintBindings renders the registry as a table, one row per bound
// contract in registration order.
func (c *Container) FprintBindings(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Contract", "Kind", "Target"})

	for i, contract := range c.internal.Contracts() {
		b, _ := c.internal.Binding(contract)
		target := ""
		if b.Target != nil {
			target = reflect.TypeName(b.Target)
		}
		tw.AppendRow(table.Row{i + 1, reflect.TypeName(contract), b.Kind().String(), target})
	}

	mode := "lenient"
	if c.internal.Strict() {
		mode = "strict"
	}

	tw.AppendFooter(table.Row{"", "Total", c.Size(), ""})
	tw.SetCaption("resolution mode: %s", mode)
	tw.Render()
}

func (c *Container) FprintGraphYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c.Graph()); err != nil {
		return err
	}
	return enc.Close()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "*", "")
	if idx := strings.LastIndex(s, "/"); idx != -1 {
		s = s[idx+1:]
	}
	return s
}
