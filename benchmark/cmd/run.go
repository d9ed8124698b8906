package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type BenchmarkResult struct {
	Name       string  `json:"name"`
	Framework  string  `json:"framework"`
	Category   string  `json:"category"`
	Scenario   string  `json:"scenario"`
	Iterations int64   `json:"iterations"`
	NsPerOp    float64 `json:"ns_per_op"`
	BytesPerOp int64   `json:"bytes_per_op"`
	AllocsOp   int64   `json:"allocs_per_op"`
}

type CategoryResults struct {
	Category string
	Results  []BenchmarkResult
}

var frameworkColors = map[string]text.Colors{
	"IoC": {text.FgGreen},
	"Do":  {text.FgYellow},
	"Dig": {text.FgMagenta},
	"Fx":  {text.FgBlue},
}

var categoryOrder = []string{
	"Register_Simple", "Register_Chain",
	"Resolve_Chain", "Resolve_Properties",
	"Validate_Chain",
}

var categoryTitles = map[string]string{
	"Register_Simple":    "Registration (single binding)",
	"Register_Chain":     "Registration (dependency chain)",
	"Resolve_Chain":      "Resolution (fresh dependency chain)",
	"Resolve_Properties": "Resolution (property injection)",
	"Validate_Chain":     "Static validation",
}

func main() {
	fmt.Println(text.Colors{text.Bold, text.FgCyan}.Sprint("IoC container benchmark suite"))
	fmt.Println(text.FgHiBlack.Sprint("Running benchmarks..."))
	fmt.Println()

	benchDir := ".."
	jsonOut := false
	for _, arg := range os.Args[1:] {
		if arg == "--json" {
			jsonOut = true
			continue
		}
		benchDir = arg
	}

	cmd := exec.Command("go", "test", "-run=^$", "-bench=.", "-benchmem", "-count=3", "-benchtime=100ms")
	cmd.Dir = benchDir
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Benchmark failed: %s\n", string(exitErr.Stderr))
		}
		os.Exit(1)
	}

	results := parseResults(output)
	grouped := groupByCategory(results)

	for _, cat := range grouped {
		printCategory(cat)
	}
	printSummary(grouped)

	if jsonOut {
		if err := exportJSON(results); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	}
}

func parseResults(output []byte) []BenchmarkResult {
	benchPattern := regexp.MustCompile(`^Benchmark(\w+)-\d+\s+(\d+)\s+([\d.]+) ns/op\s+(\d+) B/op\s+(\d+) allocs/op`)
	namePattern := regexp.MustCompile(`^([^_]+)_([^_]+)_(\w+)$`)

	var names []string
	seen := make(map[string][]BenchmarkResult)

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		matches := benchPattern.FindStringSubmatch(scanner.Text())
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.ParseInt(matches[2], 10, 64)
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)
		bytesPerOp, _ := strconv.ParseInt(matches[4], 10, 64)
		allocsOp, _ := strconv.ParseInt(matches[5], 10, 64)

		r := BenchmarkResult{
			Name:       name,
			Iterations: iterations,
			NsPerOp:    nsPerOp,
			BytesPerOp: bytesPerOp,
			AllocsOp:   allocsOp,
		}
		if parts := namePattern.FindStringSubmatch(name); parts != nil {
			r.Category, r.Scenario, r.Framework = parts[1], parts[2], parts[3]
		}

		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
		seen[name] = append(seen[name], r)
	}

	results := make([]BenchmarkResult, 0, len(names))
	for _, name := range names {
		runs := seen[name]

		var totalNs float64
		var totalBytes, totalAllocs int64
		for _, r := range runs {
			totalNs += r.NsPerOp
			totalBytes += r.BytesPerOp
			totalAllocs += r.AllocsOp
		}
		count := float64(len(runs))

		avg := runs[0]
		avg.NsPerOp = totalNs / count
		avg.BytesPerOp = int64(float64(totalBytes) / count)
		avg.AllocsOp = int64(float64(totalAllocs) / count)
		results = append(results, avg)
	}

	return results
}

func groupByCategory(results []BenchmarkResult) []CategoryResults {
	var keys []string
	groups := make(map[string][]BenchmarkResult)
	for _, r := range results {
		key := r.Category + "_" + r.Scenario
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], r)
	}

	sort.SliceStable(
		keys, func(i, j int) bool {
			return rank(keys[i]) < rank(keys[j])
		},
	)

	ordered := make([]CategoryResults, 0, len(keys))
	for _, key := range keys {
		rs := groups[key]
		sort.Slice(
			rs, func(i, j int) bool {
				return rs[i].NsPerOp < rs[j].NsPerOp
			},
		)
		ordered = append(ordered, CategoryResults{Category: key, Results: rs})
	}
	return ordered
}

func rank(category string) int {
	if i := slices.Index(categoryOrder, category); i >= 0 {
		return i
	}
	return len(categoryOrder)
}

func printCategory(cat CategoryResults) {
	title, ok := categoryTitles[cat.Category]
	if !ok {
		title = strings.ReplaceAll(cat.Category, "_", " ")
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"Framework", "Time/op", "Bytes/op", "Allocs/op", "Relative"})
	tw.SetColumnConfigs(
		[]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
			{Number: 4, Align: text.AlignRight},
			{Number: 5, Align: text.AlignRight},
		},
	)

	if len(cat.Results) == 0 {
		tw.AppendRow(table.Row{"no results", "", "", "", ""})
		tw.Render()
		fmt.Println()
		return
	}

	fastest := cat.Results[0].NsPerOp
	for i, r := range cat.Results {
		relative := "fastest"
		if i > 0 && fastest > 0 {
			relative = fmt.Sprintf("%.1fx slower", r.NsPerOp/fastest)
		}

		name := r.Framework
		if colors, ok := frameworkColors[r.Framework]; ok {
			name = colors.Sprint(r.Framework)
		}

		tw.AppendRow(
			table.Row{
				name,
				formatNs(r.NsPerOp),
				fmt.Sprintf("%d B", r.BytesPerOp),
				r.AllocsOp,
				relative,
			},
		)
	}

	tw.Render()
	fmt.Println()
}

func formatNs(ns float64) string {
	switch {
	case ns >= 1_000_000:
		return fmt.Sprintf("%.2f ms", ns/1_000_000)
	case ns >= 1_000:
		return fmt.Sprintf("%.2f µs", ns/1_000)
	default:
		return fmt.Sprintf("%.0f ns", ns)
	}
}

func printSummary(groups []CategoryResults) {
	wins := make(map[string]int)
	for _, cat := range groups {
		if len(cat.Results) > 0 {
			wins[cat.Results[0].Framework]++
		}
	}

	type frameworkWins struct {
		name string
		wins int
	}

	sorted := make([]frameworkWins, 0, len(wins))
	for name, count := range wins {
		sorted = append(sorted, frameworkWins{name, count})
	}
	sort.Slice(
		sorted, func(i, j int) bool {
			if sorted[i].wins == sorted[j].wins {
				return sorted[i].name < sorted[j].name
			}
			return sorted[i].wins > sorted[j].wins
		},
	)

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Summary")
	tw.AppendHeader(table.Row{"#", "Framework", "Wins"})
	for i, fw := range sorted {
		tw.AppendRow(table.Row{i + 1, fw.name, fmt.Sprintf("%d/%d", fw.wins, len(groups))})
	}
	tw.Render()

	fmt.Println()
	fmt.Println(text.Bold.Sprint("Frameworks compared:"))
	fmt.Println("  IoC        - This library (github.com/danpasecinic/ioc)")
	fmt.Println("  samber/do  - Generics-based DI (github.com/samber/do)")
	fmt.Println("  uber/dig   - Reflection-based DI (go.uber.org/dig)")
	fmt.Println("  uber/fx    - Full application framework (go.uber.org/fx)")
	fmt.Println()
}

func exportJSON(results []BenchmarkResult) error {
	output := struct {
		Benchmarks []BenchmarkResult `json:"benchmarks"`
	}{
		Benchmarks: results,
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile("benchmark_results.json", data, 0o644)
}
